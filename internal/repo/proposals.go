package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// OwnerLookup resolves the owning company of a proposal target.
// Wired by the repository set: projects resolve through the Projects
// repository, other target types through whatever collaborator the portal
// injects.
type OwnerLookup func(ctx context.Context, targetType model.TargetType, targetID string) (string, bool)

// Proposals is the repository for bids.
type Proposals struct {
	c         *Collection[model.Proposal, *model.Proposal]
	owner     OwnerLookup
	onCreated func(ctx context.Context, p model.Proposal)
}

func newProposals(deps Deps) *Proposals {
	return &Proposals{
		c: NewCollection[model.Proposal](deps, model.KeyProposals, "prop", model.EntityProposal, false),
	}
}

func (r *Proposals) GetAll(ctx context.Context) []model.Proposal { return r.c.GetAll(ctx) }

func (r *Proposals) GetByID(ctx context.Context, id string) (model.Proposal, bool) {
	return r.c.GetByID(ctx, id)
}

// GetByBidder returns every proposal submitted by the given company.
func (r *Proposals) GetByBidder(ctx context.Context, bidderCompanyID string) []model.Proposal {
	return r.c.Filter(ctx, func(p model.Proposal) bool { return p.BidderCompanyID == bidderCompanyID })
}

// GetByTarget returns every proposal bidding on the given target.
func (r *Proposals) GetByTarget(ctx context.Context, targetType model.TargetType, targetID string) []model.Proposal {
	return r.c.Filter(ctx, func(p model.Proposal) bool {
		return p.TargetType == targetType && p.TargetID == targetID
	})
}

func (r *Proposals) GetByStatus(ctx context.Context, status model.ProposalStatus) []model.Proposal {
	return r.c.Filter(ctx, func(p model.Proposal) bool { return p.Status == status })
}

// Create stores a new proposal.
//
// The owner company is derived from the target's owner when not supplied.
// A proposal whose bidder equals its owner is rejected with
// ErrBidderIsOwner - a company cannot bid on its own work. Status defaults
// to DRAFT.
func (r *Proposals) Create(ctx context.Context, p model.Proposal) (model.Proposal, error) {
	if p.OwnerCompanyID == "" && r.owner != nil {
		if owner, ok := r.owner(ctx, p.TargetType, p.TargetID); ok {
			p.OwnerCompanyID = owner
		}
	}
	if p.BidderCompanyID != "" && p.BidderCompanyID == p.OwnerCompanyID {
		r.c.deps.Log.Warn("proposal rejected: bidder equals owner",
			"bidder", p.BidderCompanyID, "target", p.TargetID)
		return model.Proposal{}, ErrBidderIsOwner
	}
	if p.Status == "" {
		p.Status = model.ProposalDraft
	}
	created, err := r.c.Create(ctx, p)
	if err == nil && r.onCreated != nil {
		r.onCreated(ctx, created)
	}
	return created, err
}

// Update applies mutate and derives status side effects from the old → new
// status pair: the first entry into SUBMITTED stamps SubmittedAt; entering
// the same status again is a stamp no-op. Off-path transitions are logged,
// not rejected - migrations and bulk tooling jump states.
func (r *Proposals) Update(ctx context.Context, id string, mutate func(*model.Proposal)) (model.Proposal, bool) {
	return r.c.Update(ctx, id, func(p *model.Proposal) {
		prev := p.Status
		mutate(p)
		if p.Status != prev {
			if !prev.CanTransition(p.Status) {
				r.c.deps.Log.Warn("off-path proposal transition",
					"proposal", p.ID, "from", prev, "to", p.Status)
			}
			if p.Status == model.ProposalSubmitted && p.SubmittedAt == nil {
				now := r.c.deps.Clock.Now()
				p.SubmittedAt = &now
			}
		}
	})
}

// UpdateStatus is the transition shorthand every workflow caller uses.
func (r *Proposals) UpdateStatus(ctx context.Context, id string, status model.ProposalStatus) (model.Proposal, bool) {
	return r.Update(ctx, id, func(p *model.Proposal) { p.Status = status })
}

func (r *Proposals) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }

// ReplaceAll swaps the whole collection; migration use only.
func (r *Proposals) ReplaceAll(ctx context.Context, docs []model.Proposal) bool {
	return r.c.ReplaceAll(ctx, docs)
}
