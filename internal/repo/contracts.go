package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// Contracts is the repository for contracts.
type Contracts struct {
	c *Collection[model.Contract, *model.Contract]
	// liveEngagements reports whether any non-terminal engagement still
	// references the contract; wired by the repository set.
	liveEngagements func(ctx context.Context, contractID string) bool
}

func newContracts(deps Deps) *Contracts {
	return &Contracts{
		c: NewCollection[model.Contract](deps, model.KeyContracts, "ctr", model.EntityContract, false),
	}
}

func (r *Contracts) GetAll(ctx context.Context) []model.Contract { return r.c.GetAll(ctx) }

func (r *Contracts) GetByID(ctx context.Context, id string) (model.Contract, bool) {
	return r.c.GetByID(ctx, id)
}

// GetByParty returns every contract the company participates in, as buyer
// or provider.
func (r *Contracts) GetByParty(ctx context.Context, partyID string) []model.Contract {
	return r.c.Filter(ctx, func(ct model.Contract) bool {
		return ct.BuyerPartyID == partyID || ct.ProviderPartyID == partyID
	})
}

// GetByProvider returns every contract where the company is the provider.
func (r *Contracts) GetByProvider(ctx context.Context, providerPartyID string) []model.Contract {
	return r.c.Filter(ctx, func(ct model.Contract) bool { return ct.ProviderPartyID == providerPartyID })
}

func (r *Contracts) GetByStatus(ctx context.Context, status model.ContractStatus) []model.Contract {
	return r.c.Filter(ctx, func(ct model.Contract) bool { return ct.Status == status })
}

// GetBySourceProposal returns contracts synthesized from the given
// proposal. The migration engine probes this for convergence.
func (r *Contracts) GetBySourceProposal(ctx context.Context, proposalID string) []model.Contract {
	return r.c.Filter(ctx, func(ct model.Contract) bool { return ct.SourceProposalID == proposalID })
}

// GetSubContracts returns every SUB_CONTRACT under the given parent.
func (r *Contracts) GetSubContracts(ctx context.Context, parentContractID string) []model.Contract {
	return r.c.Filter(ctx, func(ct model.Contract) bool {
		return ct.ContractType == model.ContractTypeSub && ct.ParentContractID == parentContractID
	})
}

// Create stores a new contract.
//
// A SUB_CONTRACT must reference an existing parent whose provider party is
// this contract's buyer party - the sub-contract's buyer is the company
// doing the parent's work. Violations return ErrBadParentContract. Status
// defaults to DRAFT; a contract created directly in SIGNED (migration
// synthesis) gets SignedAt stamped if absent.
func (r *Contracts) Create(ctx context.Context, ct model.Contract) (model.Contract, error) {
	if ct.ContractType == model.ContractTypeSub {
		parent, ok := r.c.GetByID(ctx, ct.ParentContractID)
		if !ok || parent.ProviderPartyID != ct.BuyerPartyID {
			return model.Contract{}, ErrBadParentContract
		}
	} else if ct.ParentContractID != "" {
		// Only sub-contracts carry a parent.
		return model.Contract{}, ErrBadParentContract
	}
	if ct.Status == "" {
		ct.Status = model.ContractDraft
	}
	if ct.Status == model.ContractSigned && ct.SignedAt == nil {
		now := r.c.deps.Clock.Now()
		ct.SignedAt = &now
	}
	return r.c.Create(ctx, ct)
}

// Update applies mutate and derives status side effects from the old → new
// pair: the first transition into SIGNED stamps SignedAt (and SignedBy from
// the acting user when unset); the first transition into COMPLETED stamps
// CompletedAt. Re-entering either state leaves the stamps untouched.
func (r *Contracts) Update(ctx context.Context, id string, mutate func(*model.Contract)) (model.Contract, bool) {
	return r.c.Update(ctx, id, func(ct *model.Contract) {
		prev := ct.Status
		mutate(ct)
		if ct.Status == prev {
			return
		}
		if !prev.CanTransition(ct.Status) {
			r.c.deps.Log.Warn("off-path contract transition",
				"contract", ct.ID, "from", prev, "to", ct.Status)
		}
		now := r.c.deps.Clock.Now()
		if ct.Status == model.ContractSigned && ct.SignedAt == nil {
			ct.SignedAt = &now
			if ct.SignedBy == "" {
				ct.SignedBy = model.ActorFromContext(ctx)
			}
		}
		if ct.Status == model.ContractCompleted && ct.CompletedAt == nil {
			ct.CompletedAt = &now
		}
	})
}

// UpdateStatus is the transition shorthand every workflow caller uses.
func (r *Contracts) UpdateStatus(ctx context.Context, id string, status model.ContractStatus) (model.Contract, bool) {
	return r.Update(ctx, id, func(ct *model.Contract) { ct.Status = status })
}

// Delete removes a contract. Engagements hold weak references, so deletion
// never cascades; instead Delete refuses with ErrContractInUse while any
// non-terminal engagement still points here, making the cleanup explicit.
func (r *Contracts) Delete(ctx context.Context, id string) (bool, error) {
	if r.liveEngagements != nil && r.liveEngagements(ctx, id) {
		return false, ErrContractInUse
	}
	return r.c.Delete(ctx, id), nil
}
