package repo

import (
	"context"
	"slices"

	"github.com/binaahub/binaa-core/internal/model"
)

// Engagements is the repository for units of work under signed contracts.
type Engagements struct {
	c *Collection[model.Engagement, *model.Engagement]
	// contractExists verifies the weak reference on create; wired by the
	// repository set.
	contractExists func(ctx context.Context, contractID string) bool
}

func newEngagements(deps Deps) *Engagements {
	return &Engagements{
		c: NewCollection[model.Engagement](deps, model.KeyEngagements, "eng", model.EntityEngagement, false),
	}
}

func (r *Engagements) GetAll(ctx context.Context) []model.Engagement { return r.c.GetAll(ctx) }

func (r *Engagements) GetByID(ctx context.Context, id string) (model.Engagement, bool) {
	return r.c.GetByID(ctx, id)
}

// GetByContract returns every engagement under the given contract.
func (r *Engagements) GetByContract(ctx context.Context, contractID string) []model.Engagement {
	return r.c.Filter(ctx, func(e model.Engagement) bool { return e.ContractID == contractID })
}

func (r *Engagements) GetByStatus(ctx context.Context, status model.EngagementStatus) []model.Engagement {
	return r.c.Filter(ctx, func(e model.Engagement) bool { return e.Status == status })
}

// Create stores a new engagement. An engagement cannot exist without a
// contract: a missing or dangling ContractID returns ErrMissingContract.
// Status defaults to PLANNED.
func (r *Engagements) Create(ctx context.Context, e model.Engagement) (model.Engagement, error) {
	if e.ContractID == "" {
		return model.Engagement{}, ErrMissingContract
	}
	if r.contractExists != nil && !r.contractExists(ctx, e.ContractID) {
		return model.Engagement{}, ErrMissingContract
	}
	if e.Status == "" {
		e.Status = model.EngagementPlanned
	}
	return r.c.Create(ctx, e)
}

// Update applies mutate and derives status side effects from the old → new
// pair: entering PAUSED stamps PausedAt, resuming to ACTIVE clears it, and
// the first entry into COMPLETED stamps CompletedAt.
func (r *Engagements) Update(ctx context.Context, id string, mutate func(*model.Engagement)) (model.Engagement, bool) {
	return r.c.Update(ctx, id, func(e *model.Engagement) {
		prev := e.Status
		mutate(e)
		if e.Status == prev {
			return
		}
		if !prev.CanTransition(e.Status) {
			r.c.deps.Log.Warn("off-path engagement transition",
				"engagement", e.ID, "from", prev, "to", e.Status)
		}
		now := r.c.deps.Clock.Now()
		switch e.Status {
		case model.EngagementPaused:
			e.PausedAt = &now
		case model.EngagementActive:
			e.PausedAt = nil
		case model.EngagementCompleted:
			if e.CompletedAt == nil {
				e.CompletedAt = &now
			}
		}
	})
}

// UpdateStatus is the transition shorthand every workflow caller uses.
func (r *Engagements) UpdateStatus(ctx context.Context, id string, status model.EngagementStatus) (model.Engagement, bool) {
	return r.Update(ctx, id, func(e *model.Engagement) { e.Status = status })
}

// AttachMilestone records a milestone id on the engagement, once.
func (r *Engagements) AttachMilestone(ctx context.Context, id, milestoneID string) (model.Engagement, bool) {
	return r.c.Update(ctx, id, func(e *model.Engagement) {
		if !slices.Contains(e.MilestoneIDs, milestoneID) {
			e.MilestoneIDs = append(e.MilestoneIDs, milestoneID)
		}
	})
}

func (r *Engagements) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }

// hasLive reports whether any non-terminal engagement references the
// contract. Contracts.Delete consults this.
func (r *Engagements) hasLive(ctx context.Context, contractID string) bool {
	live := r.c.Filter(ctx, func(e model.Engagement) bool {
		return e.ContractID == contractID &&
			e.Status != model.EngagementCompleted && e.Status != model.EngagementCanceled
	})
	return len(live) > 0
}
