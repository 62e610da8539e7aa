package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// Milestones is the repository for paid checkpoints within engagements.
type Milestones struct {
	c *Collection[model.Milestone, *model.Milestone]
}

func newMilestones(deps Deps) *Milestones {
	return &Milestones{
		c: NewCollection[model.Milestone](deps, model.KeyMilestones, "mls", model.EntityMilestone, false),
	}
}

func (r *Milestones) GetAll(ctx context.Context) []model.Milestone { return r.c.GetAll(ctx) }

func (r *Milestones) GetByID(ctx context.Context, id string) (model.Milestone, bool) {
	return r.c.GetByID(ctx, id)
}

func (r *Milestones) GetByEngagement(ctx context.Context, engagementID string) []model.Milestone {
	return r.c.Filter(ctx, func(m model.Milestone) bool { return m.EngagementID == engagementID })
}

func (r *Milestones) GetByContract(ctx context.Context, contractID string) []model.Milestone {
	return r.c.Filter(ctx, func(m model.Milestone) bool { return m.ContractID == contractID })
}

func (r *Milestones) GetByStatus(ctx context.Context, status model.MilestoneStatus) []model.Milestone {
	return r.c.Filter(ctx, func(m model.Milestone) bool { return m.Status == status })
}

// Create stores a new milestone. Status defaults to PENDING.
func (r *Milestones) Create(ctx context.Context, m model.Milestone) (model.Milestone, error) {
	if m.Status == "" {
		m.Status = model.MilestonePending
	}
	return r.c.Create(ctx, m)
}

// Update applies mutate and stamps CompletedAt on the first transition into
// COMPLETED; re-entering COMPLETED leaves the stamp untouched.
func (r *Milestones) Update(ctx context.Context, id string, mutate func(*model.Milestone)) (model.Milestone, bool) {
	return r.c.Update(ctx, id, func(m *model.Milestone) {
		prev := m.Status
		mutate(m)
		if m.Status == prev {
			return
		}
		if !prev.CanTransition(m.Status) {
			r.c.deps.Log.Warn("off-path milestone transition",
				"milestone", m.ID, "from", prev, "to", m.Status)
		}
		if m.Status == model.MilestoneCompleted && m.CompletedAt == nil {
			now := r.c.deps.Clock.Now()
			m.CompletedAt = &now
		}
	})
}

// UpdateStatus is the transition shorthand every workflow caller uses.
func (r *Milestones) UpdateStatus(ctx context.Context, id string, status model.MilestoneStatus) (model.Milestone, bool) {
	return r.Update(ctx, id, func(m *model.Milestone) { m.Status = status })
}

func (r *Milestones) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }
