package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// Projects is the repository for construction projects.
type Projects struct {
	c *Collection[model.Project, *model.Project]
}

func newProjects(deps Deps) *Projects {
	return &Projects{c: NewCollection[model.Project](deps, model.KeyProjects, "proj", model.EntityProject, false)}
}

func (r *Projects) GetAll(ctx context.Context) []model.Project { return r.c.GetAll(ctx) }

func (r *Projects) GetByID(ctx context.Context, id string) (model.Project, bool) {
	return r.c.GetByID(ctx, id)
}

// GetByCreator returns every project created by the given user.
func (r *Projects) GetByCreator(ctx context.Context, creatorID string) []model.Project {
	return r.c.Filter(ctx, func(p model.Project) bool { return p.CreatorID == creatorID })
}

// GetByOwner returns every project owned by the given company.
func (r *Projects) GetByOwner(ctx context.Context, ownerCompanyID string) []model.Project {
	return r.c.Filter(ctx, func(p model.Project) bool { return p.OwnerCompanyID == ownerCompanyID })
}

func (r *Projects) GetByStatus(ctx context.Context, status model.ProjectStatus) []model.Project {
	return r.c.Filter(ctx, func(p model.Project) bool { return p.Status == status })
}

// Create stores a new project. The owner company defaults to the creator
// and the status to DRAFT.
func (r *Projects) Create(ctx context.Context, p model.Project) (model.Project, error) {
	if p.OwnerCompanyID == "" {
		p.OwnerCompanyID = p.CreatorID
	}
	if p.Status == "" {
		p.Status = model.ProjectDraft
	}
	return r.c.Create(ctx, p)
}

func (r *Projects) Update(ctx context.Context, id string, mutate func(*model.Project)) (model.Project, bool) {
	return r.c.Update(ctx, id, mutate)
}

// IncrementProposalCount bumps the project's derived proposal counter.
func (r *Projects) IncrementProposalCount(ctx context.Context, id string) {
	r.c.Update(ctx, id, func(p *model.Project) { p.ProposalCount++ })
}

func (r *Projects) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }
