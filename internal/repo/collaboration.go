package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// CollaborationOpportunities is the repository for partner calls.
type CollaborationOpportunities struct {
	c *Collection[model.CollaborationOpportunity, *model.CollaborationOpportunity]
}

func newCollaborationOpportunities(deps Deps) *CollaborationOpportunities {
	return &CollaborationOpportunities{
		c: NewCollection[model.CollaborationOpportunity](deps,
			model.KeyCollaborationOpportunities, "copp", model.EntityCollaborationOpportunity, false),
	}
}

func (r *CollaborationOpportunities) GetAll(ctx context.Context) []model.CollaborationOpportunity {
	return r.c.GetAll(ctx)
}

func (r *CollaborationOpportunities) GetByID(ctx context.Context, id string) (model.CollaborationOpportunity, bool) {
	return r.c.GetByID(ctx, id)
}

func (r *CollaborationOpportunities) GetByCreator(ctx context.Context, creatorCompanyID string) []model.CollaborationOpportunity {
	return r.c.Filter(ctx, func(o model.CollaborationOpportunity) bool {
		return o.CreatorCompanyID == creatorCompanyID
	})
}

func (r *CollaborationOpportunities) Create(ctx context.Context, o model.CollaborationOpportunity) (model.CollaborationOpportunity, error) {
	if o.Status == "" {
		o.Status = "OPEN"
	}
	return r.c.Create(ctx, o)
}

func (r *CollaborationOpportunities) Update(ctx context.Context, id string, mutate func(*model.CollaborationOpportunity)) (model.CollaborationOpportunity, bool) {
	return r.c.Update(ctx, id, mutate)
}

func (r *CollaborationOpportunities) Delete(ctx context.Context, id string) bool {
	return r.c.Delete(ctx, id)
}

// CollaborationApplications is the repository for applications to
// opportunities.
type CollaborationApplications struct {
	c *Collection[model.CollaborationApplication, *model.CollaborationApplication]
}

func newCollaborationApplications(deps Deps) *CollaborationApplications {
	return &CollaborationApplications{
		c: NewCollection[model.CollaborationApplication](deps,
			model.KeyCollaborationApplications, "capp", model.EntityCollaborationApplication, false),
	}
}

func (r *CollaborationApplications) GetAll(ctx context.Context) []model.CollaborationApplication {
	return r.c.GetAll(ctx)
}

func (r *CollaborationApplications) GetByOpportunity(ctx context.Context, opportunityID string) []model.CollaborationApplication {
	return r.c.Filter(ctx, func(a model.CollaborationApplication) bool {
		return a.OpportunityID == opportunityID
	})
}

func (r *CollaborationApplications) GetByApplicant(ctx context.Context, applicantCompanyID string) []model.CollaborationApplication {
	return r.c.Filter(ctx, func(a model.CollaborationApplication) bool {
		return a.ApplicantCompanyID == applicantCompanyID
	})
}

func (r *CollaborationApplications) Create(ctx context.Context, a model.CollaborationApplication) (model.CollaborationApplication, error) {
	if a.Status == "" {
		a.Status = "SUBMITTED"
	}
	return r.c.Create(ctx, a)
}

func (r *CollaborationApplications) Update(ctx context.Context, id string, mutate func(*model.CollaborationApplication)) (model.CollaborationApplication, bool) {
	return r.c.Update(ctx, id, mutate)
}

func (r *CollaborationApplications) Delete(ctx context.Context, id string) bool {
	return r.c.Delete(ctx, id)
}
