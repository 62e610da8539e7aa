package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// ServiceProviders is the repository for the indexed provider directory.
// Every mutation notifies the index manager so the provider's buckets stay
// current.
type ServiceProviders struct {
	c *Collection[model.ServiceProvider, *model.ServiceProvider]
}

func newServiceProviders(deps Deps) *ServiceProviders {
	return &ServiceProviders{
		c: NewCollection[model.ServiceProvider](deps, model.KeyServiceProviders, "sp", model.EntityServiceProvider, true),
	}
}

func (r *ServiceProviders) GetAll(ctx context.Context) []model.ServiceProvider { return r.c.GetAll(ctx) }

func (r *ServiceProviders) GetByID(ctx context.Context, id string) (model.ServiceProvider, bool) {
	return r.c.GetByID(ctx, id)
}

func (r *ServiceProviders) Create(ctx context.Context, p model.ServiceProvider) (model.ServiceProvider, error) {
	return r.c.Create(ctx, p)
}

func (r *ServiceProviders) Update(ctx context.Context, id string, mutate func(*model.ServiceProvider)) (model.ServiceProvider, bool) {
	return r.c.Update(ctx, id, mutate)
}

func (r *ServiceProviders) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }

// Beneficiaries is the repository for the indexed beneficiary directory.
type Beneficiaries struct {
	c *Collection[model.Beneficiary, *model.Beneficiary]
}

func newBeneficiaries(deps Deps) *Beneficiaries {
	return &Beneficiaries{
		c: NewCollection[model.Beneficiary](deps, model.KeyBeneficiaries, "ben", model.EntityBeneficiary, true),
	}
}

func (r *Beneficiaries) GetAll(ctx context.Context) []model.Beneficiary { return r.c.GetAll(ctx) }

func (r *Beneficiaries) GetByID(ctx context.Context, id string) (model.Beneficiary, bool) {
	return r.c.GetByID(ctx, id)
}

func (r *Beneficiaries) Create(ctx context.Context, b model.Beneficiary) (model.Beneficiary, error) {
	return r.c.Create(ctx, b)
}

func (r *Beneficiaries) Update(ctx context.Context, id string, mutate func(*model.Beneficiary)) (model.Beneficiary, bool) {
	return r.c.Update(ctx, id, mutate)
}

func (r *Beneficiaries) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }

// ServiceEvaluations is the repository for provider ratings.
type ServiceEvaluations struct {
	c *Collection[model.ServiceEvaluation, *model.ServiceEvaluation]
}

func newServiceEvaluations(deps Deps) *ServiceEvaluations {
	return &ServiceEvaluations{
		c: NewCollection[model.ServiceEvaluation](deps, model.KeyServiceEvaluations, "eval", model.EntityServiceEvaluation, false),
	}
}

func (r *ServiceEvaluations) GetAll(ctx context.Context) []model.ServiceEvaluation {
	return r.c.GetAll(ctx)
}

func (r *ServiceEvaluations) GetByProvider(ctx context.Context, providerID string) []model.ServiceEvaluation {
	return r.c.Filter(ctx, func(e model.ServiceEvaluation) bool { return e.ProviderID == providerID })
}

func (r *ServiceEvaluations) Create(ctx context.Context, e model.ServiceEvaluation) (model.ServiceEvaluation, error) {
	return r.c.Create(ctx, e)
}

func (r *ServiceEvaluations) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }
