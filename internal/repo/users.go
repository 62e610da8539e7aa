package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// Users is the repository for portal accounts.
type Users struct {
	c *Collection[model.User, *model.User]
}

func newUsers(deps Deps) *Users {
	return &Users{c: NewCollection[model.User](deps, model.KeyUsers, "user", model.EntityUser, false)}
}

func (r *Users) GetAll(ctx context.Context) []model.User { return r.c.GetAll(ctx) }

func (r *Users) GetByID(ctx context.Context, id string) (model.User, bool) {
	return r.c.GetByID(ctx, id)
}

// GetByEmail returns the first user with the given email.
func (r *Users) GetByEmail(ctx context.Context, email string) (model.User, bool) {
	matches := r.c.Filter(ctx, func(u model.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return model.User{}, false
	}
	return matches[0], true
}

// GetByStage returns every user at the given onboarding stage.
func (r *Users) GetByStage(ctx context.Context, stage model.OnboardingStage) []model.User {
	return r.c.Filter(ctx, func(u model.User) bool { return u.OnboardingStage == stage })
}

// Create stores a new user. A missing onboarding stage defaults to
// REGISTERED.
func (r *Users) Create(ctx context.Context, u model.User) (model.User, error) {
	if u.OnboardingStage == "" {
		u.OnboardingStage = model.StageRegistered
	}
	return r.c.Create(ctx, u)
}

func (r *Users) Update(ctx context.Context, id string, mutate func(*model.User)) (model.User, bool) {
	return r.c.Update(ctx, id, mutate)
}

func (r *Users) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }
