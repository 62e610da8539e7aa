// Package seed loads the demo fixture into an empty store.
//
// The fixture is an embedded YAML document applied through the repository
// layer with auditing disabled (bootstrap data is not a user mutation).
// Every record carries a fixed id and is probed before creation, so
// seeding is idempotent across boots.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/repo"
)

//go:embed seed.yaml
var fixtureYAML []byte

// fixture mirrors seed.yaml.
type fixture struct {
	Users []struct {
		ID          string `yaml:"id"`
		CompanyName string `yaml:"companyName"`
		Email       string `yaml:"email"`
		Stage       string `yaml:"stage"`
	} `yaml:"users"`
	Projects []struct {
		ID        string `yaml:"id"`
		Title     string `yaml:"title"`
		CreatorID string `yaml:"creatorId"`
		Category  string `yaml:"category"`
		Location  string `yaml:"location"`
		Status    string `yaml:"status"`
	} `yaml:"projects"`
	Providers []struct {
		ID           string   `yaml:"id"`
		Name         string   `yaml:"name"`
		Categories   []string `yaml:"categories"`
		Skills       []string `yaml:"skills"`
		Location     string   `yaml:"location"`
		Availability string   `yaml:"availability"`
		ProviderType string   `yaml:"providerType"`
	} `yaml:"providers"`
	Beneficiaries []struct {
		ID               string   `yaml:"id"`
		Name             string   `yaml:"name"`
		RequiredServices []string `yaml:"requiredServices"`
		Location         string   `yaml:"location"`
	} `yaml:"beneficiaries"`
}

// Apply seeds the store through repos. Pass a repository set built without
// an Auditor; seeding is bootstrap, not user activity. Records already
// present (by id) are skipped.
func Apply(ctx context.Context, repos *repo.Set) error {
	var f fixture
	if err := yaml.Unmarshal(fixtureYAML, &f); err != nil {
		return fmt.Errorf("parse seed fixture: %w", err)
	}

	for _, u := range f.Users {
		if _, ok := repos.Users.GetByID(ctx, u.ID); ok {
			continue
		}
		user := model.User{
			CompanyName:     u.CompanyName,
			Email:           u.Email,
			OnboardingStage: model.OnboardingStage(u.Stage),
		}
		user.ID = u.ID
		if _, err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, p := range f.Projects {
		if _, ok := repos.Projects.GetByID(ctx, p.ID); ok {
			continue
		}
		project := model.Project{
			Title:     p.Title,
			CreatorID: p.CreatorID,
			Category:  p.Category,
			Location:  p.Location,
			Status:    model.ProjectStatus(p.Status),
		}
		project.ID = p.ID
		if _, err := repos.Projects.Create(ctx, project); err != nil {
			return fmt.Errorf("seed project %s: %w", p.ID, err)
		}
	}

	for _, sp := range f.Providers {
		if _, ok := repos.Providers.GetByID(ctx, sp.ID); ok {
			continue
		}
		provider := model.ServiceProvider{
			Name:         sp.Name,
			Categories:   sp.Categories,
			Skills:       sp.Skills,
			Location:     sp.Location,
			Availability: sp.Availability,
			ProviderType: sp.ProviderType,
		}
		provider.ID = sp.ID
		if _, err := repos.Providers.Create(ctx, provider); err != nil {
			return fmt.Errorf("seed provider %s: %w", sp.ID, err)
		}
	}

	for _, b := range f.Beneficiaries {
		if _, ok := repos.Beneficiaries.GetByID(ctx, b.ID); ok {
			continue
		}
		beneficiary := model.Beneficiary{
			Name:             b.Name,
			RequiredServices: b.RequiredServices,
			Location:         b.Location,
		}
		beneficiary.ID = b.ID
		if _, err := repos.Beneficiaries.Create(ctx, beneficiary); err != nil {
			return fmt.Errorf("seed beneficiary %s: %w", b.ID, err)
		}
	}

	return nil
}
