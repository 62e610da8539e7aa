package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// Set is the full repository layer over one store, with the cross-entity
// lookups wired: proposals resolve owners through projects, engagements
// verify contracts, contract deletion consults engagements.
type Set struct {
	Users         *Users
	Projects      *Projects
	Proposals     *Proposals
	Contracts     *Contracts
	Engagements   *Engagements
	Milestones    *Milestones
	Providers     *ServiceProviders
	Beneficiaries *Beneficiaries
	Evaluations   *ServiceEvaluations
	Opportunities *CollaborationOpportunities
	Applications  *CollaborationApplications
	Notifications *Notifications
	Sessions      *Sessions
}

// NewSet builds every repository from one Deps value and wires the
// cross-entity relationships.
func NewSet(deps Deps) *Set {
	deps = deps.normalized()
	s := &Set{
		Users:         newUsers(deps),
		Projects:      newProjects(deps),
		Proposals:     newProposals(deps),
		Contracts:     newContracts(deps),
		Engagements:   newEngagements(deps),
		Milestones:    newMilestones(deps),
		Providers:     newServiceProviders(deps),
		Beneficiaries: newBeneficiaries(deps),
		Evaluations:   newServiceEvaluations(deps),
		Opportunities: newCollaborationOpportunities(deps),
		Applications:  newCollaborationApplications(deps),
		Notifications: newNotifications(deps),
		Sessions:      newSessions(deps),
	}

	// A proposal's owner defaults to its target's owner. Only projects and
	// mega-projects resolve locally; service requests belong to an external
	// collaborator and resolve through whatever the caller supplies on the
	// proposal itself.
	s.Proposals.owner = func(ctx context.Context, targetType model.TargetType, targetID string) (string, bool) {
		switch targetType {
		case model.TargetProject, model.TargetMegaProject:
			if p, ok := s.Projects.GetByID(ctx, targetID); ok {
				return p.OwnerCompanyID, true
			}
		}
		return "", false
	}

	// New proposals bump the target project's counter.
	s.Proposals.onCreated = func(ctx context.Context, p model.Proposal) {
		if p.TargetType == model.TargetProject || p.TargetType == model.TargetMegaProject {
			s.Projects.IncrementProposalCount(ctx, p.TargetID)
		}
	}

	s.Engagements.contractExists = func(ctx context.Context, contractID string) bool {
		_, ok := s.Contracts.GetByID(ctx, contractID)
		return ok
	}

	s.Contracts.liveEngagements = s.Engagements.hasLive

	return s
}
