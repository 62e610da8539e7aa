// Package access gates portal features by onboarding stage.
//
// The rendering layer asks before showing a section; the answer is a
// Decision value, never an error - a denied feature is an expected
// condition, not a failure.
package access

import (
	"fmt"

	"github.com/binaahub/binaa-core/internal/model"
)

// Decision is the outcome of a feature-access check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Feature names the UI sections the core knows how to gate.
const (
	FeatureBrowseProjects    = "browse_projects"
	FeatureViewDashboard     = "view_dashboard"
	FeatureCreateProject     = "create_project"
	FeatureSubmitProposal    = "submit_proposal"
	FeatureApplyOpportunity  = "apply_opportunity"
	FeatureSignContract      = "sign_contract"
	FeatureManageEngagements = "manage_engagements"
	FeatureEvaluateProvider  = "evaluate_provider"
)

// requiredStage maps each feature to the minimum onboarding stage.
var requiredStage = map[string]model.OnboardingStage{
	FeatureBrowseProjects:    model.StageRegistered,
	FeatureViewDashboard:     model.StageRegistered,
	FeatureCreateProject:     model.StageVerified,
	FeatureSubmitProposal:    model.StageVerified,
	FeatureApplyOpportunity:  model.StageVerified,
	FeatureSignContract:      model.StageApproved,
	FeatureManageEngagements: model.StageApproved,
	FeatureEvaluateProvider:  model.StageApproved,
}

// CheckFeatureAccess decides whether the user may reach the feature.
// Unknown features are denied, unknown stages rank below every
// requirement.
func CheckFeatureAccess(user model.User, feature string) Decision {
	required, ok := requiredStage[feature]
	if !ok {
		return Decision{Allowed: false, Reason: fmt.Sprintf("unknown feature %q", feature)}
	}
	if user.OnboardingStage.Rank() >= required.Rank() {
		return Decision{Allowed: true}
	}
	return Decision{
		Allowed: false,
		Reason: fmt.Sprintf("requires onboarding stage %s, user is at %s",
			required, user.OnboardingStage),
	}
}
