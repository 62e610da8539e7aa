package model

// Collection keys. One logical collection per key; the KV adapter stores the
// whole collection as a single JSON array under its key.
const (
	KeyUsers                      = "users"
	KeyProjects                   = "projects"
	KeyProposals                  = "proposals"
	KeyContracts                  = "contracts"
	KeyEngagements                = "engagements"
	KeyMilestones                 = "milestones"
	KeyServiceProviders           = "service_providers_index"
	KeyBeneficiaries              = "beneficiaries_index"
	KeyServiceEvaluations         = "service_evaluations"
	KeyAudit                      = "audit"
	KeyNotifications              = "notifications"
	KeySessions                   = "sessions"
	KeyCollaborationOpportunities = "collaboration_opportunities"
	KeyCollaborationApplications  = "collaboration_applications"

	// KeyDataVersion holds the schema version scalar, not a collection.
	KeyDataVersion = "data_version"

	// KeyServiceIndex holds the index manager's sub-maps. Derived data,
	// rebuildable at any time from the source collections.
	KeyServiceIndex = "service_index"

	// Legacy collections read (never written) by the migration engine.
	KeyServiceEngagements = "service_engagements"
	KeyVendorRelations    = "vendor_relations"
)

// Entity kinds, used for audit entries and index notifications.
const (
	EntityUser                     = "user"
	EntityProject                  = "project"
	EntityProposal                 = "proposal"
	EntityContract                 = "contract"
	EntityEngagement               = "engagement"
	EntityMilestone                = "milestone"
	EntityServiceProvider          = "service_provider"
	EntityBeneficiary              = "beneficiary"
	EntityServiceEvaluation        = "service_evaluation"
	EntityNotification             = "notification"
	EntitySession                  = "session"
	EntityCollaborationOpportunity = "collaboration_opportunity"
	EntityCollaborationApplication = "collaboration_application"
)
