package model

import (
	"encoding/json"
	"time"
)

// User is a portal account. Onboarding state gates feature access; the
// identity, documents and review blocks are filled in as the user advances.
type User struct {
	Meta
	CompanyName     string          `json:"companyName"`
	Email           string          `json:"email"`
	Role            string          `json:"role,omitempty"`
	OnboardingStage OnboardingStage `json:"onboardingStage"`
	Identity        *Identity       `json:"identity,omitempty"`
	Documents       []UserDocument  `json:"documents,omitempty"`
	Review          *Review         `json:"review,omitempty"`
}

// Identity is the verified-identity block on a User.
type Identity struct {
	LegalName      string     `json:"legalName"`
	RegistrationNo string     `json:"registrationNo,omitempty"`
	Country        string     `json:"country,omitempty"`
	VerifiedAt     *time.Time `json:"verifiedAt,omitempty"`
}

// UserDocument is an uploaded onboarding document reference.
type UserDocument struct {
	Kind       string     `json:"kind"`
	Name       string     `json:"name"`
	UploadedAt time.Time  `json:"uploadedAt"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// Review is the back-office review outcome on a User.
type Review struct {
	ReviewerID string     `json:"reviewerId"`
	Outcome    string     `json:"outcome"`
	Notes      string     `json:"notes,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// Project is a construction project looking for providers.
// OwnerCompanyID is derived from CreatorID when not supplied.
type Project struct {
	Meta
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	CreatorID      string        `json:"creatorId"`
	OwnerCompanyID string        `json:"ownerCompanyId"`
	Status         ProjectStatus `json:"status"`
	Category       string        `json:"category,omitempty"`
	Location       string        `json:"location,omitempty"`
	ProposalCount  int           `json:"proposalCount"`
	ViewCount      int           `json:"viewCount"`
}

// Proposal is a bid on a target. The repository rejects proposals whose
// bidder and owner are the same company.
type Proposal struct {
	Meta
	TargetType      TargetType     `json:"targetType"`
	TargetID        string         `json:"targetId"`
	BidderCompanyID string         `json:"bidderCompanyId"`
	OwnerCompanyID  string         `json:"ownerCompanyId"`
	Status          ProposalStatus `json:"status"`
	Summary         string         `json:"summary,omitempty"`
	Amount          int64          `json:"amount,omitempty"`
	Currency        string         `json:"currency,omitempty"`
	SubmittedAt     *time.Time     `json:"submittedAt,omitempty"`
}

// ContractTerms carries the commercial body of a Contract. Persisted inline
// as the contract's termsJSON.
type ContractTerms struct {
	PricingModel string          `json:"pricingModel,omitempty"`
	TotalAmount  int64           `json:"totalAmount,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	PaymentTerms string          `json:"paymentTerms,omitempty"`
	Deliverables []string        `json:"deliverables,omitempty"`
	Milestones   []TermMilestone `json:"milestones,omitempty"`
}

// TermMilestone is a milestone as written in contract terms, before any
// Milestone document exists for it.
type TermMilestone struct {
	Title    string `json:"title"`
	Amount   int64  `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
}

// Contract governs work between a buyer party and a provider party.
// A SUB_CONTRACT always names a ParentContractID whose provider party equals
// this contract's buyer party.
type Contract struct {
	Meta
	ContractType         ContractType   `json:"contractType"`
	ScopeType            TargetType     `json:"scopeType"`
	ScopeID              string         `json:"scopeId"`
	BuyerPartyID         string         `json:"buyerPartyId"`
	BuyerPartyType       PartyType      `json:"buyerPartyType"`
	ProviderPartyID      string         `json:"providerPartyId"`
	ProviderPartyType    PartyType      `json:"providerPartyType"`
	ParentContractID     string         `json:"parentContractId,omitempty"`
	Status               ContractStatus `json:"status"`
	Terms                ContractTerms  `json:"terms"`
	SourceProposalID     string         `json:"sourceProposalId,omitempty"`
	SourceServiceOfferID string         `json:"sourceServiceOfferId,omitempty"`
	SignedAt             *time.Time     `json:"signedAt,omitempty"`
	SignedBy             string         `json:"signedBy,omitempty"`
	CompletedAt          *time.Time     `json:"completedAt,omitempty"`
}

// Engagement is the executable unit of work under a signed Contract.
// It cannot exist without one; the repository verifies the reference.
type Engagement struct {
	Meta
	ContractID          string           `json:"contractId"`
	EngagementType      string           `json:"engagementType,omitempty"`
	Status              EngagementStatus `json:"status"`
	AssignedToScopeType string           `json:"assignedToScopeType,omitempty"`
	AssignedToScopeID   string           `json:"assignedToScopeId,omitempty"`
	MilestoneIDs        []string         `json:"milestoneIds,omitempty"`
	PausedAt            *time.Time       `json:"pausedAt,omitempty"`
	CompletedAt         *time.Time       `json:"completedAt,omitempty"`
}

// Milestone is a paid checkpoint within an Engagement.
type Milestone struct {
	Meta
	EngagementID string          `json:"engagementId"`
	ContractID   string          `json:"contractId"`
	Title        string          `json:"title,omitempty"`
	Status       MilestoneStatus `json:"status"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	Amount       int64           `json:"amount,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// Offering is a discrete service a provider sells, indexed by category.
type Offering struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// ServiceProvider is an indexed directory entry for a company selling
// services into projects.
type ServiceProvider struct {
	Meta
	Name         string     `json:"name"`
	Categories   []string   `json:"categories,omitempty"`
	Skills       []string   `json:"skills,omitempty"`
	Location     string     `json:"location,omitempty"`
	Availability string     `json:"availability,omitempty"`
	ProviderType string     `json:"providerType,omitempty"`
	Offerings    []Offering `json:"offerings,omitempty"`
}

// Beneficiary is an indexed directory entry for a party consuming services.
type Beneficiary struct {
	Meta
	Name             string   `json:"name"`
	RequiredServices []string `json:"requiredServices,omitempty"`
	Location         string   `json:"location,omitempty"`
}

// ServiceEvaluation is a rating left for a provider after an engagement.
type ServiceEvaluation struct {
	Meta
	ProviderID   string `json:"providerId"`
	EvaluatorID  string `json:"evaluatorId"`
	EngagementID string `json:"engagementId,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
}

// CollaborationOpportunity is a call for partners on shared work.
type CollaborationOpportunity struct {
	Meta
	CreatorCompanyID string `json:"creatorCompanyId"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Category         string `json:"category,omitempty"`
	Status           string `json:"status"`
}

// CollaborationApplication is a company's application to an opportunity.
type CollaborationApplication struct {
	Meta
	OpportunityID      string `json:"opportunityId"`
	ApplicantCompanyID string `json:"applicantCompanyId"`
	Message            string `json:"message,omitempty"`
	Status             string `json:"status"`
}

// Notification is an in-portal message for a user.
type Notification struct {
	Meta
	RecipientID string     `json:"recipientId"`
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Body        string     `json:"body,omitempty"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

// Session is a login session. Tokens are UUIDv7 strings assigned on create.
type Session struct {
	Meta
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuditEntry is one append-only record of a mutation. CreatedAt is the
// entry's timestamp; Before/After hold optional document snapshots.
type AuditEntry struct {
	Meta
	UserID     string          `json:"userId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}
