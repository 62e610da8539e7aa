package model

// ProposalStatus is the lifecycle state of a Proposal.
type ProposalStatus string

const (
	ProposalDraft       ProposalStatus = "DRAFT"
	ProposalSubmitted   ProposalStatus = "SUBMITTED"
	ProposalUnderReview ProposalStatus = "UNDER_REVIEW"
	ProposalShortlisted ProposalStatus = "SHORTLISTED"
	ProposalNegotiation ProposalStatus = "NEGOTIATION"
	ProposalAwarded     ProposalStatus = "AWARDED"
	ProposalRejected    ProposalStatus = "REJECTED"
	ProposalWithdrawn   ProposalStatus = "WITHDRAWN"
)

// Valid reports whether s is a known proposal status.
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalDraft, ProposalSubmitted, ProposalUnderReview, ProposalShortlisted,
		ProposalNegotiation, ProposalAwarded, ProposalRejected, ProposalWithdrawn:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalAwarded || s == ProposalRejected || s == ProposalWithdrawn
}

// proposalTransitions is the documented happy-path machine:
// DRAFT → SUBMITTED → UNDER_REVIEW → SHORTLISTED → NEGOTIATION →
// {AWARDED, REJECTED, WITHDRAWN}. Withdrawal and rejection are reachable
// from any non-terminal state.
var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalDraft:       {ProposalSubmitted, ProposalWithdrawn},
	ProposalSubmitted:   {ProposalUnderReview, ProposalRejected, ProposalWithdrawn},
	ProposalUnderReview: {ProposalShortlisted, ProposalRejected, ProposalWithdrawn},
	ProposalShortlisted: {ProposalNegotiation, ProposalRejected, ProposalWithdrawn},
	ProposalNegotiation: {ProposalAwarded, ProposalRejected, ProposalWithdrawn},
}

// CanTransition reports whether old → next follows the documented machine.
// Repositories do not reject off-path transitions (bulk tooling and
// migrations jump states); they log them. Timestamp side effects are always
// derived from the old → new pair regardless.
func (s ProposalStatus) CanTransition(next ProposalStatus) bool {
	for _, t := range proposalTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// ContractStatus is the lifecycle state of a Contract.
type ContractStatus string

const (
	ContractDraft      ContractStatus = "DRAFT"
	ContractSent       ContractStatus = "SENT"
	ContractSigned     ContractStatus = "SIGNED"
	ContractActive     ContractStatus = "ACTIVE"
	ContractCompleted  ContractStatus = "COMPLETED"
	ContractTerminated ContractStatus = "TERMINATED"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractDraft, ContractSent, ContractSigned, ContractActive,
		ContractCompleted, ContractTerminated:
		return true
	}
	return false
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractDraft:  {ContractSent, ContractTerminated},
	ContractSent:   {ContractSigned, ContractTerminated},
	ContractSigned: {ContractActive, ContractTerminated},
	ContractActive: {ContractCompleted, ContractTerminated},
}

func (s ContractStatus) CanTransition(next ContractStatus) bool {
	for _, t := range contractTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// EngagementStatus is the lifecycle state of an Engagement.
// ACTIVE and PAUSED alternate freely; COMPLETED and CANCELED are terminal.
type EngagementStatus string

const (
	EngagementPlanned   EngagementStatus = "PLANNED"
	EngagementActive    EngagementStatus = "ACTIVE"
	EngagementPaused    EngagementStatus = "PAUSED"
	EngagementCompleted EngagementStatus = "COMPLETED"
	EngagementCanceled  EngagementStatus = "CANCELED"
)

func (s EngagementStatus) Valid() bool {
	switch s {
	case EngagementPlanned, EngagementActive, EngagementPaused,
		EngagementCompleted, EngagementCanceled:
		return true
	}
	return false
}

var engagementTransitions = map[EngagementStatus][]EngagementStatus{
	EngagementPlanned: {EngagementActive, EngagementCanceled},
	EngagementActive:  {EngagementPaused, EngagementCompleted, EngagementCanceled},
	EngagementPaused:  {EngagementActive, EngagementCompleted, EngagementCanceled},
}

func (s EngagementStatus) CanTransition(next EngagementStatus) bool {
	for _, t := range engagementTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// MilestoneStatus is the lifecycle state of a Milestone.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "PENDING"
	MilestoneInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneCompleted  MilestoneStatus = "COMPLETED"
	MilestoneApproved   MilestoneStatus = "APPROVED"
	MilestoneRejected   MilestoneStatus = "REJECTED"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted,
		MilestoneApproved, MilestoneRejected:
		return true
	}
	return false
}

var milestoneTransitions = map[MilestoneStatus][]MilestoneStatus{
	MilestonePending:    {MilestoneInProgress},
	MilestoneInProgress: {MilestoneCompleted},
	MilestoneCompleted:  {MilestoneApproved, MilestoneRejected},
	// A rejected milestone goes back to work.
	MilestoneRejected: {MilestoneInProgress},
}

func (s MilestoneStatus) CanTransition(next MilestoneStatus) bool {
	for _, t := range milestoneTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// ProjectStatus is the lifecycle state of a Project.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "DRAFT"
	ProjectPublished  ProjectStatus = "PUBLISHED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectArchived   ProjectStatus = "ARCHIVED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectDraft, ProjectPublished, ProjectInProgress,
		ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}
