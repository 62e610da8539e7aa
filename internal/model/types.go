package model

// TargetType identifies what a Proposal bids on, and doubles as the scope
// vocabulary on Contracts.
type TargetType string

const (
	TargetProject        TargetType = "PROJECT"
	TargetMegaProject    TargetType = "MEGA_PROJECT"
	TargetServiceRequest TargetType = "SERVICE_REQUEST"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetProject, TargetMegaProject, TargetServiceRequest:
		return true
	}
	return false
}

// ContractType classifies a Contract by what it governs.
type ContractType string

const (
	ContractTypeProject     ContractType = "PROJECT_CONTRACT"
	ContractTypeMegaProject ContractType = "MEGA_PROJECT_CONTRACT"
	ContractTypeService     ContractType = "SERVICE_CONTRACT"
	ContractTypeAdvisory    ContractType = "ADVISORY_CONTRACT"
	ContractTypeSub         ContractType = "SUB_CONTRACT"
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractTypeProject, ContractTypeMegaProject, ContractTypeService,
		ContractTypeAdvisory, ContractTypeSub:
		return true
	}
	return false
}

// ContractTypeForTarget maps a proposal's target type to the contract type
// synthesized when that proposal is awarded.
func ContractTypeForTarget(t TargetType) ContractType {
	switch t {
	case TargetMegaProject:
		return ContractTypeMegaProject
	case TargetServiceRequest:
		return ContractTypeService
	default:
		return ContractTypeProject
	}
}

// PartyType classifies a contract party.
type PartyType string

const (
	PartyCompany         PartyType = "COMPANY"
	PartyServiceProvider PartyType = "SERVICE_PROVIDER"
	PartyIndividual      PartyType = "INDIVIDUAL"
)

// OnboardingStage gates which portal features a user may reach.
// Stages are ordered; a later stage implies every earlier one.
type OnboardingStage string

const (
	StageRegistered OnboardingStage = "REGISTERED"
	StageVerified   OnboardingStage = "VERIFIED"
	StageApproved   OnboardingStage = "APPROVED"
)

// Rank returns the stage's position in the onboarding order, -1 if unknown.
func (s OnboardingStage) Rank() int {
	switch s {
	case StageRegistered:
		return 0
	case StageVerified:
		return 1
	case StageApproved:
		return 2
	}
	return -1
}
