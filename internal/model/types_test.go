package model

import "testing"

func TestContractTypeForTarget(t *testing.T) {
	tests := []struct {
		target TargetType
		want   ContractType
	}{
		{TargetProject, ContractTypeProject},
		{TargetMegaProject, ContractTypeMegaProject},
		{TargetServiceRequest, ContractTypeService},
		{TargetType("UNKNOWN"), ContractTypeProject},
	}
	for _, tt := range tests {
		if got := ContractTypeForTarget(tt.target); got != tt.want {
			t.Errorf("ContractTypeForTarget(%s) = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestOnboardingStageRank(t *testing.T) {
	if StageRegistered.Rank() >= StageVerified.Rank() {
		t.Error("REGISTERED should rank below VERIFIED")
	}
	if StageVerified.Rank() >= StageApproved.Rank() {
		t.Error("VERIFIED should rank below APPROVED")
	}
	if OnboardingStage("bogus").Rank() != -1 {
		t.Error("unknown stage should rank -1")
	}
}

func TestActorContext(t *testing.T) {
	ctx := WithActor(t.Context(), "user_1")
	if got := ActorFromContext(ctx); got != "user_1" {
		t.Errorf("ActorFromContext = %q, want user_1", got)
	}
	if got := ActorFromContext(t.Context()); got != "" {
		t.Errorf("ActorFromContext on bare context = %q, want empty", got)
	}
}
