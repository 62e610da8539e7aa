package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaahub/binaa-core/internal/model"
)

func createContract(t *testing.T, s *Set, buyer, provider string) model.Contract {
	t.Helper()
	ct, err := s.Contracts.Create(t.Context(), model.Contract{
		ContractType:      model.ContractTypeProject,
		ScopeType:         model.TargetProject,
		ScopeID:           "proj_1",
		BuyerPartyID:      buyer,
		BuyerPartyType:    model.PartyCompany,
		ProviderPartyID:   provider,
		ProviderPartyType: model.PartyCompany,
	})
	require.NoError(t, err)
	return ct
}

func TestContractCreateDefaultsToDraft(t *testing.T) {
	s := newTestSet()
	ct := createContract(t, s, "buyer", "provider")
	assert.Equal(t, model.ContractDraft, ct.Status)
	assert.Nil(t, ct.SignedAt)
}

func TestContractCreatedSignedGetsStamp(t *testing.T) {
	// Migration synthesis creates contracts directly in SIGNED.
	s := newTestSet()
	ct, err := s.Contracts.Create(t.Context(), model.Contract{
		ContractType:    model.ContractTypeService,
		ScopeType:       model.TargetServiceRequest,
		ScopeID:         "offer_1",
		BuyerPartyID:    "buyer",
		ProviderPartyID: "provider",
		Status:          model.ContractSigned,
	})
	require.NoError(t, err)
	assert.NotNil(t, ct.SignedAt)
}

func TestSubContractRequiresMatchingParent(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	parent := createContract(t, s, "owner_co", "vendor_co")

	// Valid: the sub-contract's buyer is the parent's provider.
	sub, err := s.Contracts.Create(ctx, model.Contract{
		ContractType:     model.ContractTypeSub,
		ScopeType:        parent.ScopeType,
		ScopeID:          parent.ScopeID,
		BuyerPartyID:     "vendor_co",
		ProviderPartyID:  "sub_co",
		ParentContractID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, sub.ParentContractID)

	// Buyer does not match the parent's provider.
	_, err = s.Contracts.Create(ctx, model.Contract{
		ContractType:     model.ContractTypeSub,
		BuyerPartyID:     "someone_else",
		ProviderPartyID:  "sub_co",
		ParentContractID: parent.ID,
	})
	assert.ErrorIs(t, err, ErrBadParentContract)

	// Dangling parent reference.
	_, err = s.Contracts.Create(ctx, model.Contract{
		ContractType:     model.ContractTypeSub,
		BuyerPartyID:     "vendor_co",
		ProviderPartyID:  "sub_co",
		ParentContractID: "ctr_missing",
	})
	assert.ErrorIs(t, err, ErrBadParentContract)

	// Only sub-contracts carry a parent.
	_, err = s.Contracts.Create(ctx, model.Contract{
		ContractType:     model.ContractTypeProject,
		BuyerPartyID:     "vendor_co",
		ProviderPartyID:  "sub_co",
		ParentContractID: parent.ID,
	})
	assert.ErrorIs(t, err, ErrBadParentContract)
}

func TestContractSignedAtStampedOnce(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	ct := createContract(t, s, "buyer", "provider")

	ct, ok := s.Contracts.UpdateStatus(ctx, ct.ID, model.ContractSent)
	require.True(t, ok)
	ct, ok = s.Contracts.UpdateStatus(ctx, ct.ID, model.ContractSigned)
	require.True(t, ok)
	require.NotNil(t, ct.SignedAt)
	first := *ct.SignedAt

	// Bouncing back through SIGNED leaves the original stamp.
	_, ok = s.Contracts.UpdateStatus(ctx, ct.ID, model.ContractActive)
	require.True(t, ok)
	ct, ok = s.Contracts.UpdateStatus(ctx, ct.ID, model.ContractSigned)
	require.True(t, ok)
	require.NotNil(t, ct.SignedAt)
	assert.Equal(t, first, *ct.SignedAt)
}

func TestContractSignedByFromActor(t *testing.T) {
	s := newTestSet()
	ctx := model.WithActor(t.Context(), "user_signer")
	ct := createContract(t, s, "buyer", "provider")

	_, ok := s.Contracts.UpdateStatus(ctx, ct.ID, model.ContractSent)
	require.True(t, ok)
	ct, ok = s.Contracts.UpdateStatus(ctx, ct.ID, model.ContractSigned)
	require.True(t, ok)
	assert.Equal(t, "user_signer", ct.SignedBy)
}

func TestContractCompletedAtStamped(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	ct := createContract(t, s, "buyer", "provider")

	for _, status := range []model.ContractStatus{
		model.ContractSent, model.ContractSigned, model.ContractActive, model.ContractCompleted,
	} {
		var ok bool
		ct, ok = s.Contracts.UpdateStatus(ctx, ct.ID, status)
		require.True(t, ok)
	}
	assert.NotNil(t, ct.CompletedAt)
}

func TestContractDeleteRefusedWhileEngagementsLive(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	ct := createContract(t, s, "buyer", "provider")

	e, err := s.Engagements.Create(ctx, model.Engagement{
		ContractID: ct.ID,
		Status:     model.EngagementActive,
	})
	require.NoError(t, err)

	deleted, err := s.Contracts.Delete(ctx, ct.ID)
	assert.ErrorIs(t, err, ErrContractInUse)
	assert.False(t, deleted)
	_, ok := s.Contracts.GetByID(ctx, ct.ID)
	assert.True(t, ok)

	// Once every engagement is terminal the delete goes through.
	_, ok = s.Engagements.UpdateStatus(ctx, e.ID, model.EngagementCompleted)
	require.True(t, ok)
	deleted, err = s.Contracts.Delete(ctx, ct.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestContractProvenanceLookups(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()

	ct, err := s.Contracts.Create(ctx, model.Contract{
		ContractType:     model.ContractTypeProject,
		BuyerPartyID:     "buyer",
		ProviderPartyID:  "vendor",
		SourceProposalID: "prop_9",
	})
	require.NoError(t, err)
	sub, err := s.Contracts.Create(ctx, model.Contract{
		ContractType:     model.ContractTypeSub,
		BuyerPartyID:     "vendor",
		ProviderPartyID:  "sub_co",
		ParentContractID: ct.ID,
	})
	require.NoError(t, err)

	assert.Len(t, s.Contracts.GetBySourceProposal(ctx, "prop_9"), 1)
	subs := s.Contracts.GetSubContracts(ctx, ct.ID)
	require.Len(t, subs, 1)
	assert.Equal(t, sub.ID, subs[0].ID)
	assert.Len(t, s.Contracts.GetByParty(ctx, "vendor"), 2)
	assert.Len(t, s.Contracts.GetByProvider(ctx, "vendor"), 1)
}
