package migrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/repo"
)

func writeRaw(t *testing.T, adapter kv.Adapter, key string, docs []map[string]any) {
	t.Helper()
	data, err := json.Marshal(docs)
	require.NoError(t, err)
	require.True(t, adapter.Set(t.Context(), key, data))
}

func seedProject(t *testing.T, repos *repo.Set, id, owner string) {
	t.Helper()
	p := model.Project{Title: "Legacy Project", CreatorID: owner}
	p.ID = id
	_, err := repos.Projects.Create(t.Context(), p)
	require.NoError(t, err)
}

func TestBackfillProposalsReshapesLegacyDocs(t *testing.T) {
	adapter := kv.NewMemory()
	repos := newTestEnv(adapter)
	ctx := t.Context()
	seedProject(t, repos, "proj_1", "company_owner")

	writeRaw(t, adapter, model.KeyProposals, []map[string]any{
		{"id": "prop_legacy", "projectId": "proj_1", "companyId": "company_bid", "status": "approved"},
		{"id": "prop_pending", "projectId": "proj_1", "companyId": "company_bid2", "status": "in_review"},
	})

	e := New(adapter, repos, nil)
	got := e.Run(ctx)
	assert.Equal(t, "1.2.0", got)

	p, ok := repos.Proposals.GetByID(ctx, "prop_legacy")
	require.True(t, ok)
	assert.Equal(t, model.TargetProject, p.TargetType)
	assert.Equal(t, "proj_1", p.TargetID)
	assert.Equal(t, "company_bid", p.BidderCompanyID)
	assert.Equal(t, "company_owner", p.OwnerCompanyID)
	assert.Equal(t, model.ProposalAwarded, p.Status)

	p2, ok := repos.Proposals.GetByID(ctx, "prop_pending")
	require.True(t, ok)
	assert.Equal(t, model.ProposalUnderReview, p2.Status)
}

func TestBackfillLeavesCurrentDocsAlone(t *testing.T) {
	adapter := kv.NewMemory()
	repos := newTestEnv(adapter)
	ctx := t.Context()
	seedProject(t, repos, "proj_1", "company_owner")

	current, err := repos.Proposals.Create(ctx, model.Proposal{
		TargetType:      model.TargetProject,
		TargetID:        "proj_1",
		BidderCompanyID: "company_bid",
		Status:          model.ProposalSubmitted,
	})
	require.NoError(t, err)

	e := New(adapter, repos, nil)
	e.Run(ctx)

	got, ok := repos.Proposals.GetByID(ctx, current.ID)
	require.True(t, ok)
	assert.Equal(t, current.Status, got.Status)
	assert.Equal(t, current.BidderCompanyID, got.BidderCompanyID)
}

func TestSynthesizeContractsFromAwardedProposal(t *testing.T) {
	adapter := kv.NewMemory()
	repos := newTestEnv(adapter)
	ctx := t.Context()
	seedProject(t, repos, "proj_1", "company_owner")

	writeRaw(t, adapter, model.KeyProposals, []map[string]any{
		{"id": "prop_won", "projectId": "proj_1", "companyId": "company_bid", "status": "accepted"},
	})

	e := New(adapter, repos, nil)
	e.Run(ctx)

	contracts := repos.Contracts.GetBySourceProposal(ctx, "prop_won")
	require.Len(t, contracts, 1)
	ct := contracts[0]
	assert.Equal(t, model.ContractTypeProject, ct.ContractType)
	assert.Equal(t, model.ContractSigned, ct.Status)
	assert.Equal(t, "company_owner", ct.BuyerPartyID)
	assert.Equal(t, "company_bid", ct.ProviderPartyID)
	assert.NotNil(t, ct.SignedAt)

	engagements := repos.Engagements.GetByContract(ctx, ct.ID)
	require.Len(t, engagements, 1)
	assert.Equal(t, model.EngagementActive, engagements[0].Status)
}

func TestMigrationRunTwiceConverges(t *testing.T) {
	adapter := kv.NewMemory()
	repos := newTestEnv(adapter)
	ctx := t.Context()
	seedProject(t, repos, "proj_1", "company_owner")
	writeRaw(t, adapter, model.KeyProposals, []map[string]any{
		{"id": "prop_won", "projectId": "proj_1", "companyId": "company_bid", "status": "accepted"},
	})

	New(adapter, repos, nil).Run(ctx)
	contractsAfterFirst := repos.Contracts.GetAll(ctx)
	engagementsAfterFirst := repos.Engagements.GetAll(ctx)

	// Wipe the stored version to force every step to re-run; the provenance
	// probes keep the second pass from duplicating anything.
	adapter.Delete(ctx, model.KeyDataVersion)
	New(adapter, repos, nil).Run(ctx)

	assert.Equal(t, len(contractsAfterFirst), len(repos.Contracts.GetAll(ctx)))
	assert.Equal(t, len(engagementsAfterFirst), len(repos.Engagements.GetAll(ctx)))
}

func TestSynthesizeFromLegacyServiceEngagements(t *testing.T) {
	adapter := kv.NewMemory()
	repos := newTestEnv(adapter)
	ctx := t.Context()

	writeRaw(t, adapter, model.KeyServiceEngagements, []map[string]any{
		{"id": "se_1", "serviceOfferId": "offer_1", "clientCompanyId": "client_co",
			"providerCompanyId": "prov_co", "status": "active"},
		{"id": "se_2", "serviceOfferId": "offer_2", "clientCompanyId": "client_co",
			"providerCompanyId": "prov_co", "status": "ended"},
	})

	New(adapter, repos, nil).Run(ctx)

	contracts := repos.Contracts.GetAll(ctx)
	require.Len(t, contracts, 1, "only active legacy engagements synthesize")
	ct := contracts[0]
	assert.Equal(t, model.ContractTypeService, ct.ContractType)
	assert.Equal(t, "offer_1", ct.SourceServiceOfferID)
	assert.Equal(t, "client_co", ct.BuyerPartyID)
	assert.Equal(t, "prov_co", ct.ProviderPartyID)

	engagements := repos.Engagements.GetByContract(ctx, ct.ID)
	require.Len(t, engagements, 1)
	assert.Equal(t, "SERVICE_DELIVERY", engagements[0].EngagementType)
}

func TestSynthesizeSubContractsFromVendorRelations(t *testing.T) {
	adapter := kv.NewMemory()
	repos := newTestEnv(adapter)
	ctx := t.Context()

	parent, err := repos.Contracts.Create(ctx, model.Contract{
		ContractType:    model.ContractTypeProject,
		BuyerPartyID:    "owner_co",
		ProviderPartyID: "vendor_co",
		Status:          model.ContractSigned,
	})
	require.NoError(t, err)

	writeRaw(t, adapter, model.KeyVendorRelations, []map[string]any{
		{"vendorCompanyId": "vendor_co", "subcontractorCompanyId": "sub_co", "status": "active"},
		{"vendorCompanyId": "vendor_co", "subcontractorCompanyId": "idle_co", "status": "ended"},
	})

	New(adapter, repos, nil).Run(ctx)

	subs := repos.Contracts.GetSubContracts(ctx, parent.ID)
	require.Len(t, subs, 1)
	assert.Equal(t, "vendor_co", subs[0].BuyerPartyID)
	assert.Equal(t, "sub_co", subs[0].ProviderPartyID)
	assert.Equal(t, model.ContractSigned, subs[0].Status)

	// Re-running does not duplicate the sub-contract.
	adapter.Delete(ctx, model.KeyDataVersion)
	New(adapter, repos, nil).Run(ctx)
	assert.Len(t, repos.Contracts.GetSubContracts(ctx, parent.ID), 1)
}
