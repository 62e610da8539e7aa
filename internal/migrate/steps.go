package migrate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/binaahub/binaa-core/internal/model"
)

// Steps returns the standard migration list, ordered by target version.
func Steps() []Step {
	return []Step{
		{Version: "1.1.0", Name: "backfill_proposals", Run: backfillProposals},
		{Version: "1.2.0", Name: "synthesize_contracts", Run: synthesizeContracts},
	}
}

// legacyStatusMap remaps the lowercase status strings of pre-1.1.0
// proposals onto the current vocabulary.
var legacyStatusMap = map[string]model.ProposalStatus{
	"draft":       model.ProposalDraft,
	"submitted":   model.ProposalSubmitted,
	"pending":     model.ProposalSubmitted,
	"in_review":   model.ProposalUnderReview,
	"shortlisted": model.ProposalShortlisted,
	"negotiation": model.ProposalNegotiation,
	"approved":    model.ProposalAwarded,
	"accepted":    model.ProposalAwarded,
	"rejected":    model.ProposalRejected,
	"declined":    model.ProposalRejected,
	"withdrawn":   model.ProposalWithdrawn,
}

// backfillProposals (1.1.0) rewrites legacy proposals into the current
// shape: targetType/targetId derived from the old projectId field,
// bidderCompanyId from the old companyId field, ownerCompanyId from the
// target project's owner, and the status vocabulary remapped. Documents
// already carrying bidderCompanyId and targetType pass through unchanged,
// so the step converges.
func backfillProposals(ctx context.Context, env Env) error {
	raw := env.KV.Get(ctx, model.KeyProposals)
	if raw == nil {
		return nil
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return fmt.Errorf("read legacy proposals: %w", err)
	}

	out := make([]model.Proposal, 0, len(docs))
	changed := false
	for _, doc := range docs {
		// Round-trip through the typed shape; matching fields carry over.
		var p model.Proposal
		bytes, err := json.Marshal(doc)
		if err == nil {
			_ = json.Unmarshal(bytes, &p)
		}

		if p.BidderCompanyID != "" && p.TargetType.Valid() && p.Status.Valid() {
			out = append(out, p)
			continue
		}
		changed = true

		if p.TargetID == "" {
			p.TargetID = stringField(doc, "projectId")
		}
		if !p.TargetType.Valid() {
			p.TargetType = model.TargetProject
		}
		if p.BidderCompanyID == "" {
			p.BidderCompanyID = stringField(doc, "companyId")
		}
		if p.OwnerCompanyID == "" {
			if project, ok := env.Repos.Projects.GetByID(ctx, p.TargetID); ok {
				p.OwnerCompanyID = project.OwnerCompanyID
			}
		}
		if !p.Status.Valid() {
			if mapped, ok := legacyStatusMap[stringField(doc, "status")]; ok {
				p.Status = mapped
			} else {
				p.Status = model.ProposalDraft
			}
		}
		out = append(out, p)
	}

	if !changed {
		return nil
	}
	if !env.Repos.Proposals.ReplaceAll(ctx, out) {
		return fmt.Errorf("persist backfilled proposals: %w", errPersist)
	}
	return nil
}

var errPersist = fmt.Errorf("kv set failed")

// synthesizeContracts (1.2.0) creates the contract/engagement documents the
// pre-contract data model implied:
//
//   - every AWARDED proposal without a contract gets a SIGNED contract
//     (provenance: sourceProposalId) and an ACTIVE engagement under it;
//   - every active legacy service engagement record without a contract gets
//     a SIGNED SERVICE_CONTRACT (provenance: sourceServiceOfferId) and an
//     ACTIVE engagement;
//   - every active vendor/sub-contractor relationship gets a SUB_CONTRACT
//     under each of the vendor's signed contracts that lacks one for that
//     sub-contractor.
//
// Every branch probes for its provenance marker first, so re-running never
// duplicates a document.
func synthesizeContracts(ctx context.Context, env Env) error {
	if err := contractsFromAwardedProposals(ctx, env); err != nil {
		return err
	}
	if err := contractsFromServiceEngagements(ctx, env); err != nil {
		return err
	}
	return subContractsFromVendorRelations(ctx, env)
}

func contractsFromAwardedProposals(ctx context.Context, env Env) error {
	for _, p := range env.Repos.Proposals.GetByStatus(ctx, model.ProposalAwarded) {
		if len(env.Repos.Contracts.GetBySourceProposal(ctx, p.ID)) > 0 {
			continue
		}
		ct, err := env.Repos.Contracts.Create(ctx, model.Contract{
			ContractType:      model.ContractTypeForTarget(p.TargetType),
			ScopeType:         p.TargetType,
			ScopeID:           p.TargetID,
			BuyerPartyID:      p.OwnerCompanyID,
			BuyerPartyType:    model.PartyCompany,
			ProviderPartyID:   p.BidderCompanyID,
			ProviderPartyType: model.PartyCompany,
			Status:            model.ContractSigned,
			SourceProposalID:  p.ID,
			Terms: model.ContractTerms{
				TotalAmount: p.Amount,
				Currency:    p.Currency,
			},
		})
		if err != nil {
			return fmt.Errorf("synthesize contract for proposal %s: %w", p.ID, err)
		}
		if err := ensureEngagement(ctx, env, ct); err != nil {
			return err
		}
	}
	return nil
}

func contractsFromServiceEngagements(ctx context.Context, env Env) error {
	raw := env.KV.Get(ctx, model.KeyServiceEngagements)
	if raw == nil {
		return nil
	}
	var legacy []map[string]any
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return fmt.Errorf("read legacy service engagements: %w", err)
	}

	for _, doc := range legacy {
		if stringField(doc, "status") != "active" {
			continue
		}
		offerID := stringField(doc, "serviceOfferId")
		if offerID == "" {
			offerID = stringField(doc, "id")
		}
		existing := env.Repos.Contracts.GetAll(ctx)
		if hasSourceOffer(existing, offerID) {
			continue
		}
		ct, err := env.Repos.Contracts.Create(ctx, model.Contract{
			ContractType:         model.ContractTypeService,
			ScopeType:            model.TargetServiceRequest,
			ScopeID:              offerID,
			BuyerPartyID:         stringField(doc, "clientCompanyId"),
			BuyerPartyType:       model.PartyCompany,
			ProviderPartyID:      stringField(doc, "providerCompanyId"),
			ProviderPartyType:    model.PartyServiceProvider,
			Status:               model.ContractSigned,
			SourceServiceOfferID: offerID,
		})
		if err != nil {
			return fmt.Errorf("synthesize service contract for offer %s: %w", offerID, err)
		}
		if err := ensureEngagement(ctx, env, ct); err != nil {
			return err
		}
	}
	return nil
}

func subContractsFromVendorRelations(ctx context.Context, env Env) error {
	raw := env.KV.Get(ctx, model.KeyVendorRelations)
	if raw == nil {
		return nil
	}
	var relations []map[string]any
	if err := json.Unmarshal(raw, &relations); err != nil {
		return fmt.Errorf("read vendor relations: %w", err)
	}

	for _, rel := range relations {
		if stringField(rel, "status") != "active" {
			continue
		}
		vendor := stringField(rel, "vendorCompanyId")
		sub := stringField(rel, "subcontractorCompanyId")
		if vendor == "" || sub == "" {
			continue
		}
		// Cross-reference the vendor's signed work: each such contract
		// is a parent the sub-contractor works under.
		for _, parent := range env.Repos.Contracts.GetByProvider(ctx, vendor) {
			if parent.ContractType == model.ContractTypeSub {
				continue
			}
			if parent.Status != model.ContractSigned && parent.Status != model.ContractActive {
				continue
			}
			if hasSubFor(env.Repos.Contracts.GetSubContracts(ctx, parent.ID), sub) {
				continue
			}
			// Buyer = vendor = parent's provider, satisfying the
			// sub-contract invariant by construction.
			_, err := env.Repos.Contracts.Create(ctx, model.Contract{
				ContractType:      model.ContractTypeSub,
				ScopeType:         parent.ScopeType,
				ScopeID:           parent.ScopeID,
				BuyerPartyID:      vendor,
				BuyerPartyType:    model.PartyCompany,
				ProviderPartyID:   sub,
				ProviderPartyType: model.PartyCompany,
				ParentContractID:  parent.ID,
				Status:            model.ContractSigned,
			})
			if err != nil {
				return fmt.Errorf("synthesize sub-contract under %s: %w", parent.ID, err)
			}
		}
	}
	return nil
}

// ensureEngagement creates the ACTIVE engagement a synthesized contract
// implies, unless one already exists.
func ensureEngagement(ctx context.Context, env Env, ct model.Contract) error {
	if len(env.Repos.Engagements.GetByContract(ctx, ct.ID)) > 0 {
		return nil
	}
	_, err := env.Repos.Engagements.Create(ctx, model.Engagement{
		ContractID:     ct.ID,
		EngagementType: engagementTypeFor(ct.ContractType),
		Status:         model.EngagementActive,
	})
	if err != nil {
		return fmt.Errorf("synthesize engagement for contract %s: %w", ct.ID, err)
	}
	return nil
}

func engagementTypeFor(t model.ContractType) string {
	switch t {
	case model.ContractTypeService:
		return "SERVICE_DELIVERY"
	case model.ContractTypeAdvisory:
		return "ADVISORY"
	default:
		return "PROJECT_EXECUTION"
	}
}

func hasSourceOffer(contracts []model.Contract, offerID string) bool {
	for _, ct := range contracts {
		if ct.SourceServiceOfferID == offerID {
			return true
		}
	}
	return false
}

func hasSubFor(subs []model.Contract, providerID string) bool {
	for _, ct := range subs {
		if ct.ProviderPartyID == providerID {
			return true
		}
	}
	return false
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}
