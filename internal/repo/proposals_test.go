package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaahub/binaa-core/internal/model"
)

func createProject(t *testing.T, s *Set, owner string) model.Project {
	t.Helper()
	p, err := s.Projects.Create(t.Context(), model.Project{
		Title:     "Corniche Towers",
		CreatorID: owner,
		Status:    model.ProjectPublished,
	})
	require.NoError(t, err)
	return p
}

func TestProposalOwnerDerivedFromProject(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	project := createProject(t, s, "company_owner")

	p, err := s.Proposals.Create(ctx, model.Proposal{
		TargetType:      model.TargetProject,
		TargetID:        project.ID,
		BidderCompanyID: "company_bidder",
	})
	require.NoError(t, err)
	assert.Equal(t, "company_owner", p.OwnerCompanyID)
	assert.Equal(t, model.ProposalDraft, p.Status)
}

func TestProposalBidderCannotBeOwner(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	project := createProject(t, s, "company_owner")

	_, err := s.Proposals.Create(ctx, model.Proposal{
		TargetType:      model.TargetProject,
		TargetID:        project.ID,
		BidderCompanyID: "company_owner",
	})
	assert.ErrorIs(t, err, ErrBidderIsOwner)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Empty(t, s.Proposals.GetAll(ctx))
}

func TestProposalCreateBumpsProjectCounter(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	project := createProject(t, s, "company_owner")

	for i := 0; i < 3; i++ {
		_, err := s.Proposals.Create(ctx, model.Proposal{
			TargetType:      model.TargetProject,
			TargetID:        project.ID,
			BidderCompanyID: "company_bidder",
		})
		require.NoError(t, err)
	}

	got, ok := s.Projects.GetByID(ctx, project.ID)
	require.True(t, ok)
	assert.Equal(t, 3, got.ProposalCount)
}

func TestProposalSubmittedAtStampedOnce(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	project := createProject(t, s, "company_owner")
	p, err := s.Proposals.Create(ctx, model.Proposal{
		TargetType:      model.TargetProject,
		TargetID:        project.ID,
		BidderCompanyID: "company_bidder",
	})
	require.NoError(t, err)

	p, ok := s.Proposals.UpdateStatus(ctx, p.ID, model.ProposalSubmitted)
	require.True(t, ok)
	require.NotNil(t, p.SubmittedAt)
	first := *p.SubmittedAt

	// Withdraw and resubmit; the original stamp survives.
	_, ok = s.Proposals.UpdateStatus(ctx, p.ID, model.ProposalWithdrawn)
	require.True(t, ok)
	p, ok = s.Proposals.UpdateStatus(ctx, p.ID, model.ProposalSubmitted)
	require.True(t, ok)
	require.NotNil(t, p.SubmittedAt)
	assert.Equal(t, first, *p.SubmittedAt)
}

func TestProposalOffPathJumpIsAllowed(t *testing.T) {
	// Bulk tooling and migrations jump states; the repository logs the jump
	// instead of rejecting it.
	s := newTestSet()
	ctx := t.Context()
	project := createProject(t, s, "company_owner")
	p, err := s.Proposals.Create(ctx, model.Proposal{
		TargetType:      model.TargetProject,
		TargetID:        project.ID,
		BidderCompanyID: "company_bidder",
	})
	require.NoError(t, err)

	got, ok := s.Proposals.UpdateStatus(ctx, p.ID, model.ProposalAwarded)
	require.True(t, ok)
	assert.Equal(t, model.ProposalAwarded, got.Status)
	// A jump that skips SUBMITTED stamps no SubmittedAt.
	assert.Nil(t, got.SubmittedAt)
}

func TestProposalFilters(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	project := createProject(t, s, "company_owner")
	other := createProject(t, s, "company_other")

	mk := func(target model.Project, bidder string, status model.ProposalStatus) {
		_, err := s.Proposals.Create(ctx, model.Proposal{
			TargetType:      model.TargetProject,
			TargetID:        target.ID,
			BidderCompanyID: bidder,
			Status:          status,
		})
		require.NoError(t, err)
	}
	mk(project, "company_a", model.ProposalSubmitted)
	mk(project, "company_b", model.ProposalDraft)
	mk(other, "company_a", model.ProposalSubmitted)

	assert.Len(t, s.Proposals.GetByBidder(ctx, "company_a"), 2)
	assert.Len(t, s.Proposals.GetByTarget(ctx, model.TargetProject, project.ID), 2)
	assert.Len(t, s.Proposals.GetByStatus(ctx, model.ProposalSubmitted), 2)
	assert.Empty(t, s.Proposals.GetByBidder(ctx, "company_z"))
}
