package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaahub/binaa-core/internal/audit"
	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/testutil"
)

func TestMilestoneCompletedAtStampedOnce(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()

	m, err := s.Milestones.Create(ctx, model.Milestone{
		EngagementID: "eng_1",
		ContractID:   "ctr_1",
		Title:        "Foundation pour",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MilestonePending, m.Status)

	m, ok := s.Milestones.UpdateStatus(ctx, m.ID, model.MilestoneInProgress)
	require.True(t, ok)
	m, ok = s.Milestones.UpdateStatus(ctx, m.ID, model.MilestoneCompleted)
	require.True(t, ok)
	require.NotNil(t, m.CompletedAt)
	first := *m.CompletedAt

	// Rejection sends it back to work; re-completing keeps the first stamp.
	m, ok = s.Milestones.UpdateStatus(ctx, m.ID, model.MilestoneRejected)
	require.True(t, ok)
	m, ok = s.Milestones.UpdateStatus(ctx, m.ID, model.MilestoneInProgress)
	require.True(t, ok)
	m, ok = s.Milestones.UpdateStatus(ctx, m.ID, model.MilestoneCompleted)
	require.True(t, ok)
	assert.Equal(t, first, *m.CompletedAt)
}

func TestAuditWriteFailureLeavesMutationIntact(t *testing.T) {
	// The audit trail is best-effort: a store refusing the audit collection
	// write must not affect the user's own mutation.
	flaky := testutil.NewFlakyKV(kv.NewMemory())
	flaky.FailKey(model.KeyAudit, true)

	log := audit.New(flaky, testutil.NewSequentialGenerator(),
		testutil.NewFixedClock(testEpoch), nil)
	deps := newTestDeps()
	deps.KV = flaky
	deps.Audit = log
	s := NewSet(deps)
	ctx := t.Context()

	u, err := s.Users.Create(ctx, model.User{CompanyName: "Resilient Co"})
	require.NoError(t, err)

	got, ok := s.Users.Update(ctx, u.ID, func(u *model.User) { u.Email = "ok@resilient.example" })
	require.True(t, ok)
	assert.Equal(t, "ok@resilient.example", got.Email)

	// Nothing reached the trail, and that is the only casualty.
	assert.Empty(t, log.GetAll(ctx))
}
