package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/testutil"
)

var testEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// newTestDeps builds deps over an in-memory adapter with a deterministic
// clock and id generator.
func newTestDeps() Deps {
	return Deps{
		KV:    kv.NewMemory(),
		IDs:   testutil.NewSequentialGenerator(),
		Clock: testutil.NewTickingClock(testEpoch, time.Second),
	}
}

func newTestSet() *Set {
	return NewSet(newTestDeps())
}

func TestCollectionEmptyReadsAsEmptySlice(t *testing.T) {
	s := newTestSet()
	got := s.Users.GetAll(t.Context())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectionCorruptReadsAsEmpty(t *testing.T) {
	deps := newTestDeps()
	ctx := t.Context()
	deps.KV.Set(ctx, model.KeyUsers, []byte("{not json"))

	s := NewSet(deps)
	got := s.Users.GetAll(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectionCreateAssignsIDAndTimestamp(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()

	u, err := s.Users.Create(ctx, model.User{CompanyName: "Delta Build"})
	require.NoError(t, err)
	assert.Equal(t, "user_test_1", u.ID)
	assert.Equal(t, testEpoch, u.CreatedAt)
	assert.Nil(t, u.UpdatedAt)
}

func TestCollectionCreateKeepsCallerID(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()

	u := model.User{CompanyName: "Seeded"}
	u.ID = "user_fixed"
	created, err := s.Users.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "user_fixed", created.ID)
}

func TestCollectionUpdateStampsUpdatedAt(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	u, err := s.Users.Create(ctx, model.User{CompanyName: "Before"})
	require.NoError(t, err)

	got, ok := s.Users.Update(ctx, u.ID, func(u *model.User) { u.CompanyName = "After" })
	require.True(t, ok)
	assert.Equal(t, "After", got.CompanyName)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	// The id is not editable through Update.
	got2, ok := s.Users.Update(ctx, u.ID, func(u *model.User) { u.ID = "hijacked" })
	require.True(t, ok)
	assert.Equal(t, u.ID, got2.ID)
}

func TestCollectionUpdateAbsentID(t *testing.T) {
	s := newTestSet()
	_, ok := s.Users.Update(t.Context(), "user_missing", func(u *model.User) {})
	assert.False(t, ok)
}

func TestCollectionDelete(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	u, err := s.Users.Create(ctx, model.User{CompanyName: "Gone"})
	require.NoError(t, err)

	assert.True(t, s.Users.Delete(ctx, u.ID))
	_, ok := s.Users.GetByID(ctx, u.ID)
	assert.False(t, ok)
	// Deleting an absent id is a no-op, not an error state.
	assert.False(t, s.Users.Delete(ctx, u.ID))
}

func TestCollectionCreateFailsOnRefusedWrite(t *testing.T) {
	flaky := testutil.NewFlakyKV(kv.NewMemory())
	deps := newTestDeps()
	deps.KV = flaky
	s := NewSet(deps)
	ctx := t.Context()

	flaky.FailAllWrites(true)
	_, err := s.Users.Create(ctx, model.User{CompanyName: "Refused"})
	assert.ErrorIs(t, err, ErrPersistence)

	flaky.FailAllWrites(false)
	_, err = s.Users.Create(ctx, model.User{CompanyName: "Accepted"})
	assert.NoError(t, err)
}

// recordingAuditor captures mutation notifications for assertions.
type recordingAuditor struct {
	actions []string
	kinds   []string
}

func (r *recordingAuditor) Mutation(_ context.Context, action, entityType, _ string, _, _ any) {
	r.actions = append(r.actions, action)
	r.kinds = append(r.kinds, entityType)
}

func TestCollectionMutationsAreAudited(t *testing.T) {
	rec := &recordingAuditor{}
	deps := newTestDeps()
	deps.Audit = rec
	s := NewSet(deps)
	ctx := t.Context()

	u, err := s.Users.Create(ctx, model.User{CompanyName: "Audited"})
	require.NoError(t, err)
	s.Users.Update(ctx, u.ID, func(u *model.User) { u.Email = "a@b.example" })
	s.Users.Delete(ctx, u.ID)

	assert.Equal(t, []string{ActionCreate, ActionUpdate, ActionDelete}, rec.actions)
	assert.Equal(t, []string{model.EntityUser, model.EntityUser, model.EntityUser}, rec.kinds)
}

func TestCollectionReadsAreNotAudited(t *testing.T) {
	rec := &recordingAuditor{}
	deps := newTestDeps()
	deps.Audit = rec
	s := NewSet(deps)
	ctx := t.Context()

	s.Users.GetAll(ctx)
	s.Users.GetByID(ctx, "user_x")
	assert.Empty(t, rec.actions)
}
