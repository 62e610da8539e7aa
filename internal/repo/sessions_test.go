package repo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
	"github.com/binaahub/binaa-core/internal/testutil"
)

func TestSessionCreateAssignsToken(t *testing.T) {
	s := newTestSet()
	sess, err := s.Sessions.Create(t.Context(), model.Session{UserID: "user_1"})
	require.NoError(t, err)

	parsed, err := uuid.Parse(sess.Token)
	require.NoError(t, err, "token should be a UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, testEpoch.Add(DefaultSessionTTL), sess.ExpiresAt)
}

func TestSessionExpiryFiltersReads(t *testing.T) {
	clock := testutil.NewFixedClock(testEpoch)
	s := NewSet(Deps{
		KV:    kv.NewMemory(),
		IDs:   testutil.NewSequentialGenerator(),
		Clock: clock,
	})
	ctx := t.Context()

	sess, err := s.Sessions.Create(ctx, model.Session{UserID: "user_1"})
	require.NoError(t, err)

	_, ok := s.Sessions.GetByToken(ctx, sess.Token)
	assert.True(t, ok)
	assert.Len(t, s.Sessions.GetByUser(ctx, "user_1"), 1)

	clock.Advance(DefaultSessionTTL + time.Minute)

	_, ok = s.Sessions.GetByToken(ctx, sess.Token)
	assert.False(t, ok, "expired session should read as absent")
	assert.Empty(t, s.Sessions.GetByUser(ctx, "user_1"))
	// Still in storage until pruned.
	assert.Len(t, s.Sessions.GetAll(ctx), 1)

	assert.Equal(t, 1, s.Sessions.PruneExpired(ctx))
	assert.Empty(t, s.Sessions.GetAll(ctx))
	assert.Equal(t, 0, s.Sessions.PruneExpired(ctx))
}

func TestNotificationMarkReadStampsOnce(t *testing.T) {
	s := newTestSet()
	ctx := t.Context()
	n, err := s.Notifications.Create(ctx, model.Notification{
		RecipientID: "user_1",
		Kind:        "proposal_awarded",
		Title:       "Your bid won",
	})
	require.NoError(t, err)
	assert.Len(t, s.Notifications.GetUnread(ctx, "user_1"), 1)

	n, ok := s.Notifications.MarkRead(ctx, n.ID)
	require.True(t, ok)
	require.NotNil(t, n.ReadAt)
	first := *n.ReadAt

	n, ok = s.Notifications.MarkRead(ctx, n.ID)
	require.True(t, ok)
	assert.Equal(t, first, *n.ReadAt)
	assert.Empty(t, s.Notifications.GetUnread(ctx, "user_1"))
}
