package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/binaahub/binaa-core/internal/model"
)

// DefaultSessionTTL is applied when a session is created without an expiry.
const DefaultSessionTTL = 24 * time.Hour

// Sessions is the repository for login sessions.
//
// Tokens are UUIDv7 strings: time-sortable, which keeps session listings in
// creation order and makes stale tokens obvious in debugging.
type Sessions struct {
	c *Collection[model.Session, *model.Session]
}

func newSessions(deps Deps) *Sessions {
	return &Sessions{
		c: NewCollection[model.Session](deps, model.KeySessions, "sess", model.EntitySession, false),
	}
}

func (r *Sessions) GetAll(ctx context.Context) []model.Session { return r.c.GetAll(ctx) }

func (r *Sessions) GetByID(ctx context.Context, id string) (model.Session, bool) {
	return r.c.GetByID(ctx, id)
}

// GetByToken returns the unexpired session carrying the token.
// Expired sessions read as absent; PruneExpired removes them from storage.
func (r *Sessions) GetByToken(ctx context.Context, token string) (model.Session, bool) {
	now := r.c.deps.Clock.Now()
	matches := r.c.Filter(ctx, func(s model.Session) bool {
		return s.Token == token && s.ExpiresAt.After(now)
	})
	if len(matches) == 0 {
		return model.Session{}, false
	}
	return matches[0], true
}

// GetByUser returns the user's unexpired sessions.
func (r *Sessions) GetByUser(ctx context.Context, userID string) []model.Session {
	now := r.c.deps.Clock.Now()
	return r.c.Filter(ctx, func(s model.Session) bool {
		return s.UserID == userID && s.ExpiresAt.After(now)
	})
}

// Create stores a new session, assigning a UUIDv7 token and the default TTL
// unless the caller supplied them.
func (r *Sessions) Create(ctx context.Context, s model.Session) (model.Session, error) {
	if s.Token == "" {
		s.Token = uuid.Must(uuid.NewV7()).String()
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = r.c.deps.Clock.Now().Add(DefaultSessionTTL)
	}
	return r.c.Create(ctx, s)
}

// Delete removes a session (logout).
func (r *Sessions) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }

// PruneExpired removes every expired session, returning how many went.
func (r *Sessions) PruneExpired(ctx context.Context) int {
	now := r.c.deps.Clock.Now()
	docs := r.c.load(ctx)
	kept := docs[:0:0]
	pruned := 0
	for _, s := range docs {
		if s.ExpiresAt.After(now) {
			kept = append(kept, s)
		} else {
			pruned++
		}
	}
	if pruned > 0 {
		if !r.c.store(ctx, kept) {
			return 0
		}
	}
	return pruned
}
