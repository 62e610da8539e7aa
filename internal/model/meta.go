package model

import (
	"context"
	"time"
)

// Meta carries the fields common to every persisted document.
// Repositories assign ID and CreatedAt on create and stamp UpdatedAt on
// every update; callers never set these directly.
type Meta struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DocMeta returns the embedded Meta. It exists so generic repositories can
// reach the common fields of any entity type.
func (m *Meta) DocMeta() *Meta { return m }

type actorKey struct{}

// WithActor returns a context carrying the acting user's id.
// Audit entries record this id; an empty actor is recorded as "system".
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user's id, or "" if none was set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return ""
}
