// Package audit keeps the capped, append-only trail of store mutations.
//
// Audit is best-effort and never load-bearing: a failure to persist an
// entry is logged and swallowed, and the caller's own mutation succeeds
// regardless. The collection is capped at 500 entries; when even the capped
// collection cannot be persisted (quota), one retry with the newest 250 is
// attempted before the entry is dropped.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/binaahub/binaa-core/internal/ids"
	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
)

// MaxEntries caps the audit collection.
const MaxEntries = 500

// fallbackEntries is the harder cap used when persisting MaxEntries fails.
const fallbackEntries = 250

// Clock supplies entry timestamps.
type Clock interface {
	Now() time.Time
}

// Log is the audit trail over one store.
type Log struct {
	kv    kv.Adapter
	ids   ids.Generator
	clock Clock
	log   *slog.Logger
}

// New creates an audit log writing under the audit collection key.
func New(adapter kv.Adapter, gen ids.Generator, clock Clock, log *slog.Logger) *Log {
	if log == nil {
		log = slog.Default()
	}
	return &Log{kv: adapter, ids: gen, clock: clock, log: log}
}

// Record appends an entry, assigning its id and timestamp. Best-effort: on
// quota failure the collection is truncated harder and retried once, then
// the entry is dropped with a warning.
func (l *Log) Record(ctx context.Context, entry model.AuditEntry) {
	entry.ID = l.ids.NewID("audit")
	entry.CreatedAt = l.clock.Now()
	if entry.UserID == "" {
		entry.UserID = "system"
	}

	entries := append(l.load(ctx), entry)
	entries = newest(entries, MaxEntries)
	if l.persist(ctx, entries) {
		return
	}

	if l.persist(ctx, newest(entries, fallbackEntries)) {
		return
	}
	l.log.Warn("audit entry dropped after truncated retry",
		"action", entry.Action, "entityType", entry.EntityType, "entityId", entry.EntityID)
}

// Mutation implements the repository layer's Auditor hook. Before/after
// snapshots that fail to serialize are recorded without a diff.
func (l *Log) Mutation(ctx context.Context, action, entityType, entityID string, before, after any) {
	entry := model.AuditEntry{
		UserID:     model.ActorFromContext(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if before != nil {
		if raw, err := json.Marshal(before); err == nil {
			entry.Before = raw
		}
	}
	if after != nil {
		if raw, err := json.Marshal(after); err == nil {
			entry.After = raw
		}
	}
	l.Record(ctx, entry)
}

// GetAll returns the retained entries, oldest first.
func (l *Log) GetAll(ctx context.Context) []model.AuditEntry {
	return l.load(ctx)
}

// GetByUser returns the retained entries recorded for the given user.
func (l *Log) GetByUser(ctx context.Context, userID string) []model.AuditEntry {
	return l.filter(ctx, func(e model.AuditEntry) bool { return e.UserID == userID })
}

// GetByAction returns the retained entries with the given action.
func (l *Log) GetByAction(ctx context.Context, action string) []model.AuditEntry {
	return l.filter(ctx, func(e model.AuditEntry) bool { return e.Action == action })
}

// GetByEntity returns the retained entries touching the given entity.
func (l *Log) GetByEntity(ctx context.Context, entityType, entityID string) []model.AuditEntry {
	return l.filter(ctx, func(e model.AuditEntry) bool {
		return e.EntityType == entityType && e.EntityID == entityID
	})
}

// GetRecent returns up to limit entries, newest first.
func (l *Log) GetRecent(ctx context.Context, limit int) []model.AuditEntry {
	entries := l.load(ctx)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (l *Log) load(ctx context.Context) []model.AuditEntry {
	raw := l.kv.Get(ctx, model.KeyAudit)
	if raw == nil {
		return []model.AuditEntry{}
	}
	var entries []model.AuditEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.log.Error("audit collection unreadable, treating as empty", "err", err)
		return []model.AuditEntry{}
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	return entries
}

func (l *Log) persist(ctx context.Context, entries []model.AuditEntry) bool {
	data, err := json.Marshal(entries)
	if err != nil {
		l.log.Error("audit marshal failed", "err", err)
		return false
	}
	return l.kv.Set(ctx, model.KeyAudit, data)
}

func (l *Log) filter(ctx context.Context, pred func(model.AuditEntry) bool) []model.AuditEntry {
	out := []model.AuditEntry{}
	for _, e := range l.load(ctx) {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// newest returns the n most recent entries by timestamp, preserving
// chronological order. Entries are appended in time order, so this is
// normally a tail slice; the sort guards against clock adjustments.
func newest(entries []model.AuditEntry, n int) []model.AuditEntry {
	if len(entries) <= n {
		return entries
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries[len(entries)-n:]
}
