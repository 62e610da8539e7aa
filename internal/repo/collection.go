package repo

import (
	"context"
	"encoding/json"

	"github.com/binaahub/binaa-core/internal/model"
)

// record constrains a collection's element type to something carrying Meta.
type record[T any] interface {
	*T
	DocMeta() *model.Meta
}

// Collection is the generic repository core: typed CRUD over one collection
// key, with "read full collection, mutate, write full collection back" as
// the unit of work.
type Collection[T any, P record[T]] struct {
	deps    Deps
	key     string
	prefix  string
	kind    string
	indexed bool
}

// NewCollection creates a collection repository over key. prefix seeds
// generated ids; kind names the entity in audit entries and index
// notifications; indexed kinds notify the Indexer hook on every mutation.
func NewCollection[T any, P record[T]](deps Deps, key, prefix, kind string, indexed bool) *Collection[T, P] {
	return &Collection[T, P]{
		deps:    deps.normalized(),
		key:     key,
		prefix:  prefix,
		kind:    kind,
		indexed: indexed,
	}
}

// load reads the whole collection. Absent and unreadable collections both
// read as empty; corruption is logged and treated as data loss, not error.
func (c *Collection[T, P]) load(ctx context.Context) []T {
	raw := c.deps.KV.Get(ctx, c.key)
	if raw == nil {
		return []T{}
	}
	var docs []T
	if err := json.Unmarshal(raw, &docs); err != nil {
		c.deps.Log.Error("collection unreadable, treating as empty", "key", c.key, "err", err)
		return []T{}
	}
	if docs == nil {
		docs = []T{}
	}
	return docs
}

// store writes the whole collection back, reporting persistence success.
func (c *Collection[T, P]) store(ctx context.Context, docs []T) bool {
	data, err := json.Marshal(docs)
	if err != nil {
		c.deps.Log.Error("collection marshal failed", "key", c.key, "err", err)
		return false
	}
	return c.deps.KV.Set(ctx, c.key, data)
}

// GetAll returns every document in the collection.
// Returns an empty slice (not nil) when the collection is empty.
func (c *Collection[T, P]) GetAll(ctx context.Context) []T {
	return c.load(ctx)
}

// GetByID returns the document with the given id.
func (c *Collection[T, P]) GetByID(ctx context.Context, id string) (T, bool) {
	for _, doc := range c.load(ctx) {
		d := doc
		if P(&d).DocMeta().ID == id {
			return d, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every document satisfying pred, preserving collection
// order. Returns an empty slice (not nil) when nothing matches.
func (c *Collection[T, P]) Filter(ctx context.Context, pred func(T) bool) []T {
	out := []T{}
	for _, doc := range c.load(ctx) {
		if pred(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// Create assigns an id (unless the caller supplied one) and the created
// timestamp, appends the document and persists the collection. On success
// the mutation is audited and, for indexed kinds, the index is notified.
func (c *Collection[T, P]) Create(ctx context.Context, doc T) (T, error) {
	var zero T
	m := P(&doc).DocMeta()
	if m.ID == "" {
		m.ID = c.deps.IDs.NewID(c.prefix)
	}
	m.CreatedAt = c.deps.Clock.Now()
	m.UpdatedAt = nil

	docs := append(c.load(ctx), doc)
	if !c.store(ctx, docs) {
		return zero, ErrPersistence
	}

	if c.deps.Audit != nil {
		c.deps.Audit.Mutation(ctx, ActionCreate, c.kind, m.ID, nil, doc)
	}
	if c.indexed && c.deps.Index != nil {
		c.deps.Index.EntityChanged(ctx, c.kind, m.ID)
	}
	return doc, nil
}

// Update applies mutate to the document with the given id, stamps
// UpdatedAt, and persists the collection. The mutate function is the typed
// equivalent of a field-merge partial: it sees the current document and
// changes what it needs to.
//
// Returns false when the id is absent or persistence fails.
func (c *Collection[T, P]) Update(ctx context.Context, id string, mutate func(*T)) (T, bool) {
	var zero T
	docs := c.load(ctx)
	for i := range docs {
		m := P(&docs[i]).DocMeta()
		if m.ID != id {
			continue
		}
		before := docs[i]
		mutate(&docs[i])
		// The id is not editable through Update.
		P(&docs[i]).DocMeta().ID = id
		now := c.deps.Clock.Now()
		P(&docs[i]).DocMeta().UpdatedAt = &now

		if !c.store(ctx, docs) {
			return zero, false
		}
		if c.deps.Audit != nil {
			c.deps.Audit.Mutation(ctx, ActionUpdate, c.kind, id, before, docs[i])
		}
		if c.indexed && c.deps.Index != nil {
			c.deps.Index.EntityChanged(ctx, c.kind, id)
		}
		return docs[i], true
	}
	return zero, false
}

// Delete removes the document with the given id. Deleting an absent id
// returns false without touching storage.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) bool {
	docs := c.load(ctx)
	for i := range docs {
		if P(&docs[i]).DocMeta().ID != id {
			continue
		}
		before := docs[i]
		remaining := append(docs[:i:i], docs[i+1:]...)
		if !c.store(ctx, remaining) {
			return false
		}
		if c.deps.Audit != nil {
			c.deps.Audit.Mutation(ctx, ActionDelete, c.kind, id, before, nil)
		}
		if c.indexed && c.deps.Index != nil {
			c.deps.Index.EntityRemoved(ctx, c.kind, id)
		}
		return true
	}
	return false
}

// ReplaceAll swaps the entire collection in one write. Used by migration
// steps reshaping legacy documents in place; no per-document audit entries
// are emitted, the caller records the migration itself.
func (c *Collection[T, P]) ReplaceAll(ctx context.Context, docs []T) bool {
	return c.store(ctx, docs)
}
