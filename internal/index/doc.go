// Package index maintains the service directory's secondary indexes: one
// persisted document of inverted sub-maps (category, skills, location,
// availability, provider type for providers; category for offerings;
// required service and location for beneficiaries), each mapping a
// normalized key to a sorted list of entity ids.
//
// The index is derived data. Rebuild re-derives every sub-map from the
// source collections and is the ground-truth recovery path after corruption
// or bulk import. Incremental updates use remove-then-reinsert: all stale
// entries for an id are scrubbed from every sub-map before the current
// values are inserted, so a provider that changes city disappears from the
// old bucket and appears in the new one. Empty buckets are pruned.
//
// Queries intersect candidate id sets per non-empty criterion (AND
// semantics only). OR and NOT are deliberately unsupported: callers needing
// OR issue multiple queries and union the results themselves.
package index
