// Package repo implements the typed repositories over the KV adapter.
//
// A generic Collection carries the mechanics every entity shares: load the
// whole collection, mutate, write the whole collection back. That
// read-modify-write swap is the unit of work and the dominant cost model;
// there are no partial writes underneath it.
//
// Per-entity repositories wrap a Collection with domain behavior: derived
// defaults (a proposal's owner comes from its target, a project's owner from
// its creator), create-time invariants (bidder never equals owner, a
// sub-contract's parent provider equals its buyer), and status-transition
// side effects. Timestamp stamps are always derived from the old → new
// status pair, so re-entering a state never restamps.
//
// Error policy: absence is never an error - getters return a zero value and
// false. Create returns an error only for an invariant violation or a
// persistence failure. Audit entries and index notifications are side
// effects of create/update/delete, never of reads, and are delivered
// through optional hook interfaces that default to no-ops.
package repo
