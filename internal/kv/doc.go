// Package kv is the store's only I/O boundary: a synchronous, string-keyed
// adapter holding one serialized collection per key.
//
// The contract is deliberately forgiving:
//
//   - Get returns nil when the key is absent or the stored value cannot be
//     read. It never returns an error; higher layers treat a missing or
//     corrupt collection as empty.
//   - Set returns false on capacity or storage failure. Higher layers must
//     degrade rather than fail hard (the audit log, for example, retries
//     with a smaller payload once and then drops the entry).
//
// Two implementations exist: SQLite (durable, single-writer) and Memory
// (tests and ephemeral stores). Both honor the same quota option.
//
// Concurrency: the SQLite adapter opens with a single connection and a busy
// timeout, so one Store instance owns the file; there is no cross-process
// CAS or locking beyond that single-writer discipline.
package kv
