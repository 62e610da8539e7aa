// Package migrate brings stored collections up to the code's schema
// version.
//
// A single scalar version string (data_version) is compared segment-wise
// against each step's target version; every step whose target is greater
// runs, in order. Steps are idempotent by construction - each one checks
// for the new shape (presence of key fields, provenance references) before
// writing, so re-running a step over migrated data is a no-op and repeated
// boots converge.
//
// Failure isolation: a step that errors (or panics) is logged and later
// steps still run, but the stored version only advances through the
// unbroken prefix of successful steps - a failed step will be retried on
// the next boot.
//
// Steps write through the repository layer, not raw KV, so create-time
// invariants and index notifications apply to synthesized documents too.
// The repository set handed to the engine carries no auditor: schema
// repair is not user activity.
package migrate
