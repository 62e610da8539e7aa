package kv

import "context"

// Adapter is the synchronous get/set boundary every higher layer writes
// through. Values are whole serialized collections; there are no partial or
// row-level writes.
type Adapter interface {
	// Get returns the stored value for key, or nil if the key is absent or
	// the value cannot be read.
	Get(ctx context.Context, key string) []byte

	// Set persists value under key, returning false on quota or storage
	// failure.
	Set(ctx context.Context, key string, value []byte) bool

	// Delete removes key, reporting whether the store is in a state where
	// the key is gone (deleting an absent key returns true).
	Delete(ctx context.Context, key string) bool

	// Keys returns all stored keys in lexicographic order.
	Keys(ctx context.Context) []string
}

// Option configures an adapter.
type Option func(*options)

type options struct {
	maxValueBytes int
}

// WithMaxValueBytes caps the size of a single stored value. A Set whose
// serialized value exceeds n bytes fails with false, modeling the quota
// failures of a capacity-bounded store. Zero means unlimited.
func WithMaxValueBytes(n int) Option {
	return func(o *options) { o.maxValueBytes = n }
}

func (o *options) overQuota(value []byte) bool {
	return o.maxValueBytes > 0 && len(value) > o.maxValueBytes
}
