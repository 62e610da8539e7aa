package testutil

import (
	"context"
	"sync"

	"github.com/binaahub/binaa-core/internal/kv"
)

// FlakyKV wraps a kv.Adapter and fails writes on demand.
//
// Tests use it to drive the persistence-failure paths: refused audit
// writes, blocked migrations, repositories reporting ErrPersistence.
// Reads always pass through.
type FlakyKV struct {
	kv.Adapter

	mu          sync.Mutex
	failWrites  bool
	failingKeys map[string]bool
}

// NewFlakyKV wraps inner. Writes succeed until a Fail* method is called.
func NewFlakyKV(inner kv.Adapter) *FlakyKV {
	return &FlakyKV{Adapter: inner, failingKeys: make(map[string]bool)}
}

// FailAllWrites makes every subsequent Set report failure.
func (f *FlakyKV) FailAllWrites(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = fail
}

// FailKey makes Set fail for one key only.
func (f *FlakyKV) FailKey(key string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failingKeys[key] = fail
}

// Set implements kv.Adapter.
func (f *FlakyKV) Set(ctx context.Context, key string, value []byte) bool {
	f.mu.Lock()
	refuse := f.failWrites || f.failingKeys[key]
	f.mu.Unlock()
	if refuse {
		return false
	}
	return f.Adapter.Set(ctx, key, value)
}
