package testutil

import (
	"fmt"
	"sync"
)

// SequentialGenerator issues predictable ids for tests.
//
// The nth id for a prefix is "<prefix>_test_<n>", counted per prefix, so a
// test can name the exact document it expects without parsing timestamps.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialGenerator struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewSequentialGenerator creates a generator with all counters at zero.
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{counts: make(map[string]int)}
}

// NewID implements ids.Generator.
func (g *SequentialGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[prefix]++
	return fmt.Sprintf("%s_test_%d", prefix, g.counts[prefix])
}
