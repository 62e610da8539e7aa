package kv

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory Adapter for tests and ephemeral stores.
// It honors the same quota option as the SQLite adapter.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	opts options
}

// NewMemory creates an empty in-memory adapter.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// Get implements Adapter.
func (m *Memory) Get(_ context.Context, key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}

// Set implements Adapter.
func (m *Memory) Set(_ context.Context, key string, value []byte) bool {
	if m.opts.overQuota(value) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return true
}

// Delete implements Adapter.
func (m *Memory) Delete(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return true
}

// Keys implements Adapter.
func (m *Memory) Keys(_ context.Context) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
