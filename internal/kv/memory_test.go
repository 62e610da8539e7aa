package kv

import (
	"bytes"
	"testing"
)

func TestMemoryGetAbsentKey(t *testing.T) {
	m := NewMemory()
	if got := m.Get(t.Context(), "missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestMemorySetGetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := t.Context()
	if !m.Set(ctx, "users", []byte(`[{"id":"u1"}]`)) {
		t.Fatal("Set failed")
	}
	got := m.Get(ctx, "users")
	if !bytes.Equal(got, []byte(`[{"id":"u1"}]`)) {
		t.Errorf("Get = %s", got)
	}
}

func TestMemoryCopySemantics(t *testing.T) {
	m := NewMemory()
	ctx := t.Context()
	value := []byte("original")
	m.Set(ctx, "k", value)
	value[0] = 'X'

	got := m.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("stored value aliased caller's buffer: %s", got)
	}
	got[0] = 'Y'
	if string(m.Get(ctx, "k")) != "original" {
		t.Error("returned value aliased stored buffer")
	}
}

func TestMemoryDeleteAndKeys(t *testing.T) {
	m := NewMemory()
	ctx := t.Context()
	m.Set(ctx, "b", []byte("2"))
	m.Set(ctx, "a", []byte("1"))

	keys := m.Keys(ctx)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v, want [a b]", keys)
	}

	if !m.Delete(ctx, "a") {
		t.Error("Delete should report success")
	}
	if m.Get(ctx, "a") != nil {
		t.Error("deleted key still readable")
	}
	// Deleting an absent key is not an error.
	if !m.Delete(ctx, "a") {
		t.Error("Delete of absent key should still report success")
	}
}

func TestMemoryQuota(t *testing.T) {
	m := NewMemory(WithMaxValueBytes(8))
	ctx := t.Context()
	if !m.Set(ctx, "small", []byte("12345678")) {
		t.Error("value at quota should be accepted")
	}
	if m.Set(ctx, "big", []byte("123456789")) {
		t.Error("value over quota should be refused")
	}
	if m.Get(ctx, "big") != nil {
		t.Error("refused write must not be visible")
	}
}
