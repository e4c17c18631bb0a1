package kvstore

import (
	"context"
	"sort"
	"testing"
)

func TestMemoryGetSetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}
	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get = %q, %v, %v; want v2", v, ok, err)
	}
	if err := m.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("key still present after Remove")
	}
	// Removing again must be a no-op, not an error.
	if err := m.Remove(ctx, "k"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestMemoryKeysFiltersPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, k := range []string{"app:data_2025-06-01", "app:data_2025-06-02", "other:thing"} {
		if err := m.Set(ctx, k, "x"); err != nil {
			t.Fatalf("Set %q: %v", k, err)
		}
	}
	keys, err := m.Keys(ctx, "app:data_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	want := []string{"app:data_2025-06-01", "app:data_2025-06-02"}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
}

func TestMemoryMultiGetSkipsAbsent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "a", "1")
	_ = m.Set(ctx, "b", "2")

	got, err := m.MultiGet(ctx, []string{"a", "missing", "b"})
	if err != nil {
		t.Fatalf("MultiGet: %v", err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("MultiGet = %v", got)
	}
	if _, ok := got["missing"]; ok {
		t.Fatal("absent key appeared in MultiGet result")
	}
}
