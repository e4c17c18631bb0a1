package rediskv

import (
	"context"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb)
}

func TestStoreGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get = %q, %v, %v; want v2", v, ok, err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("key still present after Remove")
	}
}

func TestStoreKeysByPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, k := range []string{"@TagziApp:data_2025-06-01", "@TagziApp:data_2025-06-02", "@TagziApp:settings", "unrelated"} {
		if err := s.Set(ctx, k, "x"); err != nil {
			t.Fatalf("Set %q: %v", k, err)
		}
	}
	keys, err := s.Keys(ctx, "@TagziApp:data_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "@TagziApp:data_2025-06-01" || keys[1] != "@TagziApp:data_2025-06-02" {
		t.Fatalf("Keys = %v", keys)
	}
}

func TestStoreMultiGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_ = s.Set(ctx, "a", "1")
	_ = s.Set(ctx, "b", "2")

	got, err := s.MultiGet(ctx, []string{"a", "missing", "b"})
	if err != nil {
		t.Fatalf("MultiGet: %v", err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("MultiGet = %v", got)
	}
}
