package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"tagzi/internal/config"
	"tagzi/internal/core"
)

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{Memory, SQLite, Redis} {
		if !valid.IsValid() {
			t.Fatalf("%s should be valid", valid)
		}
	}
	if Type("dynamo").IsValid() {
		t.Fatal("unknown type reported valid")
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Backend: "dynamo"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func openAndExercise(t *testing.T, cfg *config.Config) {
	t.Helper()
	ctx := context.Background()

	res, err := Open(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = res.Cleanup() })

	date := core.NewDate(2025, 6, 10)
	if _, err := res.Ledger.AddEntry(ctx, date, core.Income, 100, "smoke"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	s, err := res.Ledger.Summary(ctx, date)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalIncome != 100 {
		t.Fatalf("TotalIncome = %v, want 100", s.TotalIncome)
	}
}

func TestOpenMemory(t *testing.T) {
	openAndExercise(t, &config.Config{Backend: "memory"})
}

func TestOpenSQLite(t *testing.T) {
	openAndExercise(t, &config.Config{
		Backend:    "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "tagzi.db"),
	})
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	openAndExercise(t, &config.Config{Backend: "redis", RedisAddr: mr.Addr()})
}
