// Package backend builds the configured key-value store and wires it into
// a ready-to-use ledger.
package backend

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tagzi/internal/config"
	"tagzi/internal/kvstore"
	"tagzi/internal/kvstore/rediskv"
	"tagzi/internal/kvstore/sqlitekv"
	"tagzi/internal/log"
	"tagzi/internal/services"
	"tagzi/internal/storage"
)

// Type names a storage backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	Redis  Type = "redis"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Redis:
		return true
	default:
		return false
	}
}

// Result is an opened backend with its cleanup function. Cleanup is
// never nil.
type Result struct {
	KV      kvstore.KV
	Ledger  *services.Ledger
	Cleanup func() error
}

// Open builds the KV store selected by cfg, verifies it is reachable,
// and returns a ledger on top of it.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.Nop()
	}
	t := Type(cfg.Backend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Backend)
	}

	var (
		kv      kvstore.KV
		cleanup = func() error { return nil }
	)
	switch t {
	case Memory:
		kv = kvstore.NewMemory()
	case SQLite:
		store, err := sqlitekv.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		kv = store
		cleanup = store.Close
	case Redis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		kv = rediskv.New(rdb)
		cleanup = rdb.Close
	}

	logger.WithComponent(log.ComponentBackend).InfoContext(ctx, "Initialized storage backend",
		log.FieldBackend, string(t))

	dayStore := storage.New(kv, logger)
	return &Result{
		KV:      kv,
		Ledger:  services.NewLedger(dayStore, logger),
		Cleanup: cleanup,
	}, nil
}
