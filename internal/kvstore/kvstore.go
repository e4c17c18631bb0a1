// Package kvstore defines the raw persistence boundary of the ledger: a
// string-keyed, string-valued store. Day records are stored as UTF-8 JSON
// under namespaced keys; nothing here knows about the schema.
package kvstore

import "context"

// KV is the minimal surface the ledger needs from a backing store.
// Implementations must make Set an atomic overwrite of the whole value
// and Remove an all-or-nothing delete.
type KV interface {
	// Get returns the value for key, and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns every stored key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// MultiGet returns the values for the given keys. Absent keys are
	// simply missing from the result.
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)
}
