// Package storage persists day records as JSON values in a key-value
// store, one key per calendar date. Keys live under a fixed namespace so
// unrelated data sharing the same store never leaks into the ledger.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"tagzi/internal/core"
	"tagzi/internal/kvstore"
	"tagzi/internal/log"
)

// Namespace prefixes every ledger key in the backing store.
const Namespace = "@TagziApp"

const keyPrefix = Namespace + ":data_"

// multiGetBatch bounds the size of one MultiGet call when loading
// history. Batches are independent and fetched concurrently.
const multiGetBatch = 64

var (
	// ErrNotFound: no record is stored for the date.
	ErrNotFound = errors.New("day record not found")

	// ErrCorrupt: a value is stored but is not a valid day record.
	// Deliberately distinct from ErrNotFound so data loss is visible
	// instead of silently reading as an empty day.
	ErrCorrupt = errors.New("day record corrupt")
)

// DayStore reads and writes day records keyed by calendar date.
type DayStore struct {
	kv     kvstore.KV
	logger *log.Logger
}

// New creates a DayStore over kv. A nil logger discards logs.
func New(kv kvstore.KV, logger *log.Logger) *DayStore {
	if logger == nil {
		logger = log.Nop()
	}
	return &DayStore{kv: kv, logger: logger.WithComponent(log.ComponentStorage)}
}

// Key returns the storage key for a date: <namespace>:data_<YYYY-MM-DD>.
func Key(d core.Date) string {
	return keyPrefix + d.Key()
}

// Get loads the record for d. Returns ErrNotFound when nothing is stored
// and ErrCorrupt when the stored value does not decode; both are logged
// apart so corruption never masquerades as an empty day.
func (s *DayStore) Get(ctx context.Context, d core.Date) (core.DayRecord, error) {
	raw, ok, err := s.kv.Get(ctx, Key(d))
	if err != nil {
		return core.DayRecord{}, fmt.Errorf("get day record: %w", err)
	}
	if !ok {
		return core.DayRecord{}, fmt.Errorf("%w: %s", ErrNotFound, d.Key())
	}
	var rec core.DayRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.logger.WarnContext(ctx, "Stored day record is not valid JSON",
			log.FieldDateKey, d.Key(), log.FieldError, err)
		return core.DayRecord{}, fmt.Errorf("%w: %s", ErrCorrupt, d.Key())
	}
	return rec.Normalize(), nil
}

// Put serializes rec and overwrites whatever is stored for d in a single
// write.
func (s *DayStore) Put(ctx context.Context, d core.Date, rec core.DayRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode day record: %w", err)
	}
	if err := s.kv.Set(ctx, Key(d), string(b)); err != nil {
		return fmt.Errorf("put day record: %w", err)
	}
	s.logger.DebugContext(ctx, "Day record saved", log.FieldDateKey, d.Key())
	return nil
}

// Delete removes the record for d entirely. Irreversible; deleting an
// absent date is not an error.
func (s *DayStore) Delete(ctx context.Context, d core.Date) error {
	if err := s.kv.Remove(ctx, Key(d)); err != nil {
		return fmt.Errorf("delete day record: %w", err)
	}
	s.logger.InfoContext(ctx, "Day record deleted", log.FieldDateKey, d.Key())
	return nil
}

// ListDates enumerates every date with a stored record. Keys under the
// namespace that do not carry a well-formed date are skipped.
func (s *DayStore) ListDates(ctx context.Context) ([]core.Date, error) {
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list day keys: %w", err)
	}
	dates := make([]core.Date, 0, len(keys))
	for _, k := range keys {
		d, err := core.ParseDate(k[len(keyPrefix):])
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed ledger key", "key", k)
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// GetAll bulk-loads the records for the given dates. Dates whose stored
// value is absent or unreadable are logged and left out of the result;
// the keys are independent, so batches are fetched concurrently.
func (s *DayStore) GetAll(ctx context.Context, dates []core.Date) (map[core.Date]core.DayRecord, error) {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = Key(d)
	}

	var mu sync.Mutex
	out := make(map[core.Date]core.DayRecord, len(dates))

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(keys); start += multiGetBatch {
		end := start + multiGetBatch
		if end > len(keys) {
			end = len(keys)
		}
		batchKeys := keys[start:end]
		batchDates := dates[start:end]
		g.Go(func() error {
			values, err := s.kv.MultiGet(ctx, batchKeys)
			if err != nil {
				return fmt.Errorf("multi-get day records: %w", err)
			}
			for i, k := range batchKeys {
				raw, ok := values[k]
				if !ok {
					continue
				}
				var rec core.DayRecord
				if err := json.Unmarshal([]byte(raw), &rec); err != nil {
					s.logger.WarnContext(ctx, "Skipping unreadable day record",
						log.FieldDateKey, batchDates[i].Key(), log.FieldError, err)
					continue
				}
				mu.Lock()
				out[batchDates[i]] = rec.Normalize()
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
