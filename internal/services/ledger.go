// Package services orchestrates the ledger: every operation reads the
// current day record from storage, computes, and writes back. The store
// is the single source of truth; nothing here holds long-lived state.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tagzi/internal/core"
	"tagzi/internal/log"
	"tagzi/internal/storage"
)

// Ledger is the embedding boundary the presentation layer calls into.
// It owns read-modify-write discipline per date key; derivation formulas
// stay in core so callers can never reimplement them.
type Ledger struct {
	store  *storage.DayStore
	logger *log.Logger

	// One mutex per date key so an edit-then-save sequence is never
	// interleaved with another write to the same day.
	locks sync.Map
}

// NewLedger creates a ledger over store. A nil logger discards logs.
func NewLedger(store *storage.DayStore, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Nop()
	}
	return &Ledger{store: store, logger: logger.WithComponent(log.ComponentLedger)}
}

func (l *Ledger) lock(d core.Date) func() {
	v, _ := l.locks.LoadOrStore(d.Key(), &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// startable reports whether a Get error means "no usable record": truly
// absent, or stored but unreadable. Corrupt reads as absent here; the
// store has already logged it apart.
func startable(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrCorrupt)
}

// OpenDay returns the record for date, creating it on first access. A
// fresh day starts with yesterday's ending odometer as its starting
// odometer (when yesterday has one), empty entry lists, and the default
// fuel cost. The fuel rate deliberately does not carry forward.
func (l *Ledger) OpenDay(ctx context.Context, date core.Date) (core.DayRecord, error) {
	unlock := l.lock(date)
	defer unlock()
	return l.openLocked(ctx, date)
}

func (l *Ledger) openLocked(ctx context.Context, date core.Date) (core.DayRecord, error) {
	rec, err := l.store.Get(ctx, date)
	if err == nil {
		return rec, nil
	}
	if !startable(err) {
		return core.DayRecord{}, err
	}

	rec = core.NewDayRecord()
	prev, err := l.store.Get(ctx, date.Yesterday())
	switch {
	case err == nil:
		if !prev.EndKm.IsEmpty() {
			rec.StartKm = prev.EndKm
		}
	case startable(err):
		// No carry-forward source; start empty.
	default:
		return core.DayRecord{}, fmt.Errorf("resolve carry-forward: %w", err)
	}

	if err := l.store.Put(ctx, date, rec); err != nil {
		return core.DayRecord{}, err
	}
	l.logger.InfoContext(ctx, "Opened new day",
		log.FieldDateKey, date.Key(), log.FieldStartKm, string(rec.StartKm))
	return rec, nil
}

// AddEntry validates and records a new income or expense for date. The
// amount is checked before any write happens; the day record is created
// implicitly if this is the first write for the date.
func (l *Ledger) AddEntry(ctx context.Context, date core.Date, kind core.EntryKind, amount float64, note string) (core.Entry, error) {
	entry, err := core.NewEntry(amount, note)
	if err != nil {
		return core.Entry{}, err
	}

	unlock := l.lock(date)
	defer unlock()

	rec, err := l.openLocked(ctx, date)
	if err != nil {
		return core.Entry{}, err
	}
	rec, err = rec.AddEntry(kind, entry)
	if err != nil {
		return core.Entry{}, err
	}
	if err := l.store.Put(ctx, date, rec); err != nil {
		return core.Entry{}, err
	}
	l.logger.InfoContext(ctx, "Entry recorded",
		log.FieldDateKey, date.Key(),
		log.FieldEntryID, entry.ID,
		log.FieldKind, string(kind),
		log.FieldAmount, amount)
	return entry, nil
}

// EditEntry overwrites the amount and note of one existing entry in the
// day's named list and re-persists the record. The day must already
// exist; core.ErrEntryNotFound is returned when the id is absent.
func (l *Ledger) EditEntry(ctx context.Context, date core.Date, entryID string, kind core.EntryKind, amount float64, note string) (core.DayRecord, error) {
	unlock := l.lock(date)
	defer unlock()

	rec, err := l.store.Get(ctx, date)
	if err != nil {
		return core.DayRecord{}, err
	}
	rec, err = core.EditEntry(rec, entryID, kind, amount, note)
	if err != nil {
		return core.DayRecord{}, err
	}
	if err := l.store.Put(ctx, date, rec); err != nil {
		return core.DayRecord{}, err
	}
	l.logger.InfoContext(ctx, "Entry edited",
		log.FieldDateKey, date.Key(), log.FieldEntryID, entryID, log.FieldKind, string(kind))
	return rec, nil
}

// SetOdometer stores the raw odometer readings for date. Input is kept
// as entered; an end reading below the start reading is not an error
// here, it just derives a zero distance.
func (l *Ledger) SetOdometer(ctx context.Context, date core.Date, startKm, endKm string) (core.DayRecord, error) {
	return l.update(ctx, date, func(rec core.DayRecord) core.DayRecord {
		rec.StartKm = core.FlexString(startKm)
		rec.EndKm = core.FlexString(endKm)
		return rec
	})
}

// SetFuelCost stores the raw fuel cost per kilometer for date.
func (l *Ledger) SetFuelCost(ctx context.Context, date core.Date, fuelCost string) (core.DayRecord, error) {
	return l.update(ctx, date, func(rec core.DayRecord) core.DayRecord {
		rec.FuelCost = core.FlexString(fuelCost)
		return rec
	})
}

func (l *Ledger) update(ctx context.Context, date core.Date, mutate func(core.DayRecord) core.DayRecord) (core.DayRecord, error) {
	unlock := l.lock(date)
	defer unlock()

	rec, err := l.openLocked(ctx, date)
	if err != nil {
		return core.DayRecord{}, err
	}
	rec = mutate(rec)
	if err := l.store.Put(ctx, date, rec); err != nil {
		return core.DayRecord{}, err
	}
	return rec, nil
}

// EndDay closes out ended and opens next with the ended day's ending
// odometer as the new starting odometer. The ended record stays intact
// under its own key; when next equals ended the fresh record replaces it,
// which matches the reset behavior of the original day-end flow.
func (l *Ledger) EndDay(ctx context.Context, ended, next core.Date) (core.DayRecord, error) {
	unlock := l.lock(next)
	defer unlock()

	fresh := core.NewDayRecord()
	prev, err := l.store.Get(ctx, ended)
	switch {
	case err == nil:
		if !prev.EndKm.IsEmpty() {
			fresh.StartKm = prev.EndKm
		}
	case startable(err):
		// Nothing to carry.
	default:
		return core.DayRecord{}, err
	}

	if err := l.store.Put(ctx, next, fresh); err != nil {
		return core.DayRecord{}, err
	}
	l.logger.InfoContext(ctx, "Day ended",
		log.FieldDateKey, ended.Key(), "next_date_key", next.Key(), log.FieldStartKm, string(fresh.StartKm))
	return fresh, nil
}

// DeleteDay removes the record for date entirely. Irreversible; any
// confirmation happens in the presentation layer.
func (l *Ledger) DeleteDay(ctx context.Context, date core.Date) error {
	unlock := l.lock(date)
	defer unlock()
	return l.store.Delete(ctx, date)
}

// Summary loads the record for date and derives its metrics.
func (l *Ledger) Summary(ctx context.Context, date core.Date) (core.DaySummary, error) {
	rec, err := l.store.Get(ctx, date)
	if err != nil {
		return core.DaySummary{}, err
	}
	return core.Summarize(date, rec), nil
}

// History aggregates every stored day except the in-progress one (now)
// into per-day summaries and rolling income windows measured against now.
func (l *Ledger) History(ctx context.Context, now core.Date) (core.History, error) {
	dates, err := l.store.ListDates(ctx)
	if err != nil {
		return core.History{}, err
	}
	records, err := l.store.GetAll(ctx, dates)
	if err != nil {
		return core.History{}, err
	}
	h := core.BuildHistory(records, now, now)
	l.logger.DebugContext(ctx, "History built",
		log.FieldDateKey, now.Key(), log.FieldCount, len(h.Days))
	return h, nil
}
