package core

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultFuelCost is the fuel cost per kilometer assumed for a fresh day.
// It deliberately does not carry forward between days.
const DefaultFuelCost = FlexString("4.0")

const (
	Income  EntryKind = "income"
	Expense EntryKind = "expense"
)

type (
	// EntryKind names one of the two entry lists of a day record.
	EntryKind string

	// Entry is a single income or expense event. ID is immutable once
	// created; Amount and Note may be overwritten by EditEntry.
	Entry struct {
		ID     string  `json:"id"`
		Amount float64 `json:"tutar"`
		Note   string  `json:"not"`
	}

	// FlexString holds a numeric field that legacy records persisted
	// either as a JSON string or as a JSON number. It always marshals
	// back as a string.
	FlexString string

	// DayRecord is the persisted unit for one calendar date. The date
	// itself lives in the storage key, not in the record. Odometer and
	// fuel fields keep the raw user input; derivation happens in
	// Summarize. Entry lists are newest-first.
	DayRecord struct {
		StartKm  FlexString `json:"startKm"`
		EndKm    FlexString `json:"endKm"`
		FuelCost FlexString `json:"yakitMaliyeti"`
		Incomes  []Entry    `json:"kazanclar"`
		Expenses []Entry    `json:"ekstraMasraflar"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrUnknownKind   = errors.New("unknown entry kind")
	ErrEntryNotFound = errors.New("entry not found")
)

// NewDayRecord returns an empty in-progress record with the default fuel
// cost and empty entry lists.
func NewDayRecord() DayRecord {
	return DayRecord{
		FuelCost: DefaultFuelCost,
		Incomes:  []Entry{},
		Expenses: []Entry{},
	}
}

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// IsEmpty reports whether the field holds no usable input.
func (f FlexString) IsEmpty() bool {
	return strings.TrimSpace(string(f)) == ""
}

// lastEntryID makes IDs unique when two entries land in the same
// millisecond.
var lastEntryID atomic.Int64

func newEntryID() string {
	for {
		prev := lastEntryID.Load()
		id := time.Now().UnixMilli()
		if id <= prev {
			id = prev + 1
		}
		if lastEntryID.CompareAndSwap(prev, id) {
			return strconv.FormatInt(id, 10)
		}
	}
}

// NewEntry creates an entry with a creation-time derived ID. Amounts must
// be positive and finite; anything else is rejected before any write can
// happen.
func NewEntry(amount float64, note string) (Entry, error) {
	if err := validateAmount(amount); err != nil {
		return Entry{}, err
	}
	return Entry{ID: newEntryID(), Amount: amount, Note: note}, nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Entries returns the list named by kind.
func (r DayRecord) Entries(kind EntryKind) ([]Entry, error) {
	switch kind {
	case Income:
		return r.Incomes, nil
	case Expense:
		return r.Expenses, nil
	default:
		return nil, ErrUnknownKind
	}
}

// AddEntry returns a copy of r with e prepended to the list named by kind,
// keeping newest-first order. r is not modified.
func (r DayRecord) AddEntry(kind EntryKind, e Entry) (DayRecord, error) {
	switch kind {
	case Income:
		r.Incomes = prepend(r.Incomes, e)
	case Expense:
		r.Expenses = prepend(r.Expenses, e)
	default:
		return DayRecord{}, ErrUnknownKind
	}
	return r, nil
}

func prepend(list []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, e)
	return append(out, list...)
}

// EditEntry returns a copy of r where the entry with entryID in the list
// named by kind has its amount and note replaced. Order, IDs and every
// other field are untouched. It performs no I/O; the caller persists the
// result.
func EditEntry(r DayRecord, entryID string, kind EntryKind, amount float64, note string) (DayRecord, error) {
	if err := validateAmount(amount); err != nil {
		return DayRecord{}, err
	}
	list, err := r.Entries(kind)
	if err != nil {
		return DayRecord{}, err
	}
	idx := -1
	for i, e := range list {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return DayRecord{}, ErrEntryNotFound
	}
	edited := make([]Entry, len(list))
	copy(edited, list)
	edited[idx].Amount = amount
	edited[idx].Note = note
	if kind == Income {
		r.Incomes = edited
	} else {
		r.Expenses = edited
	}
	return r, nil
}

// Normalize fills in what legacy records may lack: nil entry lists become
// empty and an absent fuel cost falls back to the default. Applied on
// every read from storage.
func (r DayRecord) Normalize() DayRecord {
	if r.Incomes == nil {
		r.Incomes = []Entry{}
	}
	if r.Expenses == nil {
		r.Expenses = []Entry{}
	}
	if r.FuelCost.IsEmpty() {
		r.FuelCost = DefaultFuelCost
	}
	return r
}
