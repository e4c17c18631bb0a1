// Package core holds the pure domain of the daily driver ledger: calendar
// dates, day records, derived summaries, history rollups and the currency
// formatter. Nothing in this package performs I/O.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseLenient converts raw numeric input to a float64, defaulting to 0 on
// anything unparseable. This is the deliberate policy for odometer and
// fuel fields: malformed input never fails a derivation, it just
// contributes nothing. A decimal comma is accepted as a separator.
func ParseLenient(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
