// Package analytics implements the portfolio valuation and return engine:
// window resolution, endpoint snapshot selection, Modified Dietz returns,
// forward-filled as-of aggregation, cumulative-return curves, and net-wealth
// aggregation.
//
// The package is purely computational. Every function takes date-sorted rows
// already fetched from storage and returns derived values; nothing in here
// performs I/O, retains state between calls, or mutates its inputs. Identical
// inputs always produce identical results.
package analytics

import "time"

// DateFormat is the canonical calendar-date layout used across the system.
const DateFormat = "2006-01-02"

// annualizationDays is the day-count basis for annualizing returns.
const annualizationDays = 365

// Lookback spans, in days, for the fixed-length window presets.
const (
	lookback1YDays = 365
	lookback3YDays = 1095
)

// daysBetween returns the whole number of calendar days from a to b.
// Both values are expected at UTC midnight, which makes the division exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// day truncates t to UTC midnight.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
