package model

import "time"

// Window is a resolved query window. RequestedFrom/RequestedTo carry what the
// caller asked for; EffectiveFrom/EffectiveTo are clamped into the date range
// of the data actually present. Invariant: EffectiveFrom <= EffectiveTo.
type Window struct {
	RequestedFrom time.Time `json:"requestedFrom"`
	RequestedTo   time.Time `json:"requestedTo"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
	EffectiveTo   time.Time `json:"effectiveTo"`
	IntervalDays  int       `json:"intervalDays"`
}
