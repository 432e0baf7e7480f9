package analytics

import (
	"fmt"
	"time"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// Preset names a supported time-window shape.
type Preset string

const (
	PresetYTD            Preset = "ytd"
	Preset1Y             Preset = "1y"
	Preset3Y             Preset = "3y"
	PresetSinceInception Preset = "since_inception"
	PresetCustom         Preset = "custom"
)

// SupportedPresets lists every preset accepted by ResolveWindow.
var SupportedPresets = []Preset{PresetYTD, Preset1Y, Preset3Y, PresetSinceInception, PresetCustom}

// WindowRequest is a caller's requested window before resolution.
// From and To are optional YYYY-MM-DD strings; From is required (and To
// ignored as a lower bound) only for the custom preset.
type WindowRequest struct {
	Preset Preset
	From   string
	To     string
}

// ResolveWindow turns a preset or custom request into concrete start/end
// dates clamped into [earliest, latest], the bounds of the data actually
// present.
//
// The effective end is min(requested to, latest); the effective start is
// max(requested from, earliest), where the requested from depends on the
// preset: Jan 1 of the effective end's year (ytd), 365 or 1095 days back
// (1y, 3y), the earliest data date (since_inception), or the caller-supplied
// from (custom).
//
// Returns ErrNoData when latest precedes earliest (no data at all), and
// ErrInvalidDateRange / ErrMissingFromDate / ErrInvalidPreset for windows
// that cannot be satisfied.
func ResolveWindow(req WindowRequest, earliest, latest time.Time) (model.Window, error) {
	earliest, latest = day(earliest), day(latest)
	if latest.Before(earliest) {
		return model.Window{}, fmt.Errorf("%w: no snapshots available", apperrors.ErrNoData)
	}

	requestedTo := latest
	if req.To != "" {
		parsed, err := time.Parse(DateFormat, req.To)
		if err != nil {
			return model.Window{}, fmt.Errorf("%w: to date %q: %v", apperrors.ErrInvalidDateRange, req.To, err)
		}
		requestedTo = parsed
	}

	effectiveTo := requestedTo
	if effectiveTo.After(latest) {
		effectiveTo = latest
	}
	if effectiveTo.Before(earliest) {
		return model.Window{}, fmt.Errorf("%w: to date %s precedes earliest data %s",
			apperrors.ErrInvalidDateRange, requestedTo.Format(DateFormat), earliest.Format(DateFormat))
	}

	var requestedFrom time.Time
	switch req.Preset {
	case PresetYTD:
		requestedFrom = time.Date(effectiveTo.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case Preset1Y:
		requestedFrom = effectiveTo.AddDate(0, 0, -lookback1YDays)
	case Preset3Y:
		requestedFrom = effectiveTo.AddDate(0, 0, -lookback3YDays)
	case PresetSinceInception:
		requestedFrom = earliest
	case PresetCustom:
		if req.From == "" {
			return model.Window{}, fmt.Errorf("%w: preset custom", apperrors.ErrMissingFromDate)
		}
		parsed, err := time.Parse(DateFormat, req.From)
		if err != nil {
			return model.Window{}, fmt.Errorf("%w: from date %q: %v", apperrors.ErrMissingFromDate, req.From, err)
		}
		requestedFrom = parsed
	default:
		return model.Window{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidPreset, req.Preset)
	}

	effectiveFrom := requestedFrom
	if effectiveFrom.Before(earliest) {
		effectiveFrom = earliest
	}
	if effectiveFrom.After(effectiveTo) {
		return model.Window{}, fmt.Errorf("%w: from %s is after to %s",
			apperrors.ErrInvalidDateRange, effectiveFrom.Format(DateFormat), effectiveTo.Format(DateFormat))
	}

	return model.Window{
		RequestedFrom: requestedFrom,
		RequestedTo:   requestedTo,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		IntervalDays:  daysBetween(effectiveFrom, effectiveTo),
	}, nil
}
