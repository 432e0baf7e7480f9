package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// Real imports are sparse and may contain zero-valued placeholder rows (dates
// carrying only a transfer, no valuation). The selection policies below walk a
// fallback chain that prefers the closest positively-valued snapshot without
// silently extending the requested window.

// SelectBeginSnapshot picks the begin anchor for an account's return
// calculation over [windowFrom, windowTo]. First match wins:
//
//  1. latest snapshot dated on or before windowFrom with positive assets
//  2. earliest snapshot inside the window with positive assets
//  3. latest snapshot dated on or before windowFrom regardless of sign
//
// rows must be the account's snapshots sorted ascending by date.
func SelectBeginSnapshot(rows []model.AccountSnapshot, windowFrom, windowTo time.Time) (model.AccountSnapshot, error) {
	var atOrBefore *model.AccountSnapshot
	var positiveAtOrBefore *model.AccountSnapshot
	var earliestPositiveInside *model.AccountSnapshot

	for i := range rows {
		row := &rows[i]
		if !row.Date.After(windowFrom) {
			atOrBefore = row
			if row.TotalAssetsCents > 0 {
				positiveAtOrBefore = row
			}
			continue
		}
		if row.Date.After(windowTo) {
			break
		}
		if row.TotalAssetsCents > 0 && earliestPositiveInside == nil {
			earliestPositiveInside = row
		}
	}

	switch {
	case positiveAtOrBefore != nil:
		return *positiveAtOrBefore, nil
	case earliestPositiveInside != nil:
		return *earliestPositiveInside, nil
	case atOrBefore != nil:
		return *atOrBefore, nil
	}
	return model.AccountSnapshot{}, fmt.Errorf("%w: no begin snapshot at or before %s",
		apperrors.ErrNoData, windowFrom.Format(DateFormat))
}

// SelectEndSnapshot picks the end anchor: the latest snapshot in
// [beginDate, windowTo] with positive assets, else the latest in that range
// regardless of sign. rows must be sorted ascending by date.
func SelectEndSnapshot(rows []model.AccountSnapshot, beginDate, windowTo time.Time) (model.AccountSnapshot, error) {
	var latest *model.AccountSnapshot
	var latestPositive *model.AccountSnapshot

	for i := range rows {
		row := &rows[i]
		if row.Date.Before(beginDate) {
			continue
		}
		if row.Date.After(windowTo) {
			break
		}
		latest = row
		if row.TotalAssetsCents > 0 {
			latestPositive = row
		}
	}

	switch {
	case latestPositive != nil:
		return *latestPositive, nil
	case latest != nil:
		return *latest, nil
	}
	return model.AccountSnapshot{}, fmt.Errorf("%w: no end snapshot in [%s, %s]",
		apperrors.ErrNoData, beginDate.Format(DateFormat), windowTo.Format(DateFormat))
}

// SelectSnapshots resolves both anchors for a direct return query. The pair
// must span a strictly positive interval: a begin date at or after the end
// date means the account has no usable window and yields ErrNoData.
func SelectSnapshots(rows []model.AccountSnapshot, windowFrom, windowTo time.Time) (begin, end model.AccountSnapshot, err error) {
	begin, err = SelectBeginSnapshot(rows, windowFrom, windowTo)
	if err != nil {
		return model.AccountSnapshot{}, model.AccountSnapshot{}, err
	}
	end, err = SelectEndSnapshot(rows, begin.Date, windowTo)
	if err != nil {
		return model.AccountSnapshot{}, model.AccountSnapshot{}, err
	}
	if !begin.Date.Before(end.Date) {
		return model.AccountSnapshot{}, model.AccountSnapshot{}, fmt.Errorf(
			"%w: begin snapshot %s does not precede end snapshot %s",
			apperrors.ErrNoData, begin.Date.Format(DateFormat), end.Date.Format(DateFormat))
	}
	return begin, end, nil
}

// FlowsBetween derives cash-flow events from snapshots with a non-zero
// transfer amount dated strictly after begin and up to and including end.
// Weights are left zero; the Dietz calculator assigns them.
func FlowsBetween(rows []model.AccountSnapshot, begin, end time.Time) []model.CashFlowEvent {
	var flows []model.CashFlowEvent
	for _, row := range rows {
		if !row.Date.After(begin) || row.Date.After(end) {
			continue
		}
		if row.TransferAmountCents == 0 {
			continue
		}
		flows = append(flows, model.CashFlowEvent{Date: row.Date, AmountCents: row.TransferAmountCents})
	}
	return flows
}

// MergedFlows derives the portfolio-level flow events across all accounts in
// (begin, end], merged ascending by date. Same-date flows from different
// accounts are ordered by amount so results stay deterministic under map
// iteration order.
func MergedFlows(rowsByAccount map[string][]model.AccountSnapshot, begin, end time.Time) []model.CashFlowEvent {
	var flows []model.CashFlowEvent
	for _, rows := range rowsByAccount {
		flows = append(flows, FlowsBetween(rows, begin, end)...)
	}
	sort.Slice(flows, func(i, j int) bool {
		if !flows[i].Date.Equal(flows[j].Date) {
			return flows[i].Date.Before(flows[j].Date)
		}
		return flows[i].AmountCents < flows[j].AmountCents
	})
	return flows
}
