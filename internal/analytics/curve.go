package analytics

import (
	"fmt"
	"time"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// CurveInput describes one cumulative-return curve request. Snapshot
// histories must cover everything up to Window.EffectiveTo, including rows
// before Window.EffectiveFrom, so the begin anchor can forward-fill; for a
// single-account scope the map holds exactly that account's history.
type CurveInput struct {
	Scope              model.AccountScope
	Window             model.Window
	SnapshotsByAccount map[string][]model.AccountSnapshot
}

// BuildCurve produces the cumulative-return time series for the window.
//
// The candidate date axis is the union of all distinct in-scope snapshot
// dates within the window, always including both window boundaries. Every
// point is an independent Modified Dietz calculation anchored at the window
// start (begin = EffectiveFrom, end = the candidate date, zero interval
// allowed for the first point): returns since window start, never
// period-over-period, and never accumulated incrementally from the previous
// point.
func BuildCurve(in CurveInput) (model.Curve, error) {
	if !in.Scope.IsPortfolio() {
		if _, ok := in.SnapshotsByAccount[in.Scope.AccountID]; !ok {
			return model.Curve{}, fmt.Errorf("%w: no snapshot history for account %s",
				apperrors.ErrNoData, in.Scope.AccountID)
		}
	}

	dates := curveDates(in)

	var points []model.CurvePoint
	var pointErr error
	if in.Scope.IsPortfolio() {
		points, pointErr = portfolioPoints(in, dates)
	} else {
		points, pointErr = accountPoints(in.SnapshotsByAccount[in.Scope.AccountID], in.Window, dates)
	}
	if pointErr != nil {
		return model.Curve{}, pointErr
	}

	return model.Curve{
		Window:  in.Window,
		Points:  points,
		Summary: summarize(points),
	}, nil
}

// curveDates collects the distinct in-scope snapshot dates within the window
// and splices in both boundary dates, ascending.
func curveDates(in CurveInput) []time.Time {
	var inWindow []time.Time
	for _, rows := range in.SnapshotsByAccount {
		for _, row := range rows {
			if row.Date.Before(in.Window.EffectiveFrom) || row.Date.After(in.Window.EffectiveTo) {
				continue
			}
			inWindow = append(inWindow, row.Date)
		}
	}
	return UnionDates(inWindow, []time.Time{in.Window.EffectiveFrom, in.Window.EffectiveTo})
}

// portfolioPoints computes curve points from begin-anchored portfolio totals
// built by the as-of series walk across all in-scope accounts.
func portfolioPoints(in CurveInput, dates []time.Time) ([]model.CurvePoint, error) {
	rowsBySource := make(map[string][]ValueRow, len(in.SnapshotsByAccount))
	for accountID, rows := range in.SnapshotsByAccount {
		rowsBySource[accountID] = SnapshotRows(rows)
	}

	series := BuildAsOfSeries(dates, rowsBySource)

	beginTotal := int64(0)
	if len(series) > 0 {
		beginTotal = series[0].TotalCents // axis always starts at EffectiveFrom
	}

	points := make([]model.CurvePoint, 0, len(series))
	for _, sp := range series {
		result, err := ModifiedDietz(DietzInput{
			BeginDate:         in.Window.EffectiveFrom,
			EndDate:           sp.Date,
			BeginAssetsCents:  beginTotal,
			EndAssetsCents:    sp.TotalCents,
			Flows:             MergedFlows(in.SnapshotsByAccount, in.Window.EffectiveFrom, sp.Date),
			AllowZeroInterval: true,
		})
		if err != nil {
			return nil, err
		}
		points = append(points, model.CurvePoint{
			Date:                     sp.Date,
			TotalAssetsCents:         sp.TotalCents,
			TransferAmountCents:      sp.FlowOnDateCents,
			CumulativeNetGrowthCents: result.ProfitCents,
			CumulativeReturnRate:     result.ReturnRate,
		})
	}
	return points, nil
}

// accountPoints computes curve points for a single account. Each point
// re-selects its end anchor bounded by the candidate date, so sparse or
// zero-valued rows fall back the same way a direct return query would.
func accountPoints(rows []model.AccountSnapshot, win model.Window, dates []time.Time) ([]model.CurvePoint, error) {
	points := make([]model.CurvePoint, 0, len(dates))
	for _, date := range dates {
		begin, err := SelectBeginSnapshot(rows, win.EffectiveFrom, date)
		if err != nil {
			return nil, err
		}
		end, err := SelectEndSnapshot(rows, begin.Date, date)
		if err != nil {
			return nil, err
		}

		result, err := ModifiedDietz(DietzInput{
			BeginDate:         win.EffectiveFrom,
			EndDate:           date,
			BeginAssetsCents:  begin.TotalAssetsCents,
			EndAssetsCents:    end.TotalAssetsCents,
			Flows:             FlowsBetween(rows, win.EffectiveFrom, date),
			AllowZeroInterval: true,
		})
		if err != nil {
			return nil, err
		}

		transferOnDate := int64(0)
		for _, row := range rows {
			if row.Date.Equal(date) {
				transferOnDate += row.TransferAmountCents
			}
		}

		points = append(points, model.CurvePoint{
			Date:                     date,
			TotalAssetsCents:         end.TotalAssetsCents,
			TransferAmountCents:      transferOnDate,
			CumulativeNetGrowthCents: result.ProfitCents,
			CumulativeReturnRate:     result.ReturnRate,
		})
	}
	return points, nil
}

func summarize(points []model.CurvePoint) model.CurveSummary {
	if len(points) == 0 {
		return model.CurveSummary{}
	}
	first, last := points[0], points[len(points)-1]
	summary := model.CurveSummary{
		FirstTotalCents:          first.TotalAssetsCents,
		LastTotalCents:           last.TotalAssetsCents,
		ChangeCents:              last.TotalAssetsCents - first.TotalAssetsCents,
		EndCumulativeGrowthCents: last.CumulativeNetGrowthCents,
		EndCumulativeReturnRate:  last.CumulativeReturnRate,
	}
	if first.TotalAssetsCents != 0 {
		pct := float64(summary.ChangeCents) / float64(first.TotalAssetsCents)
		summary.ChangePct = &pct
	}
	return summary
}
