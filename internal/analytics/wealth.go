package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// WealthInput carries everything one wealth aggregation reads: the effective
// as-of date (already clamped to the latest available data), the asset-type
// filters, investment snapshot histories keyed by account, the display names
// of those accounts, and every asset valuation sorted by
// (account, asset class, date).
type WealthInput struct {
	AsOf               time.Time
	Filter             model.WealthFilter
	SnapshotsByAccount map[string][]model.AccountSnapshot
	AccountNames       map[string]string
	Valuations         []model.AssetValuation
}

// AggregateWealth combines the latest-known investment, cash, real-estate and
// liability values at or before the as-of date into one wealth snapshot.
//
// Each emitted row is the newest record of its account/asset-class at or
// before AsOf, with StalenessDays measuring its age against AsOf. Gross
// assets sum the included non-liability classes; the net total subtracts the
// liability total when liabilities are included. The reconciliation delta
// re-sums the emitted rows independently and must come out zero; it is a
// diagnostic, never an error.
func AggregateWealth(in WealthInput) (model.WealthSnapshot, error) {
	if !in.Filter.Any() {
		return model.WealthSnapshot{}, fmt.Errorf("%w: enable at least one of investment, cash, real_estate, liability",
			apperrors.ErrNoAssetTypeSelected)
	}

	snapshot := model.WealthSnapshot{AsOf: in.AsOf}

	if in.Filter.IncludeInvestment {
		for _, accountID := range sortedKeys(in.SnapshotsByAccount) {
			row, ok := latestSnapshotAt(in.SnapshotsByAccount[accountID], in.AsOf)
			if !ok {
				continue
			}
			snapshot.Rows = append(snapshot.Rows, model.WealthRow{
				AccountID:     accountID,
				AccountName:   in.AccountNames[accountID],
				AssetClass:    model.WealthAssetClassInvestment,
				Date:          row.Date,
				ValueCents:    row.TotalAssetsCents,
				StalenessDays: daysBetween(row.Date, in.AsOf),
			})
			snapshot.InvestmentTotalCents += row.TotalAssetsCents
		}
	}

	for _, holding := range groupValuations(in.Valuations) {
		if !classIncluded(holding.class, in.Filter) {
			continue
		}
		row, ok := latestValuationAt(holding.rows, in.AsOf)
		if !ok {
			continue
		}
		snapshot.Rows = append(snapshot.Rows, model.WealthRow{
			AccountID:     row.AccountID,
			AccountName:   row.AccountName,
			AssetClass:    string(holding.class),
			Date:          row.Date,
			ValueCents:    row.ValueCents,
			StalenessDays: daysBetween(row.Date, in.AsOf),
		})
		switch holding.class {
		case model.AssetClassCash:
			snapshot.CashTotalCents += row.ValueCents
		case model.AssetClassRealEstate:
			snapshot.RealEstateTotalCents += row.ValueCents
		case model.AssetClassLiability:
			snapshot.LiabilityTotalCents += row.ValueCents
		}
	}

	snapshot.GrossAssetsTotalCents = snapshot.InvestmentTotalCents + snapshot.CashTotalCents + snapshot.RealEstateTotalCents
	snapshot.NetAssetTotalCents = snapshot.GrossAssetsTotalCents
	if in.Filter.IncludeLiability {
		snapshot.NetAssetTotalCents -= snapshot.LiabilityTotalCents
	}

	// Independent re-sum of the emitted rows against the computed net total.
	var assetSum, liabilitySum int64
	for _, row := range snapshot.Rows {
		if row.AssetClass == string(model.AssetClassLiability) {
			liabilitySum += row.ValueCents
		} else {
			assetSum += row.ValueCents
		}
	}
	snapshot.ReconciliationDeltaCents = (assetSum - liabilitySum) - snapshot.NetAssetTotalCents

	return snapshot, nil
}

// BuildWealthCurve evaluates the wealth aggregation at every date in the
// union of investment and valuation snapshot dates inside the window, via one
// forward-filled series per asset class, and reports growth since the first
// point per class and for the composite net total.
func BuildWealthCurve(win model.Window, in WealthInput) (model.WealthCurve, error) {
	filter := in.Filter
	if !filter.Any() {
		return model.WealthCurve{}, fmt.Errorf("%w: enable at least one of investment, cash, real_estate, liability",
			apperrors.ErrNoAssetTypeSelected)
	}

	var snapshotDates, valuationDates []time.Time
	for _, rows := range in.SnapshotsByAccount {
		for _, row := range rows {
			if !row.Date.Before(win.EffectiveFrom) && !row.Date.After(win.EffectiveTo) {
				snapshotDates = append(snapshotDates, row.Date)
			}
		}
	}
	for _, row := range in.Valuations {
		if !row.Date.Before(win.EffectiveFrom) && !row.Date.After(win.EffectiveTo) {
			valuationDates = append(valuationDates, row.Date)
		}
	}
	dates := UnionDates(snapshotDates, valuationDates, []time.Time{win.EffectiveFrom, win.EffectiveTo})

	investmentRows := make(map[string][]ValueRow, len(in.SnapshotsByAccount))
	for accountID, rows := range in.SnapshotsByAccount {
		investmentRows[accountID] = SnapshotRows(rows)
	}
	classRows := map[model.AssetClass]map[string][]ValueRow{
		model.AssetClassCash:       {},
		model.AssetClassRealEstate: {},
		model.AssetClassLiability:  {},
	}
	for _, holding := range groupValuations(in.Valuations) {
		classRows[holding.class][holding.accountID] = ValuationRows(holding.rows)
	}

	investment := BuildAsOfSeries(dates, investmentRows)
	cash := BuildAsOfSeries(dates, classRows[model.AssetClassCash])
	realEstate := BuildAsOfSeries(dates, classRows[model.AssetClassRealEstate])
	liability := BuildAsOfSeries(dates, classRows[model.AssetClassLiability])

	points := make([]model.WealthCurvePoint, len(dates))
	for i, date := range dates {
		point := model.WealthCurvePoint{Date: date}
		if filter.IncludeInvestment {
			point.InvestmentCents = investment[i].TotalCents
		}
		if filter.IncludeCash {
			point.CashCents = cash[i].TotalCents
		}
		if filter.IncludeRealEstate {
			point.RealEstateCents = realEstate[i].TotalCents
		}
		if filter.IncludeLiability {
			point.LiabilityCents = liability[i].TotalCents
		}
		point.GrossAssetsCents = point.InvestmentCents + point.CashCents + point.RealEstateCents
		point.NetTotalCents = point.GrossAssetsCents - point.LiabilityCents
		points[i] = point
	}

	return model.WealthCurve{
		Window: win,
		Points: points,
		Growth: curveGrowth(points),
	}, nil
}

// ApplyWealthFilter recomputes a wealth curve from stored per-class points
// under the given asset-type filter: excluded classes are zeroed, gross and
// net totals re-derived, and growth-since-start recomputed. The materialized
// read path stores unfiltered per-class totals and applies filters here.
func ApplyWealthFilter(win model.Window, filter model.WealthFilter, points []model.WealthCurvePoint) (model.WealthCurve, error) {
	if !filter.Any() {
		return model.WealthCurve{}, fmt.Errorf("%w: enable at least one of investment, cash, real_estate, liability",
			apperrors.ErrNoAssetTypeSelected)
	}

	filtered := make([]model.WealthCurvePoint, len(points))
	for i, p := range points {
		out := model.WealthCurvePoint{Date: p.Date}
		if filter.IncludeInvestment {
			out.InvestmentCents = p.InvestmentCents
		}
		if filter.IncludeCash {
			out.CashCents = p.CashCents
		}
		if filter.IncludeRealEstate {
			out.RealEstateCents = p.RealEstateCents
		}
		if filter.IncludeLiability {
			out.LiabilityCents = p.LiabilityCents
		}
		out.GrossAssetsCents = out.InvestmentCents + out.CashCents + out.RealEstateCents
		out.NetTotalCents = out.GrossAssetsCents - out.LiabilityCents
		filtered[i] = out
	}

	return model.WealthCurve{
		Window: win,
		Points: filtered,
		Growth: curveGrowth(filtered),
	}, nil
}

func curveGrowth(points []model.WealthCurvePoint) []model.WealthGrowth {
	if len(points) == 0 {
		return nil
	}
	first, last := points[0], points[len(points)-1]
	growth := func(class string, start, end int64) model.WealthGrowth {
		return model.WealthGrowth{AssetClass: class, StartCents: start, EndCents: end, GrowthCents: end - start}
	}
	return []model.WealthGrowth{
		growth(model.WealthAssetClassInvestment, first.InvestmentCents, last.InvestmentCents),
		growth(string(model.AssetClassCash), first.CashCents, last.CashCents),
		growth(string(model.AssetClassRealEstate), first.RealEstateCents, last.RealEstateCents),
		growth(string(model.AssetClassLiability), first.LiabilityCents, last.LiabilityCents),
		growth("net", first.NetTotalCents, last.NetTotalCents),
	}
}

// holding is one account/asset-class valuation history.
type holding struct {
	accountID string
	class     model.AssetClass
	rows      []model.AssetValuation
}

// groupValuations splits valuations, sorted by (account, class, date), into
// per-holding histories, preserving that order.
func groupValuations(valuations []model.AssetValuation) []holding {
	var holdings []holding
	for _, v := range valuations {
		n := len(holdings)
		if n == 0 || holdings[n-1].accountID != v.AccountID || holdings[n-1].class != v.AssetClass {
			holdings = append(holdings, holding{accountID: v.AccountID, class: v.AssetClass})
			n++
		}
		holdings[n-1].rows = append(holdings[n-1].rows, v)
	}
	return holdings
}

func classIncluded(class model.AssetClass, filter model.WealthFilter) bool {
	switch class {
	case model.AssetClassCash:
		return filter.IncludeCash
	case model.AssetClassRealEstate:
		return filter.IncludeRealEstate
	case model.AssetClassLiability:
		return filter.IncludeLiability
	}
	return false
}

func latestSnapshotAt(rows []model.AccountSnapshot, asOf time.Time) (model.AccountSnapshot, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Date.After(asOf) {
			return rows[i], true
		}
	}
	return model.AccountSnapshot{}, false
}

func latestValuationAt(rows []model.AssetValuation, asOf time.Time) (model.AssetValuation, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Date.After(asOf) {
			return rows[i], true
		}
	}
	return model.AssetValuation{}, false
}

func sortedKeys(m map[string][]model.AccountSnapshot) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
