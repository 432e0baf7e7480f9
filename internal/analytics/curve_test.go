package analytics_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/model"
)

func windowFor(t *testing.T, from, to string) model.Window {
	t.Helper()
	f, o := date(t, from), date(t, to)
	return model.Window{
		RequestedFrom: f,
		RequestedTo:   o,
		EffectiveFrom: f,
		EffectiveTo:   o,
		IntervalDays:  int(o.Sub(f).Hours() / 24),
	}
}

// twoAccountInput is the end-to-end fixture: account A grows from 5,000,000
// to 6,000,000 with no flows; account B falls from 3,000,000 to 2,500,000
// with one -500,000 withdrawal mid-window.
func twoAccountInput(t *testing.T) analytics.CurveInput {
	t.Helper()
	return analytics.CurveInput{
		Scope:  model.PortfolioScope(),
		Window: windowFor(t, "2026-01-01", "2026-01-31"),
		SnapshotsByAccount: map[string][]model.AccountSnapshot{
			"a": {
				{AccountID: "a", Date: date(t, "2026-01-01"), TotalAssetsCents: 5_000_000},
				{AccountID: "a", Date: date(t, "2026-01-31"), TotalAssetsCents: 6_000_000},
			},
			"b": {
				{AccountID: "b", Date: date(t, "2026-01-01"), TotalAssetsCents: 3_000_000},
				{AccountID: "b", Date: date(t, "2026-01-16"), TotalAssetsCents: 2_400_000, TransferAmountCents: -500_000},
				{AccountID: "b", Date: date(t, "2026-01-31"), TotalAssetsCents: 2_500_000},
			},
		},
	}
}

// TestBuildCurve_PortfolioEndToEnd covers the combined-total semantics: the
// portfolio return is a single Dietz calculation over summed as-of totals,
// which in general differs from any weighted average of per-account returns.
func TestBuildCurve_PortfolioEndToEnd(t *testing.T) {
	curve, err := analytics.BuildCurve(twoAccountInput(t))
	if err != nil {
		t.Fatalf("BuildCurve() returned unexpected error: %v", err)
	}

	if len(curve.Points) != 3 {
		t.Fatalf("Expected 3 points (01-01, 01-16, 01-31), got %d", len(curve.Points))
	}

	first, last := curve.Points[0], curve.Points[2]
	if first.TotalAssetsCents != 8_000_000 {
		t.Errorf("Expected begin total 8,000,000, got %d", first.TotalAssetsCents)
	}
	if last.TotalAssetsCents != 8_500_000 {
		t.Errorf("Expected end total 8,500,000, got %d", last.TotalAssetsCents)
	}

	// First point is the window start: zero interval, zero return.
	if first.CumulativeReturnRate == nil || *first.CumulativeReturnRate != 0 {
		t.Errorf("Expected first-point return 0.0, got %v", first.CumulativeReturnRate)
	}

	// Portfolio Dietz on combined totals: profit = 8.5M - 8M - (-0.5M) = 1M,
	// capital = 8M - 0.5M*(15/30) = 7.75M.
	if last.CumulativeNetGrowthCents != 1_000_000 {
		t.Errorf("Expected cumulative growth 1,000,000, got %d", last.CumulativeNetGrowthCents)
	}
	if last.CumulativeReturnRate == nil {
		t.Fatal("Expected a defined end return rate")
	}
	wantRate := 1_000_000.0 / 7_750_000.0
	if math.Abs(*last.CumulativeReturnRate-wantRate) > 1e-8 {
		t.Errorf("Expected end return %.10f, got %.10f", wantRate, *last.CumulativeReturnRate)
	}

	// The combined return must differ from per-account returns and from their
	// begin-value-weighted average.
	rateA := 1_000_000.0 / 5_000_000.0 // 20%, no flows
	rateB := (2_500_000.0 - 3_000_000.0 + 500_000.0) / (3_000_000.0 - 500_000.0*0.5)
	weightedAvg := (rateA*5_000_000 + rateB*3_000_000) / 8_000_000
	for name, other := range map[string]float64{"account A": rateA, "account B": rateB, "weighted average": weightedAvg} {
		if math.Abs(*last.CumulativeReturnRate-other) < 1e-9 {
			t.Errorf("Portfolio return unexpectedly equals %s return %.10f", name, other)
		}
	}

	// Summary mirrors the endpoints.
	if curve.Summary.FirstTotalCents != 8_000_000 || curve.Summary.LastTotalCents != 8_500_000 {
		t.Errorf("Unexpected summary totals: %+v", curve.Summary)
	}
	if curve.Summary.ChangeCents != 500_000 {
		t.Errorf("Expected change 500,000, got %d", curve.Summary.ChangeCents)
	}
	if curve.Summary.ChangePct == nil || math.Abs(*curve.Summary.ChangePct-0.0625) > 1e-12 {
		t.Errorf("Expected change pct 0.0625, got %v", curve.Summary.ChangePct)
	}
	if curve.Summary.EndCumulativeGrowthCents != 1_000_000 {
		t.Errorf("Expected end growth 1,000,000, got %d", curve.Summary.EndCumulativeGrowthCents)
	}
}

// TestBuildCurve_PointConsistency pins every curve point against an
// independent Dietz calculation over (window start, point date).
//
// WHY: points are defined as from-scratch returns since the window start;
// this guards against anyone "optimizing" the builder into incremental
// accumulation, which is not provably equivalent.
func TestBuildCurve_PointConsistency(t *testing.T) {
	in := twoAccountInput(t)
	curve, err := analytics.BuildCurve(in)
	if err != nil {
		t.Fatalf("BuildCurve() returned unexpected error: %v", err)
	}

	var allRows []model.AccountSnapshot
	for _, rows := range in.SnapshotsByAccount {
		allRows = append(allRows, rows...)
	}

	for _, point := range curve.Points {
		independent, err := analytics.ModifiedDietz(analytics.DietzInput{
			BeginDate:         in.Window.EffectiveFrom,
			EndDate:           point.Date,
			BeginAssetsCents:  8_000_000,
			EndAssetsCents:    point.TotalAssetsCents,
			Flows:             analytics.FlowsBetween(allRows, in.Window.EffectiveFrom, point.Date),
			AllowZeroInterval: true,
		})
		if err != nil {
			t.Fatalf("Independent Dietz at %s failed: %v", point.Date.Format("2006-01-02"), err)
		}

		if (point.CumulativeReturnRate == nil) != (independent.ReturnRate == nil) {
			t.Fatalf("At %s: definedness mismatch", point.Date.Format("2006-01-02"))
		}
		if point.CumulativeReturnRate != nil &&
			math.Abs(*point.CumulativeReturnRate-*independent.ReturnRate) > 1e-12 {
			t.Errorf("At %s: curve rate %.12f != independent rate %.12f",
				point.Date.Format("2006-01-02"), *point.CumulativeReturnRate, *independent.ReturnRate)
		}
		if point.CumulativeNetGrowthCents != independent.ProfitCents {
			t.Errorf("At %s: curve growth %d != independent profit %d",
				point.Date.Format("2006-01-02"), point.CumulativeNetGrowthCents, independent.ProfitCents)
		}
	}
}

func TestBuildCurve_SingleAccount(t *testing.T) {
	rows := []model.AccountSnapshot{
		{AccountID: "a", Date: date(t, "2025-12-15"), TotalAssetsCents: 1_000_000},
		{AccountID: "a", Date: date(t, "2026-01-10"), TotalAssetsCents: 1_250_000, TransferAmountCents: 200_000},
		{AccountID: "a", Date: date(t, "2026-01-31"), TotalAssetsCents: 1_300_000},
	}
	in := analytics.CurveInput{
		Scope:              model.SingleAccountScope("a"),
		Window:             windowFor(t, "2026-01-01", "2026-01-31"),
		SnapshotsByAccount: map[string][]model.AccountSnapshot{"a": rows},
	}

	curve, err := analytics.BuildCurve(in)
	if err != nil {
		t.Fatalf("BuildCurve() returned unexpected error: %v", err)
	}

	// Axis: window boundaries plus the 01-10 snapshot.
	if len(curve.Points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(curve.Points))
	}

	// Begin anchor falls back to the 2025-12-15 snapshot; the first point is
	// still a zero-interval, zero-return point at the window start.
	first := curve.Points[0]
	if first.TotalAssetsCents != 1_000_000 {
		t.Errorf("Expected first total 1,000,000 (carried begin anchor), got %d", first.TotalAssetsCents)
	}
	if first.CumulativeReturnRate == nil || *first.CumulativeReturnRate != 0 {
		t.Errorf("Expected first-point return 0.0, got %v", first.CumulativeReturnRate)
	}

	mid := curve.Points[1]
	if mid.TransferAmountCents != 200_000 {
		t.Errorf("Expected transfer 200,000 on 2026-01-10, got %d", mid.TransferAmountCents)
	}
	// profit at 01-10: 1,250,000 - 1,000,000 - 200,000 = 50,000
	if mid.CumulativeNetGrowthCents != 50_000 {
		t.Errorf("Expected growth 50,000 at mid point, got %d", mid.CumulativeNetGrowthCents)
	}

	last := curve.Points[2]
	// profit at 01-31: 1,300,000 - 1,000,000 - 200,000 = 100,000
	if last.CumulativeNetGrowthCents != 100_000 {
		t.Errorf("Expected growth 100,000 at end, got %d", last.CumulativeNetGrowthCents)
	}
	if last.CumulativeReturnRate == nil {
		t.Fatal("Expected a defined end rate")
	}
	// capital: 1,000,000 + 200,000 * (21/30)
	wantRate := 100_000.0 / (1_000_000.0 + 200_000.0*21.0/30.0)
	if math.Abs(*last.CumulativeReturnRate-wantRate) > 1e-8 {
		t.Errorf("Expected end rate %.10f, got %.10f", wantRate, *last.CumulativeReturnRate)
	}
}

// TestBuildCurve_Idempotence: identical inputs yield identical curves.
func TestBuildCurve_Idempotence(t *testing.T) {
	first, err := analytics.BuildCurve(twoAccountInput(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := analytics.BuildCurve(twoAccountInput(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Identical inputs produced different curves")
	}
}
