package analytics_test

import (
	"errors"
	"testing"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

func snap(t *testing.T, d string, assets, transfer int64) model.AccountSnapshot {
	t.Helper()
	return model.AccountSnapshot{AccountID: "acc", Date: date(t, d), TotalAssetsCents: assets, TransferAmountCents: transfer}
}

// TestSelectBeginSnapshot covers the three-step fallback chain over sparse
// histories with zero-valued placeholder rows.
func TestSelectBeginSnapshot(t *testing.T) {
	t.Run("prefers latest positive snapshot at or before window start", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2025-11-01", 900_000, 0),
			snap(t, "2025-12-15", 1_000_000, 0),
			snap(t, "2026-01-20", 1_100_000, 0),
		}
		begin, err := analytics.SelectBeginSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !begin.Date.Equal(date(t, "2025-12-15")) {
			t.Errorf("Expected begin 2025-12-15, got %s", begin.Date.Format("2006-01-02"))
		}
	})

	t.Run("skips zero-valued placeholder before window, falls into window", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2025-12-20", 0, 500_000), // transfer-only row, no valuation
			snap(t, "2026-01-10", 520_000, 0),
			snap(t, "2026-02-01", 530_000, 0),
		}
		begin, err := analytics.SelectBeginSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !begin.Date.Equal(date(t, "2026-01-10")) {
			t.Errorf("Expected earliest positive in-window snapshot 2026-01-10, got %s", begin.Date.Format("2006-01-02"))
		}
	})

	t.Run("falls back to latest at-or-before regardless of sign", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2025-12-01", 0, 0),
			snap(t, "2025-12-20", 0, 250_000),
		}
		begin, err := analytics.SelectBeginSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !begin.Date.Equal(date(t, "2025-12-20")) {
			t.Errorf("Expected zero-valued fallback 2025-12-20, got %s", begin.Date.Format("2006-01-02"))
		}
	})

	t.Run("no usable snapshot yields ErrNoData", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2026-05-01", 100_000, 0), // after the window entirely
		}
		_, err := analytics.SelectBeginSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if !errors.Is(err, apperrors.ErrNoData) {
			t.Errorf("Expected ErrNoData, got %v", err)
		}
	})
}

func TestSelectEndSnapshot(t *testing.T) {
	t.Run("prefers latest positive snapshot in range", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2026-01-10", 500_000, 0),
			snap(t, "2026-02-10", 510_000, 0),
			snap(t, "2026-03-15", 0, -510_000), // closed out: placeholder row
		}
		end, err := analytics.SelectEndSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !end.Date.Equal(date(t, "2026-02-10")) {
			t.Errorf("Expected end 2026-02-10, got %s", end.Date.Format("2006-01-02"))
		}
	})

	t.Run("falls back to latest regardless of sign", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2026-01-10", 0, 100_000),
			snap(t, "2026-02-10", 0, 50_000),
		}
		end, err := analytics.SelectEndSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !end.Date.Equal(date(t, "2026-02-10")) {
			t.Errorf("Expected end 2026-02-10, got %s", end.Date.Format("2006-01-02"))
		}
	})

	t.Run("empty range yields ErrNoData", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2025-06-01", 100_000, 0),
		}
		_, err := analytics.SelectEndSnapshot(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if !errors.Is(err, apperrors.ErrNoData) {
			t.Errorf("Expected ErrNoData, got %v", err)
		}
	})
}

func TestSelectSnapshots(t *testing.T) {
	t.Run("resolves a usable begin/end pair", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2025-12-15", 1_000_000, 0),
			snap(t, "2026-01-20", 1_050_000, 0),
			snap(t, "2026-02-20", 1_100_000, 0),
		}
		begin, end, err := analytics.SelectSnapshots(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !begin.Date.Equal(date(t, "2025-12-15")) || !end.Date.Equal(date(t, "2026-02-20")) {
			t.Errorf("Expected pair (2025-12-15, 2026-02-20), got (%s, %s)",
				begin.Date.Format("2006-01-02"), end.Date.Format("2006-01-02"))
		}
	})

	t.Run("identical from and to yields ErrNoData", func(t *testing.T) {
		rows := []model.AccountSnapshot{
			snap(t, "2026-01-15", 1_000_000, 0),
		}
		_, _, err := analytics.SelectSnapshots(rows, date(t, "2026-01-15"), date(t, "2026-01-15"))
		if !errors.Is(err, apperrors.ErrNoData) {
			t.Errorf("Expected ErrNoData for zero-length window, got %v", err)
		}
	})

	t.Run("begin at or after end yields ErrNoData", func(t *testing.T) {
		// Only one snapshot exists; begin and end resolve to the same row.
		rows := []model.AccountSnapshot{
			snap(t, "2025-12-15", 1_000_000, 0),
		}
		_, _, err := analytics.SelectSnapshots(rows, date(t, "2026-01-01"), date(t, "2026-03-31"))
		if !errors.Is(err, apperrors.ErrNoData) {
			t.Errorf("Expected ErrNoData, got %v", err)
		}
	})
}

func TestFlowsBetween(t *testing.T) {
	rows := []model.AccountSnapshot{
		snap(t, "2026-01-01", 1_000_000, 1_000_000), // on begin: excluded (strictly after)
		snap(t, "2026-01-10", 1_200_000, 200_000),
		snap(t, "2026-01-15", 1_210_000, 0), // zero transfer: not a flow
		snap(t, "2026-01-31", 1_100_000, -100_000), // on end: included
		snap(t, "2026-02-05", 1_150_000, 50_000),   // after end: excluded
	}
	flows := analytics.FlowsBetween(rows, date(t, "2026-01-01"), date(t, "2026-01-31"))

	if len(flows) != 2 {
		t.Fatalf("Expected 2 flows, got %d", len(flows))
	}
	if flows[0].AmountCents != 200_000 || flows[1].AmountCents != -100_000 {
		t.Errorf("Unexpected flow amounts: %d, %d", flows[0].AmountCents, flows[1].AmountCents)
	}
}
