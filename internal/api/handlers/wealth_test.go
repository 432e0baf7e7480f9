package handlers_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avandyk/wealth-analytics/internal/api/handlers"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/testutil"
)

// seedWealthAccounts creates one investment account plus cash, real estate
// and liability holdings, latest data on 2026-03-05.
func seedWealthAccounts(t *testing.T, db *sql.DB) {
	t.Helper()

	broker := testutil.NewAccount().WithName("Broker").Build(t, db)
	testutil.NewSnapshot(broker.ID).WithDate(date(t, "2026-01-01")).WithTotalAssets(10_000_000).Build(t, db)
	testutil.NewSnapshot(broker.ID).WithDate(date(t, "2026-03-01")).WithTotalAssets(12_000_000).Build(t, db)

	testutil.NewValuation(testutil.MakeID(), model.AssetClassCash).
		WithAccountName("Savings").WithDate(date(t, "2026-03-05")).WithValue(3_200_000).Build(t, db)
	testutil.NewValuation(testutil.MakeID(), model.AssetClassRealEstate).
		WithAccountName("House").WithDate(date(t, "2026-01-15")).WithValue(50_000_000).Build(t, db)
	testutil.NewValuation(testutil.MakeID(), model.AssetClassLiability).
		WithAccountName("Mortgage").WithDate(date(t, "2026-02-20")).WithValue(20_000_000).Build(t, db)
}

func newWealthHandler(t *testing.T, db *sql.DB) *handlers.WealthHandler {
	t.Helper()

	return handlers.NewWealthHandler(
		testutil.NewTestWealthService(t, db),
		testutil.NewTestMaterializedService(t, db),
	)
}

func TestWealthHandler_Wealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newWealthHandler(t, db)
	seedWealthAccounts(t, db)

	t.Run("latest position by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth", nil)
		rec := httptest.NewRecorder()
		handler.Wealth(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.WealthSnapshotResponse
		decodeJSON(t, rec, &response)
		if response.AsOf != "2026-03-05" {
			t.Errorf("Expected asOf 2026-03-05, got %s", response.AsOf)
		}
		if response.GrossAssetsTotalCents != 65_200_000 {
			t.Errorf("Expected gross 65,200,000, got %d", response.GrossAssetsTotalCents)
		}
		if response.NetAssetTotalCents != 45_200_000 {
			t.Errorf("Expected net 45,200,000, got %d", response.NetAssetTotalCents)
		}
		if response.ReconciliationDeltaCents != 0 {
			t.Errorf("Expected zero reconciliation delta, got %d", response.ReconciliationDeltaCents)
		}
		if len(response.Rows) != 4 {
			t.Errorf("Expected 4 rows, got %d", len(response.Rows))
		}
	})

	t.Run("historical as_of", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth?as_of=2026-02-28", nil)
		rec := httptest.NewRecorder()
		handler.Wealth(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.WealthSnapshotResponse
		decodeJSON(t, rec, &response)
		if response.AsOf != "2026-02-28" {
			t.Errorf("Expected asOf 2026-02-28, got %s", response.AsOf)
		}
		if response.InvestmentTotalCents != 10_000_000 {
			t.Errorf("Expected investment 10,000,000 as of February, got %d", response.InvestmentTotalCents)
		}
	})

	t.Run("liability excluded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth?include=investment,cash,real_estate", nil)
		rec := httptest.NewRecorder()
		handler.Wealth(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.WealthSnapshotResponse
		decodeJSON(t, rec, &response)
		if response.LiabilityTotalCents != 0 {
			t.Errorf("Expected liability excluded, got %d", response.LiabilityTotalCents)
		}
		if response.NetAssetTotalCents != response.GrossAssetsTotalCents {
			t.Errorf("Expected net == gross without liabilities, got %d != %d",
				response.NetAssetTotalCents, response.GrossAssetsTotalCents)
		}
	})

	t.Run("unknown asset type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth?include=crypto", nil)
		rec := httptest.NewRecorder()
		handler.Wealth(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("malformed as_of", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth?as_of=yesterday", nil)
		rec := httptest.NewRecorder()
		handler.Wealth(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

func TestWealthHandler_Wealth_EmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newWealthHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/wealth", nil)
	rec := httptest.NewRecorder()
	handler.Wealth(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestWealthHandler_WealthCurve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newWealthHandler(t, db)
	seedWealthAccounts(t, db)

	t.Run("full curve", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth/curve", nil)
		rec := httptest.NewRecorder()
		handler.WealthCurve(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.WealthCurveResponse
		decodeJSON(t, rec, &response)
		if len(response.Points) == 0 {
			t.Fatal("Expected curve points")
		}
		last := response.Points[len(response.Points)-1]
		if last.Date != "2026-03-05" || last.NetTotalCents != 45_200_000 {
			t.Errorf("Unexpected last curve point: %+v", last)
		}
		if len(response.Growth) != 5 {
			t.Errorf("Expected 5 growth entries, got %d", len(response.Growth))
		}
	})

	t.Run("refresh then served from materialized history", func(t *testing.T) {
		materialized := testutil.NewTestMaterializedService(t, db)
		if err := materialized.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/wealth/curve?include=investment,cash,real_estate", nil)
		rec := httptest.NewRecorder()
		handler.WealthCurve(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.WealthCurveResponse
		decodeJSON(t, rec, &response)
		last := response.Points[len(response.Points)-1]
		if last.LiabilityCents != 0 {
			t.Errorf("Expected liability zeroed, got %d", last.LiabilityCents)
		}
		if last.NetTotalCents != 65_200_000 {
			t.Errorf("Expected net 65,200,000 without liabilities, got %d", last.NetTotalCents)
		}
	})

	t.Run("empty include filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/wealth/curve?include=crypto", nil)
		rec := httptest.NewRecorder()
		handler.WealthCurve(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}
