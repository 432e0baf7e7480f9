package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avandyk/wealth-analytics/internal/api/handlers"
	"github.com/avandyk/wealth-analytics/internal/testutil"
)

// withURLParam attaches a chi route parameter to the request context, so
// handlers can be called directly without mounting the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Accounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))

	testutil.NewAccount().WithName("Broker").Build(t, db)
	testutil.NewAccount().WithName("Closed").Archived().Build(t, db)

	t.Run("active only by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		rec := httptest.NewRecorder()
		handler.Accounts(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}

		var response []handlers.AccountResponse
		decodeJSON(t, rec, &response)
		if len(response) != 1 || response[0].Name != "Broker" {
			t.Errorf("Expected only the active account, got %+v", response)
		}
	})

	t.Run("with include_archived", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts?include_archived=true", nil)
		rec := httptest.NewRecorder()
		handler.Accounts(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}

		var response []handlers.AccountResponse
		decodeJSON(t, rec, &response)
		if len(response) != 2 {
			t.Errorf("Expected 2 accounts, got %d", len(response))
		}
	})
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))

	t.Run("valid request", func(t *testing.T) {
		body := strings.NewReader(`{"name": "Pension Fund", "kind": "pension"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/accounts", body)
		rec := httptest.NewRecorder()
		handler.CreateAccount(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.AccountResponse
		decodeJSON(t, rec, &response)
		if response.ID == "" || response.Name != "Pension Fund" || response.Kind != "pension" {
			t.Errorf("Unexpected account response: %+v", response)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		body := strings.NewReader(`{"name": "", "kind": "pension"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/accounts", body)
		rec := httptest.NewRecorder()
		handler.CreateAccount(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		body := strings.NewReader(`{not json`)
		req := httptest.NewRequest(http.MethodPost, "/api/accounts", body)
		rec := httptest.NewRecorder()
		handler.CreateAccount(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_Snapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))

	account := testutil.NewAccount().Build(t, db)
	testutil.NewSnapshot(account.ID).WithDate(date(t, "2026-01-01")).WithTotalAssets(10_000_000).Build(t, db)
	testutil.NewSnapshot(account.ID).WithDate(date(t, "2026-01-10")).WithTotalAssets(12_300_000).WithTransfer(2_000_000).Build(t, db)

	t.Run("existing account", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/"+account.ID+"/snapshots", nil)
		req = withURLParam(req, "accountID", account.ID)
		rec := httptest.NewRecorder()
		handler.Snapshots(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response []handlers.SnapshotResponse
		decodeJSON(t, rec, &response)
		if len(response) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(response))
		}
		if response[0].Date != "2026-01-01" || response[1].TransferAmountCents != 2_000_000 {
			t.Errorf("Unexpected snapshot rows: %+v", response)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		unknown := testutil.MakeID()
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/"+unknown+"/snapshots", nil)
		req = withURLParam(req, "accountID", unknown)
		rec := httptest.NewRecorder()
		handler.Snapshots(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_UpsertSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewAccountHandler(testutil.NewTestAccountService(t, db))

	account := testutil.NewAccount().Build(t, db)

	t.Run("valid snapshot", func(t *testing.T) {
		body := strings.NewReader(`{"date": "2026-01-01", "totalAssetsCents": 10000000, "transferAmountCents": 500000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/accounts/"+account.ID+"/snapshots", body)
		req = withURLParam(req, "accountID", account.ID)
		rec := httptest.NewRecorder()
		handler.UpsertSnapshot(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var response handlers.SnapshotResponse
		decodeJSON(t, rec, &response)
		if response.Date != "2026-01-01" || response.TotalAssetsCents != 10_000_000 {
			t.Errorf("Unexpected snapshot response: %+v", response)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		body := strings.NewReader(`{"date": "01/02/2026", "totalAssetsCents": 10000000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/accounts/"+account.ID+"/snapshots", body)
		req = withURLParam(req, "accountID", account.ID)
		rec := httptest.NewRecorder()
		handler.UpsertSnapshot(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		unknown := testutil.MakeID()
		body := strings.NewReader(`{"date": "2026-01-01", "totalAssetsCents": 10000000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/accounts/"+unknown+"/snapshots", body)
		req = withURLParam(req, "accountID", unknown)
		rec := httptest.NewRecorder()
		handler.UpsertSnapshot(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}
