package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/api/request"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/service"
	"github.com/avandyk/wealth-analytics/internal/validation"
)

// AccountHandler handles account and snapshot HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// AccountResponse represents one tracked account
type AccountResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	IsArchived bool   `json:"is_archived"`
}

// Accounts lists tracked accounts. Archived accounts are included only with
// ?include_archived=true.
//
// Endpoint: GET /api/accounts
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	accounts, err := h.accountService.GetAccounts(includeArchived)
	if err != nil {
		respondServiceError(w, "failed to retrieve accounts", err)
		return
	}

	response := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		response[i] = AccountResponse{
			ID:         a.ID,
			Name:       a.Name,
			Kind:       a.Kind,
			IsArchived: a.IsArchived,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// CreateAccount registers a new account.
//
// Endpoint: POST /api/accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	account, err := h.accountService.CreateAccount(req.Name, req.Kind)
	if err != nil {
		respondServiceError(w, "failed to create account", err)
		return
	}

	respondJSON(w, http.StatusCreated, AccountResponse{
		ID:   account.ID,
		Name: account.Name,
		Kind: account.Kind,
	})
}

// SnapshotResponse represents one account snapshot row
type SnapshotResponse struct {
	AccountID           string `json:"accountId"`
	Date                string `json:"date"`
	TotalAssetsCents    int64  `json:"totalAssetsCents"`
	TransferAmountCents int64  `json:"transferAmountCents"`
}

// Snapshots returns the full snapshot history of one account, ascending by date.
//
// Endpoint: GET /api/accounts/{accountID}/snapshots
func (h *AccountHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	snapshots, err := h.accountService.GetAccountSnapshots(accountID)
	if err != nil {
		respondServiceError(w, "failed to retrieve account snapshots", err)
		return
	}

	response := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		response[i] = SnapshotResponse{
			AccountID:           s.AccountID,
			Date:                s.Date.Format(analytics.DateFormat),
			TotalAssetsCents:    s.TotalAssetsCents,
			TransferAmountCents: s.TransferAmountCents,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// UpsertSnapshot records one snapshot row for the account, replacing any
// existing row on the same date.
//
// Endpoint: POST /api/accounts/{accountID}/snapshots
func (h *AccountHandler) UpsertSnapshot(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var req request.UpsertSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	date, err := validation.ParseDate(req.Date)
	if err != nil {
		respondServiceError(w, "invalid snapshot date", err)
		return
	}

	snapshot, err := h.accountService.UpsertSnapshot(model.AccountSnapshot{
		AccountID:           accountID,
		Date:                date,
		TotalAssetsCents:    req.TotalAssetsCents,
		TransferAmountCents: req.TransferAmountCents,
	})
	if err != nil {
		respondServiceError(w, "failed to store snapshot", err)
		return
	}

	respondJSON(w, http.StatusCreated, SnapshotResponse{
		AccountID:           snapshot.AccountID,
		Date:                snapshot.Date.Format(analytics.DateFormat),
		TotalAssetsCents:    snapshot.TotalAssetsCents,
		TransferAmountCents: snapshot.TransferAmountCents,
	})
}
