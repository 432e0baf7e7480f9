package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError translates a service-layer error into the API error
// shape: validation failures map to 400, missing entities and windows with
// nothing to calculate map to 404, everything else is a 500.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNoData), errors.Is(err, apperrors.ErrAccountNotFound):
		status = http.StatusNotFound
	}

	respondJSON(w, status, map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}

// parseWindowRequest reads the preset/from/to query parameters. A missing
// preset means since_inception; from/to stay empty when absent and the window
// resolver fills them in.
func parseWindowRequest(r *http.Request) (analytics.WindowRequest, error) {
	req := analytics.WindowRequest{Preset: analytics.PresetSinceInception}

	if preset := r.URL.Query().Get("preset"); preset != "" {
		req.Preset = analytics.Preset(preset)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		if _, err := validation.ParseDate(from); err != nil {
			return analytics.WindowRequest{}, err
		}
		req.From = from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if _, err := validation.ParseDate(to); err != nil {
			return analytics.WindowRequest{}, err
		}
		req.To = to
	}
	return req, nil
}

// parseScope reads the scope/account_id query parameters. A missing scope
// means the whole portfolio; scope=account requires a valid account_id.
func parseScope(r *http.Request) (model.AccountScope, error) {
	scope := r.URL.Query().Get("scope")
	switch scope {
	case "", "portfolio":
		return model.PortfolioScope(), nil
	case "account":
		accountID := r.URL.Query().Get("account_id")
		if err := validation.ValidateUUID(accountID); err != nil {
			return model.AccountScope{}, err
		}
		return model.SingleAccountScope(accountID), nil
	default:
		return model.AccountScope{}, fmt.Errorf("%w: scope %q is not portfolio or account",
			apperrors.ErrInvalidScope, scope)
	}
}

// parseWealthFilter reads the include query parameter, a comma-separated
// subset of investment, cash, real_estate, liability. Absent means all four.
func parseWealthFilter(r *http.Request) (model.WealthFilter, error) {
	raw := r.URL.Query().Get("include")
	if raw == "" {
		return model.AllWealthTypes(), nil
	}

	var filter model.WealthFilter
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case model.WealthAssetClassInvestment:
			filter.IncludeInvestment = true
		case string(model.AssetClassCash):
			filter.IncludeCash = true
		case string(model.AssetClassRealEstate):
			filter.IncludeRealEstate = true
		case string(model.AssetClassLiability):
			filter.IncludeLiability = true
		default:
			return model.WealthFilter{}, fmt.Errorf("%w: include %q", apperrors.ErrInvalidAssetClass, part)
		}
	}
	return filter, nil
}
