package handlers

import (
	"net/http"
	"time"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/service"
	"github.com/avandyk/wealth-analytics/internal/validation"
)

// WealthHandler handles whole-wealth HTTP requests
type WealthHandler struct {
	wealthService       *service.WealthService
	materializedService *service.MaterializedService
}

// NewWealthHandler creates a new WealthHandler
func NewWealthHandler(
	wealthService *service.WealthService,
	materializedService *service.MaterializedService,
) *WealthHandler {
	return &WealthHandler{
		wealthService:       wealthService,
		materializedService: materializedService,
	}
}

// WealthRowResponse represents one account/asset-class line of a wealth snapshot
type WealthRowResponse struct {
	AccountID     string `json:"accountId"`
	AccountName   string `json:"accountName"`
	AssetClass    string `json:"assetClass"`
	Date          string `json:"date"`
	ValueCents    int64  `json:"valueCents"`
	StalenessDays int    `json:"stalenessDays"`
}

// WealthSnapshotResponse represents the aggregate wealth position as of one date
type WealthSnapshotResponse struct {
	AsOf                     string              `json:"asOf"`
	Rows                     []WealthRowResponse `json:"rows"`
	InvestmentTotalCents     int64               `json:"investmentTotalCents"`
	CashTotalCents           int64               `json:"cashTotalCents"`
	RealEstateTotalCents     int64               `json:"realEstateTotalCents"`
	LiabilityTotalCents      int64               `json:"liabilityTotalCents"`
	GrossAssetsTotalCents    int64               `json:"grossAssetsTotalCents"`
	NetAssetTotalCents       int64               `json:"netAssetTotalCents"`
	ReconciliationDeltaCents int64               `json:"reconciliationDeltaCents"`
}

// Wealth aggregates the latest-known wealth position at or before the as_of
// query date (default: latest available data).
//
// Endpoint: GET /api/wealth?as_of=&include=investment,cash,real_estate,liability
func (h *WealthHandler) Wealth(w http.ResponseWriter, r *http.Request) {
	filter, err := parseWealthFilter(r)
	if err != nil {
		respondServiceError(w, "invalid asset type filter", err)
		return
	}

	var asOf time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err = validation.ParseDate(raw)
		if err != nil {
			respondServiceError(w, "invalid as_of date", err)
			return
		}
	}

	snapshot, err := h.wealthService.GetWealthSnapshot(asOf, filter)
	if err != nil {
		respondServiceError(w, "failed to compute wealth snapshot", err)
		return
	}

	rows := make([]WealthRowResponse, len(snapshot.Rows))
	for i, row := range snapshot.Rows {
		rows[i] = WealthRowResponse{
			AccountID:     row.AccountID,
			AccountName:   row.AccountName,
			AssetClass:    row.AssetClass,
			Date:          row.Date.Format(analytics.DateFormat),
			ValueCents:    row.ValueCents,
			StalenessDays: row.StalenessDays,
		}
	}

	respondJSON(w, http.StatusOK, WealthSnapshotResponse{
		AsOf:                     snapshot.AsOf.Format(analytics.DateFormat),
		Rows:                     rows,
		InvestmentTotalCents:     snapshot.InvestmentTotalCents,
		CashTotalCents:           snapshot.CashTotalCents,
		RealEstateTotalCents:     snapshot.RealEstateTotalCents,
		LiabilityTotalCents:      snapshot.LiabilityTotalCents,
		GrossAssetsTotalCents:    snapshot.GrossAssetsTotalCents,
		NetAssetTotalCents:       snapshot.NetAssetTotalCents,
		ReconciliationDeltaCents: snapshot.ReconciliationDeltaCents,
	})
}

// WealthCurvePointResponse represents the per-class wealth position on one date
type WealthCurvePointResponse struct {
	Date             string `json:"date"`
	InvestmentCents  int64  `json:"investmentCents"`
	CashCents        int64  `json:"cashCents"`
	RealEstateCents  int64  `json:"realEstateCents"`
	LiabilityCents   int64  `json:"liabilityCents"`
	GrossAssetsCents int64  `json:"grossAssetsCents"`
	NetTotalCents    int64  `json:"netTotalCents"`
}

// WealthGrowthResponse represents the change of one asset type over the curve
type WealthGrowthResponse struct {
	AssetClass  string `json:"assetClass"`
	StartCents  int64  `json:"startCents"`
	EndCents    int64  `json:"endCents"`
	GrowthCents int64  `json:"growthCents"`
}

// WealthCurveResponse represents a net-wealth time series
type WealthCurveResponse struct {
	Window WindowResponse             `json:"window"`
	Points []WealthCurvePointResponse `json:"points"`
	Growth []WealthGrowthResponse     `json:"growth"`
}

// WealthCurve computes the net-wealth time series for the window and filter
// given in the query string, served from the materialized history with an
// on-demand fallback.
//
// Endpoint: GET /api/wealth/curve?preset=&from=&to=&include=...
func (h *WealthHandler) WealthCurve(w http.ResponseWriter, r *http.Request) {
	filter, err := parseWealthFilter(r)
	if err != nil {
		respondServiceError(w, "invalid asset type filter", err)
		return
	}
	windowReq, err := parseWindowRequest(r)
	if err != nil {
		respondServiceError(w, "invalid window", err)
		return
	}

	curve, err := h.materializedService.GetWealthCurveWithFallback(windowReq, filter)
	if err != nil {
		respondServiceError(w, "failed to compute wealth curve", err)
		return
	}

	respondJSON(w, http.StatusOK, newWealthCurveResponse(curve))
}

func newWealthCurveResponse(curve model.WealthCurve) WealthCurveResponse {
	points := make([]WealthCurvePointResponse, len(curve.Points))
	for i, p := range curve.Points {
		points[i] = WealthCurvePointResponse{
			Date:             p.Date.Format(analytics.DateFormat),
			InvestmentCents:  p.InvestmentCents,
			CashCents:        p.CashCents,
			RealEstateCents:  p.RealEstateCents,
			LiabilityCents:   p.LiabilityCents,
			GrossAssetsCents: p.GrossAssetsCents,
			NetTotalCents:    p.NetTotalCents,
		}
	}

	growth := make([]WealthGrowthResponse, len(curve.Growth))
	for i, g := range curve.Growth {
		growth[i] = WealthGrowthResponse{
			AssetClass:  g.AssetClass,
			StartCents:  g.StartCents,
			EndCents:    g.EndCents,
			GrowthCents: g.GrowthCents,
		}
	}

	return WealthCurveResponse{
		Window: newWindowResponse(curve.Window),
		Points: points,
		Growth: growth,
	}
}
