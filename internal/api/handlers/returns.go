package handlers

import (
	"net/http"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/service"
)

// ReturnHandler handles money-weighted return HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{
		returnService: returnService,
	}
}

// CashFlowResponse represents one external flow inside a return calculation
type CashFlowResponse struct {
	Date        string  `json:"date"`
	AmountCents int64   `json:"amountCents"`
	Weight      float64 `json:"weight"`
}

// ReturnResponse represents a Modified Dietz calculation outcome. ReturnRate
// and AnnualizedRate are null when mathematically undefined; Note says why.
type ReturnResponse struct {
	BeginDate            string             `json:"beginDate"`
	EndDate              string             `json:"endDate"`
	IntervalDays         int                `json:"intervalDays"`
	BeginAssetsCents     int64              `json:"beginAssetsCents"`
	EndAssetsCents       int64              `json:"endAssetsCents"`
	NetFlowCents         int64              `json:"netFlowCents"`
	ProfitCents          int64              `json:"profitCents"`
	WeightedCapitalCents float64            `json:"weightedCapitalCents"`
	ReturnRate           *float64           `json:"returnRate"`
	AnnualizedRate       *float64           `json:"annualizedRate"`
	Note                 string             `json:"note,omitempty"`
	CashFlows            []CashFlowResponse `json:"cashFlows"`
}

// Return computes the money-weighted return for the scope and window given
// in the query string.
//
// Endpoint: GET /api/returns?scope=&account_id=&preset=&from=&to=
func (h *ReturnHandler) Return(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		respondServiceError(w, "invalid scope", err)
		return
	}
	windowReq, err := parseWindowRequest(r)
	if err != nil {
		respondServiceError(w, "invalid window", err)
		return
	}

	result, err := h.returnService.GetReturn(scope, windowReq)
	if err != nil {
		respondServiceError(w, "failed to compute return", err)
		return
	}

	respondJSON(w, http.StatusOK, newReturnResponse(result))
}

// WindowResponse represents a resolved calculation window
type WindowResponse struct {
	RequestedFrom string `json:"requestedFrom"`
	RequestedTo   string `json:"requestedTo"`
	EffectiveFrom string `json:"effectiveFrom"`
	EffectiveTo   string `json:"effectiveTo"`
	IntervalDays  int    `json:"intervalDays"`
}

// CurvePointResponse represents one point of a cumulative-return curve
type CurvePointResponse struct {
	Date                     string   `json:"date"`
	TotalAssetsCents         int64    `json:"totalAssetsCents"`
	TransferAmountCents      int64    `json:"transferAmountCents"`
	CumulativeNetGrowthCents int64    `json:"cumulativeNetGrowthCents"`
	CumulativeReturnRate     *float64 `json:"cumulativeReturnRate"`
}

// CurveSummaryResponse represents the endpoint figures of a curve
type CurveSummaryResponse struct {
	FirstTotalCents          int64    `json:"firstTotalCents"`
	LastTotalCents           int64    `json:"lastTotalCents"`
	ChangeCents              int64    `json:"changeCents"`
	ChangePct                *float64 `json:"changePct"`
	EndCumulativeGrowthCents int64    `json:"endCumulativeGrowthCents"`
	EndCumulativeReturnRate  *float64 `json:"endCumulativeReturnRate"`
}

// CurveResponse represents a cumulative-return time series
type CurveResponse struct {
	Window  WindowResponse       `json:"window"`
	Points  []CurvePointResponse `json:"points"`
	Summary CurveSummaryResponse `json:"summary"`
}

// ReturnCurve computes the cumulative-return curve for the scope and window
// given in the query string.
//
// Endpoint: GET /api/returns/curve?scope=&account_id=&preset=&from=&to=
func (h *ReturnHandler) ReturnCurve(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r)
	if err != nil {
		respondServiceError(w, "invalid scope", err)
		return
	}
	windowReq, err := parseWindowRequest(r)
	if err != nil {
		respondServiceError(w, "invalid window", err)
		return
	}

	curve, err := h.returnService.GetReturnCurve(scope, windowReq)
	if err != nil {
		respondServiceError(w, "failed to compute return curve", err)
		return
	}

	points := make([]CurvePointResponse, len(curve.Points))
	for i, p := range curve.Points {
		points[i] = CurvePointResponse{
			Date:                     p.Date.Format(analytics.DateFormat),
			TotalAssetsCents:         p.TotalAssetsCents,
			TransferAmountCents:      p.TransferAmountCents,
			CumulativeNetGrowthCents: p.CumulativeNetGrowthCents,
			CumulativeReturnRate:     p.CumulativeReturnRate,
		}
	}

	respondJSON(w, http.StatusOK, CurveResponse{
		Window: newWindowResponse(curve.Window),
		Points: points,
		Summary: CurveSummaryResponse{
			FirstTotalCents:          curve.Summary.FirstTotalCents,
			LastTotalCents:           curve.Summary.LastTotalCents,
			ChangeCents:              curve.Summary.ChangeCents,
			ChangePct:                curve.Summary.ChangePct,
			EndCumulativeGrowthCents: curve.Summary.EndCumulativeGrowthCents,
			EndCumulativeReturnRate:  curve.Summary.EndCumulativeReturnRate,
		},
	})
}

func newReturnResponse(result model.ReturnResult) ReturnResponse {
	flows := make([]CashFlowResponse, len(result.CashFlows))
	for i, f := range result.CashFlows {
		flows[i] = CashFlowResponse{
			Date:        f.Date.Format(analytics.DateFormat),
			AmountCents: f.AmountCents,
			Weight:      f.Weight,
		}
	}

	return ReturnResponse{
		BeginDate:            result.BeginDate.Format(analytics.DateFormat),
		EndDate:              result.EndDate.Format(analytics.DateFormat),
		IntervalDays:         result.IntervalDays,
		BeginAssetsCents:     result.BeginAssetsCents,
		EndAssetsCents:       result.EndAssetsCents,
		NetFlowCents:         result.NetFlowCents,
		ProfitCents:          result.ProfitCents,
		WeightedCapitalCents: result.WeightedCapitalCents,
		ReturnRate:           result.ReturnRate,
		AnnualizedRate:       result.AnnualizedRate,
		Note:                 result.Note,
		CashFlows:            flows,
	}
}

func newWindowResponse(win model.Window) WindowResponse {
	return WindowResponse{
		RequestedFrom: win.RequestedFrom.Format(analytics.DateFormat),
		RequestedTo:   win.RequestedTo.Format(analytics.DateFormat),
		EffectiveFrom: win.EffectiveFrom.Format(analytics.DateFormat),
		EffectiveTo:   win.EffectiveTo.Format(analytics.DateFormat),
		IntervalDays:  win.IntervalDays,
	}
}
