package model

import "time"

// ReturnResult is the outcome of a Modified Dietz calculation over one window.
//
// ReturnRate and AnnualizedRate are nil when mathematically undefined: the
// rate when weighted capital is not positive, the annualized rate additionally
// when the interval is zero days or 1+rate is not positive. An undefined rate
// is data, not an error; Note carries the reason so callers can surface it.
type ReturnResult struct {
	BeginDate            time.Time       `json:"beginDate"`
	EndDate              time.Time       `json:"endDate"`
	IntervalDays         int             `json:"intervalDays"`
	BeginAssetsCents     int64           `json:"beginAssetsCents"`
	EndAssetsCents       int64           `json:"endAssetsCents"`
	NetFlowCents         int64           `json:"netFlowCents"`
	ProfitCents          int64           `json:"profitCents"`
	WeightedCapitalCents float64         `json:"weightedCapitalCents"`
	ReturnRate           *float64        `json:"returnRate"`
	AnnualizedRate       *float64        `json:"annualizedRate"`
	Note                 string          `json:"note,omitempty"`
	CashFlows            []CashFlowEvent `json:"cashFlows"`
}

// CurvePoint is one point of a cumulative-return curve. All values are
// anchored to the curve's window start: CumulativeNetGrowthCents is the
// profit since the first point and CumulativeReturnRate is the Modified Dietz
// return from the window start to Date, never a period-over-period figure.
type CurvePoint struct {
	Date                     time.Time `json:"date"`
	TotalAssetsCents         int64     `json:"totalAssetsCents"`
	TransferAmountCents      int64     `json:"transferAmountCents"` // net transfers dated exactly on Date
	CumulativeNetGrowthCents int64     `json:"cumulativeNetGrowthCents"`
	CumulativeReturnRate     *float64  `json:"cumulativeReturnRate"`
}

// CurveSummary condenses a cumulative-return curve into endpoint figures.
type CurveSummary struct {
	FirstTotalCents          int64    `json:"firstTotalCents"`
	LastTotalCents           int64    `json:"lastTotalCents"`
	ChangeCents              int64    `json:"changeCents"`
	ChangePct                *float64 `json:"changePct"`
	EndCumulativeGrowthCents int64    `json:"endCumulativeGrowthCents"`
	EndCumulativeReturnRate  *float64 `json:"endCumulativeReturnRate"`
}

// Curve is a cumulative-return time series over a resolved window.
type Curve struct {
	Window  Window       `json:"window"`
	Points  []CurvePoint `json:"points"`
	Summary CurveSummary `json:"summary"`
}
