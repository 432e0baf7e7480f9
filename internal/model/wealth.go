package model

import "time"

// WealthAssetClassInvestment labels investment-account rows in wealth views,
// alongside the stored asset classes of AssetValuation.
const WealthAssetClassInvestment = "investment"

// WealthFilter selects which asset types participate in a wealth aggregation.
type WealthFilter struct {
	IncludeInvestment bool
	IncludeCash       bool
	IncludeRealEstate bool
	IncludeLiability  bool
}

// Any reports whether at least one asset type is selected.
func (f WealthFilter) Any() bool {
	return f.IncludeInvestment || f.IncludeCash || f.IncludeRealEstate || f.IncludeLiability
}

// AllWealthTypes is the default filter with every asset type enabled.
func AllWealthTypes() WealthFilter {
	return WealthFilter{
		IncludeInvestment: true,
		IncludeCash:       true,
		IncludeRealEstate: true,
		IncludeLiability:  true,
	}
}

// WealthRow is one account/asset-class line of a wealth snapshot: the latest
// known value at or before the as-of date, with its age in days.
type WealthRow struct {
	AccountID     string    `json:"accountId"`
	AccountName   string    `json:"accountName"`
	AssetClass    string    `json:"assetClass"` // investment, cash, real_estate, liability
	Date          time.Time `json:"date"`
	ValueCents    int64     `json:"valueCents"`
	StalenessDays int       `json:"stalenessDays"`
}

// WealthSnapshot is the aggregate wealth position as of one date.
//
// ReconciliationDeltaCents re-derives the net total from the emitted rows and
// subtracts the aggregator's own figure; it must be zero and is reported as a
// diagnostic rather than raised as an error.
type WealthSnapshot struct {
	AsOf                     time.Time   `json:"asOf"`
	Rows                     []WealthRow `json:"rows"`
	InvestmentTotalCents     int64       `json:"investmentTotalCents"`
	CashTotalCents           int64       `json:"cashTotalCents"`
	RealEstateTotalCents     int64       `json:"realEstateTotalCents"`
	LiabilityTotalCents      int64       `json:"liabilityTotalCents"`
	GrossAssetsTotalCents    int64       `json:"grossAssetsTotalCents"`
	NetAssetTotalCents       int64       `json:"netAssetTotalCents"`
	ReconciliationDeltaCents int64       `json:"reconciliationDeltaCents"`
}

// WealthCurvePoint is the per-class wealth position on one date of a curve.
type WealthCurvePoint struct {
	Date             time.Time `json:"date"`
	InvestmentCents  int64     `json:"investmentCents"`
	CashCents        int64     `json:"cashCents"`
	RealEstateCents  int64     `json:"realEstateCents"`
	LiabilityCents   int64     `json:"liabilityCents"`
	GrossAssetsCents int64     `json:"grossAssetsCents"`
	NetTotalCents    int64     `json:"netTotalCents"`
}

// WealthGrowth is the change of one asset type between the first and last
// point of a wealth curve.
type WealthGrowth struct {
	AssetClass  string `json:"assetClass"` // investment, cash, real_estate, liability, or net
	StartCents  int64  `json:"startCents"`
	EndCents    int64  `json:"endCents"`
	GrowthCents int64  `json:"growthCents"`
}

// WealthCurve is a net-wealth time series over a resolved window, with
// growth-since-start deltas per asset class and for the composite net total.
type WealthCurve struct {
	Window Window             `json:"window"`
	Points []WealthCurvePoint `json:"points"`
	Growth []WealthGrowth     `json:"growth"`
}
