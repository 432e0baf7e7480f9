package model

import "time"

// AssetClass is the category of a non-investment asset valuation.
type AssetClass string

const (
	AssetClassCash       AssetClass = "cash"
	AssetClassRealEstate AssetClass = "real_estate"
	AssetClassLiability  AssetClass = "liability"
)

// ValidAssetClass reports whether s names one of the supported asset classes.
func ValidAssetClass(s string) bool {
	switch AssetClass(s) {
	case AssetClassCash, AssetClassRealEstate, AssetClassLiability:
		return true
	}
	return false
}

// AssetValuation represents one dated value of a cash, real-estate or
// liability holding. ValueCents is always non-negative; liabilities are
// stored as positive amounts and subtracted during aggregation.
// At most one valuation exists per (account, asset class, date).
type AssetValuation struct {
	AccountID   string     `json:"accountId"`
	AccountName string     `json:"accountName"`
	AssetClass  AssetClass `json:"assetClass"`
	Date        time.Time  `json:"date"`
	ValueCents  int64      `json:"valueCents"`
}
