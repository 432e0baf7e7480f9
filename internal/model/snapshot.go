package model

import "time"

// AccountSnapshot represents one dated valuation row for an account.
// TotalAssetsCents is the account's full value on Date; TransferAmountCents is
// the net external cash moved into (positive) or out of (negative) the account
// since the previous snapshot. At most one snapshot exists per (account, date).
type AccountSnapshot struct {
	AccountID           string    `json:"accountId"`
	Date                time.Time `json:"date"`
	TotalAssetsCents    int64     `json:"totalAssetsCents"`
	TransferAmountCents int64     `json:"transferAmountCents"`
}

// CashFlowEvent is an external cash movement derived from a snapshot with a
// non-zero transfer amount. Weight is the Modified Dietz time weight assigned
// to the flow, echoed back on results so callers can audit the calculation.
type CashFlowEvent struct {
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amountCents"`
	Weight      float64   `json:"weight"`
}
