package request

// CreateAccountRequest represents the request body for registering an account
type CreateAccountRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// UpsertSnapshotRequest represents the request body for recording one
// account snapshot. Date is YYYY-MM-DD.
type UpsertSnapshotRequest struct {
	Date                string `json:"date"`
	TotalAssetsCents    int64  `json:"totalAssetsCents"`
	TransferAmountCents int64  `json:"transferAmountCents"`
}
