package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/avandyk/wealth-analytics/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Broker EUR").
//	    WithKind("brokerage").
//	    Archived().
//	    Build(t, db)
type AccountBuilder struct {
	ID         string
	Name       string
	Kind       string
	IsArchived bool
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:   MakeID(),
		Name: MakeAccountName("Test Account"),
		Kind: "brokerage",
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithKind sets a custom kind label.
func (b *AccountBuilder) WithKind(kind string) *AccountBuilder {
	b.Kind = kind
	return b
}

// Archived marks the account as archived.
func (b *AccountBuilder) Archived() *AccountBuilder {
	b.IsArchived = true
	return b
}

// Build creates the account in the database.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, name, kind, is_archived)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Kind, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:         b.ID,
		Name:       b.Name,
		Kind:       b.Kind,
		IsArchived: b.IsArchived,
	}
}

// SnapshotBuilder provides a fluent interface for creating account snapshots.
type SnapshotBuilder struct {
	ID                  string
	AccountID           string
	Date                time.Time
	TotalAssetsCents    int64
	TransferAmountCents int64
}

// NewSnapshot creates a SnapshotBuilder with defaults.
func NewSnapshot(accountID string) *SnapshotBuilder {
	return &SnapshotBuilder{
		ID:               MakeID(),
		AccountID:        accountID,
		Date:             time.Now().UTC().Truncate(24 * time.Hour),
		TotalAssetsCents: 1_000_000,
	}
}

// WithDate sets the snapshot date.
func (b *SnapshotBuilder) WithDate(date time.Time) *SnapshotBuilder {
	b.Date = date
	return b
}

// WithTotalAssets sets the total assets in cents.
func (b *SnapshotBuilder) WithTotalAssets(cents int64) *SnapshotBuilder {
	b.TotalAssetsCents = cents
	return b
}

// WithTransfer sets the net transfer amount in cents.
func (b *SnapshotBuilder) WithTransfer(cents int64) *SnapshotBuilder {
	b.TransferAmountCents = cents
	return b
}

// Build creates the snapshot in the database.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.AccountSnapshot {
	t.Helper()

	query := `
		INSERT INTO account_snapshot (id, account_id, date, total_assets_cents, transfer_amount_cents)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AccountID, b.Date.Format("2006-01-02"), b.TotalAssetsCents, b.TransferAmountCents)
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}

	return model.AccountSnapshot{
		AccountID:           b.AccountID,
		Date:                b.Date,
		TotalAssetsCents:    b.TotalAssetsCents,
		TransferAmountCents: b.TransferAmountCents,
	}
}

// ValuationBuilder provides a fluent interface for creating asset valuations.
type ValuationBuilder struct {
	ID          string
	AccountID   string
	AccountName string
	AssetClass  model.AssetClass
	Date        time.Time
	ValueCents  int64
}

// NewValuation creates a ValuationBuilder with defaults.
func NewValuation(accountID string, class model.AssetClass) *ValuationBuilder {
	return &ValuationBuilder{
		ID:          MakeID(),
		AccountID:   accountID,
		AccountName: MakeAccountName("Test Holding"),
		AssetClass:  class,
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		ValueCents:  500_000,
	}
}

// WithAccountName sets the display name stored on the valuation row.
func (b *ValuationBuilder) WithAccountName(name string) *ValuationBuilder {
	b.AccountName = name
	return b
}

// WithDate sets the valuation date.
func (b *ValuationBuilder) WithDate(date time.Time) *ValuationBuilder {
	b.Date = date
	return b
}

// WithValue sets the value in cents.
func (b *ValuationBuilder) WithValue(cents int64) *ValuationBuilder {
	b.ValueCents = cents
	return b
}

// Build creates the valuation in the database.
func (b *ValuationBuilder) Build(t *testing.T, db *sql.DB) model.AssetValuation {
	t.Helper()

	query := `
		INSERT INTO asset_valuation (id, account_id, account_name, asset_class, date, value_cents)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AccountID, b.AccountName, string(b.AssetClass), b.Date.Format("2006-01-02"), b.ValueCents)
	if err != nil {
		t.Fatalf("Failed to create test valuation: %v", err)
	}

	return model.AssetValuation{
		AccountID:   b.AccountID,
		AccountName: b.AccountName,
		AssetClass:  b.AssetClass,
		Date:        b.Date,
		ValueCents:  b.ValueCents,
	}
}
