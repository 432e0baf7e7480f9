package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Account table
		CREATE TABLE account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			kind VARCHAR(30) NOT NULL DEFAULT '',
			is_archived BOOLEAN NOT NULL DEFAULT FALSE
		);

		-- Account snapshot table
		CREATE TABLE account_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			total_assets_cents INTEGER NOT NULL,
			transfer_amount_cents INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(account_id) REFERENCES account(id) ON DELETE CASCADE,
			CONSTRAINT unique_account_date UNIQUE (account_id, date)
		);

		CREATE INDEX idx_account_snapshot_date ON account_snapshot(account_id, date);

		-- Asset valuation table
		CREATE TABLE asset_valuation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			account_name VARCHAR(100) NOT NULL,
			asset_class VARCHAR(20) NOT NULL,
			date DATE NOT NULL,
			value_cents INTEGER NOT NULL CHECK (value_cents >= 0),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_account_class_date UNIQUE (account_id, asset_class, date)
		);

		CREATE INDEX idx_asset_valuation_class_date ON asset_valuation(asset_class, date);

		-- Materialized daily wealth history
		CREATE TABLE wealth_history_materialized (
			date DATE NOT NULL PRIMARY KEY,
			investment_cents INTEGER NOT NULL DEFAULT 0,
			cash_cents INTEGER NOT NULL DEFAULT 0,
			real_estate_cents INTEGER NOT NULL DEFAULT 0,
			liability_cents INTEGER NOT NULL DEFAULT 0,
			calculated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
