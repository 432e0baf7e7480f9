package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avandyk/wealth-analytics/internal/model"
)

// ValuationRepository provides data access methods for the asset_valuation
// table. Results are always ordered by (account_id, asset_class, date) so
// the analytics layer can group holdings with a single pass.
type ValuationRepository struct {
	db *sql.DB
}

// NewValuationRepository creates a new ValuationRepository with the provided database connection.
func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

// GetValuations retrieves asset valuations, optionally filtered to the given
// classes and date range. A zero from/to leaves that bound open; nil or
// empty classes means all classes.
func (r *ValuationRepository) GetValuations(classes []model.AssetClass, from, to time.Time) ([]model.AssetValuation, error) {
	query := `
		SELECT account_id, account_name, asset_class, date, value_cents
		FROM asset_valuation
		WHERE 1=1
	`
	var args []any
	if len(classes) > 0 {
		query += ` AND asset_class IN (` + placeholders(len(classes)) + `)`
		for _, class := range classes {
			args = append(args, string(class))
		}
	}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.Format("2006-01-02"))
	}
	query += ` ORDER BY account_id ASC, asset_class ASC, date ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_valuation table: %w", err)
	}
	defer rows.Close()

	valuations := []model.AssetValuation{}
	for rows.Next() {
		var dateStr, classStr string
		var v model.AssetValuation

		err := rows.Scan(&v.AccountID, &v.AccountName, &classStr, &dateStr, &v.ValueCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset_valuation table results: %w", err)
		}
		v.AssetClass = model.AssetClass(classStr)
		v.Date, err = ParseTime(dateStr)
		if err != nil || v.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		valuations = append(valuations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_valuation table: %w", err)
	}

	return valuations, nil
}

// GetLatestDate finds the most recent valuation date, optionally per class
// filter. ok is false when no valuations exist.
func (r *ValuationRepository) GetLatestDate(classes []model.AssetClass) (time.Time, bool, error) {
	query := `SELECT MAX(date) FROM asset_valuation`
	var args []any
	if len(classes) > 0 {
		query += ` WHERE asset_class IN (` + placeholders(len(classes)) + `)`
		for _, class := range classes {
			args = append(args, string(class))
		}
	}

	var maxStr sql.NullString
	if err := r.db.QueryRow(query, args...).Scan(&maxStr); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query valuation date bounds: %w", err)
	}
	if !maxStr.Valid {
		return time.Time{}, false, nil
	}

	latest, err := ParseTime(maxStr.String)
	if err != nil {
		return time.Time{}, false, err
	}
	return latest, true, nil
}

// GetEarliestDate finds the oldest valuation date. ok is false when no
// valuations exist.
func (r *ValuationRepository) GetEarliestDate(classes []model.AssetClass) (time.Time, bool, error) {
	query := `SELECT MIN(date) FROM asset_valuation`
	var args []any
	if len(classes) > 0 {
		query += ` WHERE asset_class IN (` + placeholders(len(classes)) + `)`
		for _, class := range classes {
			args = append(args, string(class))
		}
	}

	var minStr sql.NullString
	if err := r.db.QueryRow(query, args...).Scan(&minStr); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query valuation date bounds: %w", err)
	}
	if !minStr.Valid {
		return time.Time{}, false, nil
	}

	earliest, err := ParseTime(minStr.String)
	if err != nil {
		return time.Time{}, false, err
	}
	return earliest, true, nil
}

// UpsertValuation inserts or replaces the valuation for
// (account, asset class, date).
func (r *ValuationRepository) UpsertValuation(v model.AssetValuation) error {
	_, err := r.db.Exec(`
		INSERT INTO asset_valuation (id, account_id, account_name, asset_class, date, value_cents)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, asset_class, date) DO UPDATE SET
			account_name = excluded.account_name,
			value_cents = excluded.value_cents
	`, uuid.NewString(), v.AccountID, v.AccountName, string(v.AssetClass), v.Date.Format("2006-01-02"), v.ValueCents)
	if err != nil {
		return fmt.Errorf("failed to upsert asset valuation: %w", err)
	}
	return nil
}
