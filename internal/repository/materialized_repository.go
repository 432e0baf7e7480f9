package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avandyk/wealth-analytics/internal/model"
)

// MaterializedRepository provides data access methods for the
// wealth_history_materialized table: pre-calculated daily per-class wealth
// totals regenerated by the scheduled refresh job.
type MaterializedRepository struct {
	db *sql.DB
}

// NewMaterializedRepository creates a new MaterializedRepository with the provided database connection.
func NewMaterializedRepository(db *sql.DB) *MaterializedRepository {
	return &MaterializedRepository{db: db}
}

// GetHistory retrieves materialized wealth rows inside [from, to], ascending
// by date. Gross and net totals are recomputed by the caller so asset-type
// filters can be applied at read time.
func (r *MaterializedRepository) GetHistory(from, to time.Time) ([]model.WealthCurvePoint, error) {
	rows, err := r.db.Query(`
		SELECT date, investment_cents, cash_cents, real_estate_cents, liability_cents
		FROM wealth_history_materialized
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query wealth_history_materialized table: %w", err)
	}
	defer rows.Close()

	points := []model.WealthCurvePoint{}
	for rows.Next() {
		var dateStr string
		var p model.WealthCurvePoint

		err := rows.Scan(&dateStr, &p.InvestmentCents, &p.CashCents, &p.RealEstateCents, &p.LiabilityCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wealth_history_materialized results: %w", err)
		}
		p.Date, err = ParseTime(dateStr)
		if err != nil || p.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wealth_history_materialized table: %w", err)
	}

	return points, nil
}

// ReplaceAll swaps the table contents for the given rows in one transaction,
// so readers never observe a half-rebuilt history.
func (r *MaterializedRepository) ReplaceAll(points []model.WealthCurvePoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin materialized rebuild: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(`DELETE FROM wealth_history_materialized`); err != nil {
		return fmt.Errorf("failed to clear wealth_history_materialized: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO wealth_history_materialized (date, investment_cents, cash_cents, real_estate_cents, liability_cents)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare materialized insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.Date.Format("2006-01-02"), p.InvestmentCents, p.CashCents, p.RealEstateCents, p.LiabilityCents); err != nil {
			return fmt.Errorf("failed to insert materialized row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit materialized rebuild: %w", err)
	}
	return nil
}
