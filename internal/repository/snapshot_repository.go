package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avandyk/wealth-analytics/internal/model"
)

// SnapshotRepository provides data access methods for the account_snapshot
// table. Results are always ordered by (account_id, date) so the analytics
// layer can rely on sorted per-account histories.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetSnapshots retrieves the snapshots of the given accounts, grouped per
// account and sorted ascending by date. A zero from/to leaves that bound
// open; the analytics layer typically loads full history up to the window
// end so begin anchors can fall back to earlier rows.
//
// Returns a map of accountID -> []AccountSnapshot. If accountIDs is empty,
// returns an empty map.
func (r *SnapshotRepository) GetSnapshots(accountIDs []string, from, to time.Time) (map[string][]model.AccountSnapshot, error) {
	if len(accountIDs) == 0 {
		return make(map[string][]model.AccountSnapshot), nil
	}

	query := `
		SELECT account_id, date, total_assets_cents, transfer_amount_cents
		FROM account_snapshot
		WHERE account_id IN (` + placeholders(len(accountIDs)) + `)
	`
	args := make([]any, 0, len(accountIDs)+2)
	for _, id := range accountIDs {
		args = append(args, id)
	}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.Format("2006-01-02"))
	}
	query += ` ORDER BY account_id ASC, date ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshotsByAccount := make(map[string][]model.AccountSnapshot)
	for rows.Next() {
		var dateStr string
		var s model.AccountSnapshot

		err := rows.Scan(&s.AccountID, &dateStr, &s.TotalAssetsCents, &s.TransferAmountCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account_snapshot table results: %w", err)
		}
		s.Date, err = ParseTime(dateStr)
		if err != nil || s.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		snapshotsByAccount[s.AccountID] = append(snapshotsByAccount[s.AccountID], s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account_snapshot table: %w", err)
	}

	return snapshotsByAccount, nil
}

// GetDateBounds finds the earliest and latest snapshot dates across the
// given accounts. ok is false when the accounts have no snapshots at all.
func (r *SnapshotRepository) GetDateBounds(accountIDs []string) (earliest, latest time.Time, ok bool, err error) {
	if len(accountIDs) == 0 {
		return time.Time{}, time.Time{}, false, nil
	}

	query := `
		SELECT MIN(date), MAX(date)
		FROM account_snapshot
		WHERE account_id IN (` + placeholders(len(accountIDs)) + `)
	`
	args := make([]any, len(accountIDs))
	for i, id := range accountIDs {
		args[i] = id
	}

	var minStr, maxStr sql.NullString
	if err := r.db.QueryRow(query, args...).Scan(&minStr, &maxStr); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query snapshot date bounds: %w", err)
	}
	if !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	earliest, err = ParseTime(minStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	latest, err = ParseTime(maxStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return earliest, latest, true, nil
}

// UpsertSnapshot inserts or replaces the snapshot for (account, date).
// The unique constraint on (account_id, date) keeps one row per day.
func (r *SnapshotRepository) UpsertSnapshot(s model.AccountSnapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO account_snapshot (id, account_id, date, total_assets_cents, transfer_amount_cents)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(account_id, date) DO UPDATE SET
			total_assets_cents = excluded.total_assets_cents,
			transfer_amount_cents = excluded.transfer_amount_cents
	`, uuid.NewString(), s.AccountID, s.Date.Format("2006-01-02"), s.TotalAssetsCents, s.TransferAmountCents)
	if err != nil {
		return fmt.Errorf("failed to upsert account snapshot: %w", err)
	}
	return nil
}
