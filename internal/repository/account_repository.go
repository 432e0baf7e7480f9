package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves accounts ordered by name. Archived accounts are
// included only when the filter asks for them.
func (r *AccountRepository) GetAccounts(filter model.AccountFilter) ([]model.Account, error) {
	query := `
		SELECT id, name, kind, is_archived
		FROM account
	`
	if !filter.IncludeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Kind, &a.IsArchived); err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccountOnID retrieves a single account by its ID.
// Returns apperrors.ErrAccountNotFound if no such account exists.
func (r *AccountRepository) GetAccountOnID(accountID string) (model.Account, error) {
	var a model.Account
	err := r.db.QueryRow(`
		SELECT id, name, kind, is_archived
		FROM account
		WHERE id = ?
	`, accountID).Scan(&a.ID, &a.Name, &a.Kind, &a.IsArchived)

	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to scan account table results: %w", err)
	}
	return a, nil
}

// CreateAccount inserts a new account row.
func (r *AccountRepository) CreateAccount(account model.Account) error {
	_, err := r.db.Exec(`
		INSERT INTO account (id, name, kind, is_archived)
		VALUES (?, ?, ?, ?)
	`, account.ID, account.Name, account.Kind, account.IsArchived)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}
