package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/repository"
	"github.com/avandyk/wealth-analytics/internal/validation"
)

// AccountService handles account and snapshot CRUD operations.
type AccountService struct {
	accountRepo  *repository.AccountRepository
	snapshotRepo *repository.SnapshotRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(
	accountRepo *repository.AccountRepository,
	snapshotRepo *repository.SnapshotRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
	}
}

// GetAccounts lists tracked accounts, optionally including archived ones.
func (s *AccountService) GetAccounts(includeArchived bool) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(model.AccountFilter{IncludeArchived: includeArchived})
}

// CreateAccount registers a new account with a generated ID.
func (s *AccountService) CreateAccount(name, kind string) (model.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Account{}, fmt.Errorf("%w: account name", apperrors.ErrEmptyID)
	}

	account := model.Account{
		ID:   uuid.NewString(),
		Name: name,
		Kind: strings.TrimSpace(kind),
	}
	if err := s.accountRepo.CreateAccount(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// GetAccountSnapshots returns the full snapshot history of one account,
// ascending by date. The account must exist.
func (s *AccountService) GetAccountSnapshots(accountID string) ([]model.AccountSnapshot, error) {
	account, err := s.accountRepo.GetAccountOnID(accountID)
	if err != nil {
		return nil, err
	}

	rowsByAccount, err := s.snapshotRepo.GetSnapshots([]string{account.ID}, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSnapshots, err)
	}

	rows := rowsByAccount[account.ID]
	if rows == nil {
		rows = []model.AccountSnapshot{}
	}
	return rows, nil
}

// UpsertSnapshot validates and stores one snapshot row for the account,
// replacing any existing row on the same date.
func (s *AccountService) UpsertSnapshot(snapshot model.AccountSnapshot) (model.AccountSnapshot, error) {
	if err := validation.ValidateSnapshot(snapshot); err != nil {
		return model.AccountSnapshot{}, err
	}
	if _, err := s.accountRepo.GetAccountOnID(snapshot.AccountID); err != nil {
		return model.AccountSnapshot{}, err
	}
	if err := s.snapshotRepo.UpsertSnapshot(snapshot); err != nil {
		return model.AccountSnapshot{}, err
	}
	return snapshot, nil
}
