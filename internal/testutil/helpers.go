package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/avandyk/wealth-analytics/internal/repository"
	"github.com/avandyk/wealth-analytics/internal/service"
)

// NewTestSystemService constructs a SystemService against the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestAccountService constructs an AccountService against the test database.
func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	return service.NewAccountService(
		repository.NewAccountRepository(db),
		repository.NewSnapshotRepository(db),
	)
}

// NewTestReturnService constructs a ReturnService against the test database.
func NewTestReturnService(t *testing.T, db *sql.DB) *service.ReturnService {
	t.Helper()

	return service.NewReturnService(
		repository.NewAccountRepository(db),
		repository.NewSnapshotRepository(db),
	)
}

// NewTestWealthService constructs a WealthService against the test database.
func NewTestWealthService(t *testing.T, db *sql.DB) *service.WealthService {
	t.Helper()

	return service.NewWealthService(
		repository.NewAccountRepository(db),
		repository.NewSnapshotRepository(db),
		repository.NewValuationRepository(db),
	)
}

// NewTestMaterializedService constructs a MaterializedService against the test database.
func NewTestMaterializedService(t *testing.T, db *sql.DB) *service.MaterializedService {
	t.Helper()

	return service.NewMaterializedService(
		repository.NewMaterializedRepository(db),
		NewTestWealthService(t, db),
	)
}

// NewTestImportService constructs an ImportService against the test database.
func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(
		repository.NewSnapshotRepository(db),
		repository.NewValuationRepository(db),
	)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Broker")
//	// Returns: "Broker ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
