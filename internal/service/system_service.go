package service

import (
	"database/sql"

	"github.com/avandyk/wealth-analytics/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system by pinging the database.
func (s *SystemService) CheckHealth() error {
	return s.db.Ping()
}

// CheckVersion returns the running application version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}
