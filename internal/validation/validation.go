package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if id == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date string into a UTC time.
func ParseDate(str string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", apperrors.ErrInvalidDateRange, str)
	}
	return parsed.UTC(), nil
}

// ValidateAssetClass checks that the string names a stored asset class.
func ValidateAssetClass(class string) error {
	if !model.ValidAssetClass(class) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidAssetClass, class)
	}
	return nil
}

// ValidateSnapshot checks the fields of an account snapshot row before
// persisting it. Negative total assets are allowed (margin/short positions);
// the account ID and date are required.
func ValidateSnapshot(s model.AccountSnapshot) error {
	if err := ValidateUUID(s.AccountID); err != nil {
		return err
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: snapshot date", apperrors.ErrInvalidDateRange)
	}
	return nil
}

// ValidateValuation checks the fields of an asset valuation row before
// persisting it. Values are stored non-negative; liabilities are positive
// amounts subtracted during aggregation.
func ValidateValuation(v model.AssetValuation) error {
	if err := ValidateUUID(v.AccountID); err != nil {
		return err
	}
	if err := ValidateAssetClass(string(v.AssetClass)); err != nil {
		return err
	}
	if v.Date.IsZero() {
		return fmt.Errorf("%w: valuation date", apperrors.ErrInvalidDateRange)
	}
	if v.ValueCents < 0 {
		return fmt.Errorf("%w: value_cents", apperrors.ErrNegativeAmount)
	}
	return nil
}
