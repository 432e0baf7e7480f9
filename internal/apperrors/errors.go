package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoData indicates that a window or account has no usable snapshot to
	// anchor a calculation. It covers both an empty dataset and a window whose
	// fallback chain found no begin/end snapshot.
	ErrNoData = errors.New("no usable data for calculation")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidPreset indicates that the requested window preset is not one of
	// ytd, 1y, 3y, since_inception, custom.
	ErrInvalidPreset = errors.New("invalid window preset")

	// ErrInvalidScope indicates that a return query targets neither the
	// portfolio nor a single account.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrMissingFromDate indicates that a custom window was requested without a
	// parseable from date.
	ErrMissingFromDate = errors.New("custom window requires a from date")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date, or outside the available data).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrNoAssetTypeSelected indicates that a wealth query disabled all four
	// asset-type filters.
	ErrNoAssetTypeSelected = errors.New("no asset type selected")

	// ErrInvalidAssetClass indicates an asset class outside cash, real_estate, liability.
	ErrInvalidAssetClass = errors.New("invalid asset class")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidAmount indicates that an amount field is not an integer cent value.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidCSVHeaders indicates that an import payload does not carry the
	// expected CSV header row.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveAccounts   = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveSnapshots  = errors.New("failed to retrieve account snapshots")
	ErrFailedToRetrieveValuations = errors.New("failed to retrieve asset valuations")
	ErrFailedToComputeReturn      = errors.New("failed to compute return")
	ErrFailedToComputeWealth      = errors.New("failed to compute wealth snapshot")
	ErrFailedToRefreshHistory     = errors.New("failed to refresh materialized wealth history")
	ErrFailedToImportRows         = errors.New("failed to import rows")
)

// IsValidation reports whether err belongs to the validation taxonomy:
// malformed or missing input that makes the whole request unprocessable.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidPreset,
		ErrInvalidScope,
		ErrMissingFromDate,
		ErrInvalidDateRange,
		ErrNoAssetTypeSelected,
		ErrInvalidAssetClass,
		ErrInvalidUUID,
		ErrEmptyID,
		ErrNegativeAmount,
		ErrInvalidAmount,
		ErrInvalidCSVHeaders,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
