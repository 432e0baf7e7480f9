package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/repository"
	"github.com/avandyk/wealth-analytics/internal/validation"
)

// CSV headers accepted by the bulk importers. Column order is fixed.
var (
	snapshotHeaders  = []string{"account_id", "date", "total_assets_cents", "transfer_amount_cents"}
	valuationHeaders = []string{"account_id", "account_name", "asset_class", "date", "value_cents"}
)

// ImportService bulk-loads snapshot and valuation rows from CSV. Every row is
// validated and upserted individually; the first bad row aborts the import
// with its line number.
type ImportService struct {
	snapshotRepo  *repository.SnapshotRepository
	valuationRepo *repository.ValuationRepository
}

// NewImportService creates a new ImportService with the provided repository dependencies.
func NewImportService(
	snapshotRepo *repository.SnapshotRepository,
	valuationRepo *repository.ValuationRepository,
) *ImportService {
	return &ImportService{
		snapshotRepo:  snapshotRepo,
		valuationRepo: valuationRepo,
	}
}

// ImportSnapshots reads CSV rows with headers
// account_id,date,total_assets_cents,transfer_amount_cents and upserts each
// as an account snapshot. Returns the number of imported rows.
func (s *ImportService) ImportSnapshots(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	if err := expectHeaders(reader, snapshotHeaders); err != nil {
		return 0, err
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("%w: line %d: %v", apperrors.ErrFailedToImportRows, line, err)
		}

		snapshot, err := parseSnapshotRecord(record)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if err := s.snapshotRepo.UpsertSnapshot(snapshot); err != nil {
			return imported, fmt.Errorf("%w: line %d: %v", apperrors.ErrFailedToImportRows, line, err)
		}
		imported++
	}
	return imported, nil
}

// ImportValuations reads CSV rows with headers
// account_id,account_name,asset_class,date,value_cents and upserts each as an
// asset valuation. Returns the number of imported rows.
func (s *ImportService) ImportValuations(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	if err := expectHeaders(reader, valuationHeaders); err != nil {
		return 0, err
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("%w: line %d: %v", apperrors.ErrFailedToImportRows, line, err)
		}

		valuation, err := parseValuationRecord(record)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if err := s.valuationRepo.UpsertValuation(valuation); err != nil {
			return imported, fmt.Errorf("%w: line %d: %v", apperrors.ErrFailedToImportRows, line, err)
		}
		imported++
	}
	return imported, nil
}

// expectHeaders consumes the first CSV record and checks it matches the
// expected column names, case-insensitively.
func expectHeaders(reader *csv.Reader, expected []string) error {
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%w: expected %s", apperrors.ErrInvalidCSVHeaders, strings.Join(expected, ","))
	}
	if len(header) != len(expected) {
		return fmt.Errorf("%w: expected %s, got %s",
			apperrors.ErrInvalidCSVHeaders, strings.Join(expected, ","), strings.Join(header, ","))
	}
	for i, name := range expected {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return fmt.Errorf("%w: expected %s, got %s",
				apperrors.ErrInvalidCSVHeaders, strings.Join(expected, ","), strings.Join(header, ","))
		}
	}
	return nil
}

func parseSnapshotRecord(record []string) (model.AccountSnapshot, error) {
	date, err := validation.ParseDate(strings.TrimSpace(record[1]))
	if err != nil {
		return model.AccountSnapshot{}, err
	}
	totalCents, err := parseCents(record[2], "total_assets_cents")
	if err != nil {
		return model.AccountSnapshot{}, err
	}
	transferCents, err := parseCents(record[3], "transfer_amount_cents")
	if err != nil {
		return model.AccountSnapshot{}, err
	}

	snapshot := model.AccountSnapshot{
		AccountID:           strings.TrimSpace(record[0]),
		Date:                date,
		TotalAssetsCents:    totalCents,
		TransferAmountCents: transferCents,
	}
	if err := validation.ValidateSnapshot(snapshot); err != nil {
		return model.AccountSnapshot{}, err
	}
	return snapshot, nil
}

func parseValuationRecord(record []string) (model.AssetValuation, error) {
	date, err := validation.ParseDate(strings.TrimSpace(record[3]))
	if err != nil {
		return model.AssetValuation{}, err
	}
	valueCents, err := parseCents(record[4], "value_cents")
	if err != nil {
		return model.AssetValuation{}, err
	}

	valuation := model.AssetValuation{
		AccountID:   strings.TrimSpace(record[0]),
		AccountName: strings.TrimSpace(record[1]),
		AssetClass:  model.AssetClass(strings.TrimSpace(record[2])),
		Date:        date,
		ValueCents:  valueCents,
	}
	if err := validation.ValidateValuation(valuation); err != nil {
		return model.AssetValuation{}, err
	}
	return valuation, nil
}

func parseCents(field, column string) (int64, error) {
	cents, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer cent amount", apperrors.ErrInvalidAmount, column, field)
	}
	return cents, nil
}
