package service

import (
	"fmt"
	"time"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/repository"
)

// WealthService aggregates investment snapshots and off-market asset
// valuations into whole-wealth views: one-date snapshots and net-wealth
// curves, both filtered per asset type.
type WealthService struct {
	accountRepo   *repository.AccountRepository
	snapshotRepo  *repository.SnapshotRepository
	valuationRepo *repository.ValuationRepository
}

// NewWealthService creates a new WealthService with the provided repository dependencies.
func NewWealthService(
	accountRepo *repository.AccountRepository,
	snapshotRepo *repository.SnapshotRepository,
	valuationRepo *repository.ValuationRepository,
) *WealthService {
	return &WealthService{
		accountRepo:   accountRepo,
		snapshotRepo:  snapshotRepo,
		valuationRepo: valuationRepo,
	}
}

// GetWealthSnapshot aggregates the latest-known value of every included
// account and asset class at or before asOf.
//
// A zero asOf means "latest available". A requested date past the newest
// recorded data is clamped back to it, so the emitted snapshot always
// reflects a date with data; the clamped date is reported in AsOf.
func (s *WealthService) GetWealthSnapshot(asOf time.Time, filter model.WealthFilter) (model.WealthSnapshot, error) {
	if !filter.Any() {
		return model.WealthSnapshot{}, fmt.Errorf("%w: enable at least one of investment, cash, real_estate, liability",
			apperrors.ErrNoAssetTypeSelected)
	}

	ids, names, err := s.activeAccounts()
	if err != nil {
		return model.WealthSnapshot{}, err
	}

	latest, ok, err := s.latestOverall(ids)
	if err != nil {
		return model.WealthSnapshot{}, err
	}
	if !ok {
		return model.WealthSnapshot{}, fmt.Errorf("%w: no snapshots or valuations recorded", apperrors.ErrNoData)
	}

	effective := latest
	if !asOf.IsZero() && asOf.Before(latest) {
		effective = asOf
	}

	snapshots, valuations, err := s.loadThrough(ids, effective)
	if err != nil {
		return model.WealthSnapshot{}, err
	}

	return analytics.AggregateWealth(analytics.WealthInput{
		AsOf:               effective,
		Filter:             filter,
		SnapshotsByAccount: snapshots,
		AccountNames:       names,
		Valuations:         valuations,
	})
}

// GetWealthCurve computes the net-wealth time series for the requested
// window, with the filter applied to every point and to the growth figures.
func (s *WealthService) GetWealthCurve(req analytics.WindowRequest, filter model.WealthFilter) (model.WealthCurve, error) {
	if !filter.Any() {
		return model.WealthCurve{}, fmt.Errorf("%w: enable at least one of investment, cash, real_estate, liability",
			apperrors.ErrNoAssetTypeSelected)
	}

	ids, names, err := s.activeAccounts()
	if err != nil {
		return model.WealthCurve{}, err
	}

	earliest, latest, ok, err := s.overallBounds(ids)
	if err != nil {
		return model.WealthCurve{}, err
	}
	if !ok {
		return model.WealthCurve{}, fmt.Errorf("%w: no snapshots or valuations recorded", apperrors.ErrNoData)
	}

	win, err := analytics.ResolveWindow(req, earliest, latest)
	if err != nil {
		return model.WealthCurve{}, err
	}

	snapshots, valuations, err := s.loadThrough(ids, win.EffectiveTo)
	if err != nil {
		return model.WealthCurve{}, err
	}

	return analytics.BuildWealthCurve(win, analytics.WealthInput{
		Filter:             filter,
		SnapshotsByAccount: snapshots,
		AccountNames:       names,
		Valuations:         valuations,
	})
}

// activeAccounts lists the non-archived accounts as IDs plus a display-name
// lookup for wealth rows.
func (s *WealthService) activeAccounts() ([]string, map[string]string, error) {
	accounts, err := s.accountRepo.GetAccounts(model.AccountFilter{})
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(accounts))
	names := make(map[string]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
		names[a.ID] = a.Name
	}
	return ids, names, nil
}

// latestOverall finds the newest recorded date across investment snapshots
// and asset valuations.
func (s *WealthService) latestOverall(ids []string) (time.Time, bool, error) {
	_, snapLatest, snapOK, err := s.snapshotRepo.GetDateBounds(ids)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSnapshots, err)
	}

	valLatest, valOK, err := s.valuationRepo.GetLatestDate(nil)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveValuations, err)
	}

	switch {
	case snapOK && valOK:
		if valLatest.After(snapLatest) {
			return valLatest, true, nil
		}
		return snapLatest, true, nil
	case snapOK:
		return snapLatest, true, nil
	case valOK:
		return valLatest, true, nil
	default:
		return time.Time{}, false, nil
	}
}

// overallBounds finds the earliest and latest recorded dates across both
// data sources.
func (s *WealthService) overallBounds(ids []string) (earliest, latest time.Time, ok bool, err error) {
	snapEarliest, snapLatest, snapOK, err := s.snapshotRepo.GetDateBounds(ids)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSnapshots, err)
	}

	valEarliest, valOK, err := s.valuationRepo.GetEarliestDate(nil)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveValuations, err)
	}
	valLatest, _, err := s.valuationRepo.GetLatestDate(nil)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveValuations, err)
	}

	switch {
	case snapOK && valOK:
		earliest, latest = snapEarliest, snapLatest
		if valEarliest.Before(earliest) {
			earliest = valEarliest
		}
		if valLatest.After(latest) {
			latest = valLatest
		}
		return earliest, latest, true, nil
	case snapOK:
		return snapEarliest, snapLatest, true, nil
	case valOK:
		return valEarliest, valLatest, true, nil
	default:
		return time.Time{}, time.Time{}, false, nil
	}
}

// loadThrough loads every snapshot and valuation up to and including the
// given date. History before a window start stays in so as-of values can
// forward-fill.
func (s *WealthService) loadThrough(ids []string, through time.Time) (map[string][]model.AccountSnapshot, []model.AssetValuation, error) {
	snapshots, err := s.snapshotRepo.GetSnapshots(ids, time.Time{}, through)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSnapshots, err)
	}

	valuations, err := s.valuationRepo.GetValuations(nil, time.Time{}, through)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveValuations, err)
	}
	return snapshots, valuations, nil
}
