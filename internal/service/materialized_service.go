package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/repository"
)

// MaterializedService serves wealth curves from the pre-calculated
// wealth_history_materialized table, falling back to on-demand calculation
// when the table is empty or stale, and rebuilds the table on demand or on
// schedule.
//
// The table stores the full since-inception, unfiltered per-class history;
// asset-type filters are applied at read time so one refresh serves every
// filter combination.
type MaterializedService struct {
	materializedRepo *repository.MaterializedRepository
	wealthService    *WealthService
}

// NewMaterializedService creates a new MaterializedService with the provided dependencies.
func NewMaterializedService(
	materializedRepo *repository.MaterializedRepository,
	wealthService *WealthService,
) *MaterializedService {
	return &MaterializedService{
		materializedRepo: materializedRepo,
		wealthService:    wealthService,
	}
}

// GetWealthCurveWithFallback computes the net-wealth curve for the requested
// window, preferring the materialized table.
//
// The materialized rows are used only when they exist and their last date
// covers the resolved window end; anything less (empty table, stale tail,
// query failure) falls back to the on-demand calculation so callers always
// get a complete answer.
func (s *MaterializedService) GetWealthCurveWithFallback(req analytics.WindowRequest, filter model.WealthFilter) (model.WealthCurve, error) {
	if !filter.Any() {
		return model.WealthCurve{}, fmt.Errorf("%w: enable at least one of investment, cash, real_estate, liability",
			apperrors.ErrNoAssetTypeSelected)
	}

	ids, _, err := s.wealthService.activeAccounts()
	if err != nil {
		return model.WealthCurve{}, err
	}

	earliest, latest, ok, err := s.wealthService.overallBounds(ids)
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

	points, histErr := s.materializedRepo.GetHistory(win.EffectiveFrom, win.EffectiveTo)
	if histErr == nil && len(points) > 0 && !points[len(points)-1].Date.Before(win.EffectiveTo) {
		return analytics.ApplyWealthFilter(win, filter, points)
	}

	// Materialized table is empty, stale, or unreadable.
	return s.wealthService.GetWealthCurve(req, filter)
}

// Refresh rebuilds the materialized table from scratch: the full
// since-inception wealth curve with every asset type included, replacing all
// existing rows in one transaction. With no data recorded at all it empties
// the table.
func (s *MaterializedService) Refresh(ctx context.Context) error {
	ids, names, err := s.wealthService.activeAccounts()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
	}

	earliest, latest, ok, err := s.wealthService.overallBounds(ids)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
	}
	if !ok {
		if err := s.materializedRepo.ReplaceAll(nil); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
		}
		return nil
	}

	win, err := analytics.ResolveWindow(analytics.WindowRequest{Preset: analytics.PresetSinceInception}, earliest, latest)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
	}

	var (
		snapshots  map[string][]model.AccountSnapshot
		valuations []model.AssetValuation
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var loadErr error
		snapshots, loadErr = s.wealthService.snapshotRepo.GetSnapshots(ids, time.Time{}, win.EffectiveTo)
		return loadErr
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var loadErr error
		valuations, loadErr = s.wealthService.valuationRepo.GetValuations(nil, time.Time{}, win.EffectiveTo)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
	}

	curve, err := analytics.BuildWealthCurve(win, analytics.WealthInput{
		Filter:             model.AllWealthTypes(),
		SnapshotsByAccount: snapshots,
		AccountNames:       names,
		Valuations:         valuations,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
	}

	if err := s.materializedRepo.ReplaceAll(curve.Points); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshHistory, err)
	}
	return nil
}
