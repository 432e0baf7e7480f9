package service

import (
	"fmt"
	"time"

	"github.com/avandyk/wealth-analytics/internal/analytics"
	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
	"github.com/avandyk/wealth-analytics/internal/repository"
)

// ReturnService computes money-weighted returns and cumulative-return curves
// over account snapshot histories. It resolves the query scope to concrete
// account IDs, clamps the requested window against the available date bounds,
// and hands the loaded histories to the analytics package.
type ReturnService struct {
	accountRepo  *repository.AccountRepository
	snapshotRepo *repository.SnapshotRepository
}

// NewReturnService creates a new ReturnService with the provided repository dependencies.
func NewReturnService(
	accountRepo *repository.AccountRepository,
	snapshotRepo *repository.SnapshotRepository,
) *ReturnService {
	return &ReturnService{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
	}
}

// GetReturn computes the Modified Dietz return for the scope over the
// requested window.
//
// For a single account the begin and end snapshots come from the fallback
// selection chain and the interval runs between their actual dates. For the
// portfolio scope the begin and end totals are forward-filled as-of values at
// the window boundaries, so the interval is the resolved window itself and
// every account's transfers inside it count as flows.
func (s *ReturnService) GetReturn(scope model.AccountScope, req analytics.WindowRequest) (model.ReturnResult, error) {
	ids, err := s.resolveAccountIDs(scope)
	if err != nil {
		return model.ReturnResult{}, err
	}

	win, rowsByAccount, err := s.loadWindowedSnapshots(ids, req)
	if err != nil {
		return model.ReturnResult{}, err
	}

	if scope.IsPortfolio() {
		return s.portfolioReturn(win, rowsByAccount)
	}
	return s.accountReturn(win, rowsByAccount[scope.AccountID])
}

// GetReturnCurve computes the cumulative-return time series for the scope
// over the requested window. Each point is anchored at the window start.
func (s *ReturnService) GetReturnCurve(scope model.AccountScope, req analytics.WindowRequest) (model.Curve, error) {
	ids, err := s.resolveAccountIDs(scope)
	if err != nil {
		return model.Curve{}, err
	}

	win, rowsByAccount, err := s.loadWindowedSnapshots(ids, req)
	if err != nil {
		return model.Curve{}, err
	}

	return analytics.BuildCurve(analytics.CurveInput{
		Scope:              scope,
		Window:             win,
		SnapshotsByAccount: rowsByAccount,
	})
}

// resolveAccountIDs expands the scope into the account IDs the calculation
// covers. The portfolio scope covers every non-archived account.
func (s *ReturnService) resolveAccountIDs(scope model.AccountScope) ([]string, error) {
	if !scope.IsPortfolio() {
		account, err := s.accountRepo.GetAccountOnID(scope.AccountID)
		if err != nil {
			return nil, err
		}
		return []string{account.ID}, nil
	}

	accounts, err := s.accountRepo.GetAccounts(model.AccountFilter{})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no active accounts", apperrors.ErrNoData)
	}

	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	return ids, nil
}

// loadWindowedSnapshots resolves the window against the accounts' date
// bounds and loads their full histories up to the window end. Rows before
// the window start stay in so begin anchors can forward-fill.
func (s *ReturnService) loadWindowedSnapshots(ids []string, req analytics.WindowRequest) (model.Window, map[string][]model.AccountSnapshot, error) {
	earliest, latest, ok, err := s.snapshotRepo.GetDateBounds(ids)
	if err != nil {
		return model.Window{}, nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSnapshots, err)
	}
	if !ok {
		return model.Window{}, nil, fmt.Errorf("%w: no snapshots recorded", apperrors.ErrNoData)
	}

	win, err := analytics.ResolveWindow(req, earliest, latest)
	if err != nil {
		return model.Window{}, nil, err
	}

	rowsByAccount, err := s.snapshotRepo.GetSnapshots(ids, time.Time{}, win.EffectiveTo)
	if err != nil {
		return model.Window{}, nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSnapshots, err)
	}
	return win, rowsByAccount, nil
}

func (s *ReturnService) accountReturn(win model.Window, rows []model.AccountSnapshot) (model.ReturnResult, error) {
	begin, end, err := analytics.SelectSnapshots(rows, win.EffectiveFrom, win.EffectiveTo)
	if err != nil {
		return model.ReturnResult{}, err
	}

	return analytics.ModifiedDietz(analytics.DietzInput{
		BeginDate:        begin.Date,
		EndDate:          end.Date,
		BeginAssetsCents: begin.TotalAssetsCents,
		EndAssetsCents:   end.TotalAssetsCents,
		Flows:            analytics.FlowsBetween(rows, begin.Date, end.Date),
	})
}

func (s *ReturnService) portfolioReturn(win model.Window, rowsByAccount map[string][]model.AccountSnapshot) (model.ReturnResult, error) {
	rowsBySource := make(map[string][]analytics.ValueRow, len(rowsByAccount))
	for id, rows := range rowsByAccount {
		rowsBySource[id] = analytics.SnapshotRows(rows)
	}

	boundaries := []time.Time{win.EffectiveFrom, win.EffectiveTo}
	series := analytics.BuildAsOfSeries(analytics.UnionDates(boundaries), rowsBySource)

	return analytics.ModifiedDietz(analytics.DietzInput{
		BeginDate:        win.EffectiveFrom,
		EndDate:          win.EffectiveTo,
		BeginAssetsCents: series[0].TotalCents,
		EndAssetsCents:   series[len(series)-1].TotalCents,
		Flows:            analytics.MergedFlows(rowsByAccount, win.EffectiveFrom, win.EffectiveTo),
	})
}
