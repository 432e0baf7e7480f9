package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/avandyk/wealth-analytics/internal/apperrors"
	"github.com/avandyk/wealth-analytics/internal/model"
)

// Notes attached to results whose rate is mathematically undefined.
const (
	noteZeroWeightedCapital     = "return undefined: weighted capital is zero"
	noteNegativeWeightedCapital = "return undefined: weighted capital is negative"
)

// DietzInput carries the endpoint valuations and interim cash flows of one
// Modified Dietz calculation. Flows must be dated strictly after BeginDate
// and at or before EndDate, ordered ascending.
//
// AllowZeroInterval permits BeginDate == EndDate; curve generation needs this
// for the point at the window start, where the return is zero by definition.
// Direct return queries leave it false and get ErrNoData instead.
type DietzInput struct {
	BeginDate         time.Time
	EndDate           time.Time
	BeginAssetsCents  int64
	EndAssetsCents    int64
	Flows             []model.CashFlowEvent
	AllowZeroInterval bool
}

// ModifiedDietz computes the money-weighted return between two endpoint
// valuations, weighting each interim cash flow by the fraction of the period
// remaining after it occurs:
//
//	profit = end - begin - netFlow
//	weight = days(end - flow) / days(end - begin)
//	rate   = profit / (begin + sum(flow * weight))
//
// The rate is nil, with an explanatory note, when the weighted capital is not
// positive; that state is data, never an error. The annualized rate is nil
// unless the interval is positive and 1+rate is positive. The result echoes
// every flow with its computed weight for auditability.
func ModifiedDietz(in DietzInput) (model.ReturnResult, error) {
	intervalDays := daysBetween(in.BeginDate, in.EndDate)
	if intervalDays < 0 {
		return model.ReturnResult{}, fmt.Errorf("%w: begin %s after end %s",
			apperrors.ErrInvalidDateRange, in.BeginDate.Format(DateFormat), in.EndDate.Format(DateFormat))
	}
	if intervalDays == 0 && !in.AllowZeroInterval {
		return model.ReturnResult{}, fmt.Errorf("%w: zero-length interval at %s",
			apperrors.ErrNoData, in.BeginDate.Format(DateFormat))
	}

	result := model.ReturnResult{
		BeginDate:        in.BeginDate,
		EndDate:          in.EndDate,
		IntervalDays:     intervalDays,
		BeginAssetsCents: in.BeginAssetsCents,
		EndAssetsCents:   in.EndAssetsCents,
		CashFlows:        make([]model.CashFlowEvent, 0, len(in.Flows)),
	}

	weightedFlows := 0.0
	for _, flow := range in.Flows {
		weight := 0.0
		if intervalDays > 0 {
			weight = float64(daysBetween(flow.Date, in.EndDate)) / float64(intervalDays)
		}
		weightedFlows += float64(flow.AmountCents) * weight
		result.NetFlowCents += flow.AmountCents
		result.CashFlows = append(result.CashFlows, model.CashFlowEvent{
			Date:        flow.Date,
			AmountCents: flow.AmountCents,
			Weight:      weight,
		})
	}

	result.ProfitCents = in.EndAssetsCents - in.BeginAssetsCents - result.NetFlowCents
	result.WeightedCapitalCents = float64(in.BeginAssetsCents) + weightedFlows

	if result.WeightedCapitalCents > 0 {
		rate := float64(result.ProfitCents) / result.WeightedCapitalCents
		result.ReturnRate = &rate

		if intervalDays > 0 && 1+rate > 0 {
			annualized := math.Pow(1+rate, float64(annualizationDays)/float64(intervalDays)) - 1
			result.AnnualizedRate = &annualized
		}
	} else if result.WeightedCapitalCents == 0 {
		result.Note = noteZeroWeightedCapital
	} else {
		result.Note = noteNegativeWeightedCapital
	}

	return result, nil
}
