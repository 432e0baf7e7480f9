package analytics

import (
	"sort"
	"time"

	"github.com/avandyk/wealth-analytics/internal/model"
)

// ValueRow is the source-agnostic input of the as-of series builder: one
// dated value plus the external flow recorded on that date. Account snapshots
// and asset valuations both reduce to this shape.
type ValueRow struct {
	Date       time.Time
	ValueCents int64
	FlowCents  int64
}

// SnapshotRows converts an account's snapshot history into value rows.
func SnapshotRows(rows []model.AccountSnapshot) []ValueRow {
	out := make([]ValueRow, len(rows))
	for i, row := range rows {
		out[i] = ValueRow{Date: row.Date, ValueCents: row.TotalAssetsCents, FlowCents: row.TransferAmountCents}
	}
	return out
}

// ValuationRows converts one holding's valuation history into value rows.
func ValuationRows(rows []model.AssetValuation) []ValueRow {
	out := make([]ValueRow, len(rows))
	for i, row := range rows {
		out[i] = ValueRow{Date: row.Date, ValueCents: row.ValueCents}
	}
	return out
}

// Cursor is a forward-only walk over one source's date-sorted rows. Advancing
// it to a candidate date consumes every row dated at or before that date and
// carries the last seen value, so the source contributes its most recent
// known value at each step of a shared date axis.
//
// The cursor is an index into the caller's slice; it allocates nothing and
// never moves backwards, which makes a multi-source series one linear pass
// per source.
type Cursor struct {
	rows []ValueRow
	next int
	// carried state from the rows consumed so far
	valueCents int64
	flowCents  int64 // flows dated exactly on the last advanced-to date
	seen       bool
}

// NewCursor returns a cursor over rows, which must be sorted ascending by date.
func NewCursor(rows []ValueRow) *Cursor {
	return &Cursor{rows: rows}
}

// Advance moves the cursor to date, consuming rows dated at or before it.
// Candidate dates must be fed in ascending order.
func (c *Cursor) Advance(date time.Time) {
	c.flowCents = 0
	for c.next < len(c.rows) && !c.rows[c.next].Date.After(date) {
		c.valueCents = c.rows[c.next].ValueCents
		if c.rows[c.next].Date.Equal(date) {
			c.flowCents += c.rows[c.next].FlowCents
		}
		c.seen = true
		c.next++
	}
}

// ValueCents returns the most recent value at or before the last advanced-to
// date, or zero when no row has been reached yet.
func (c *Cursor) ValueCents() int64 {
	if !c.seen {
		return 0
	}
	return c.valueCents
}

// FlowCents returns the flow recorded exactly on the last advanced-to date.
func (c *Cursor) FlowCents() int64 {
	return c.flowCents
}

// HasValue reports whether the cursor has consumed at least one row.
func (c *Cursor) HasValue() bool {
	return c.seen
}

// SeriesPoint is the summed as-of state of all sources at one candidate date.
type SeriesPoint struct {
	Date            time.Time
	TotalCents      int64
	FlowOnDateCents int64
}

// BuildAsOfSeries forward-fills every source's history onto the shared
// candidate date axis and sums the carried values per date. The total at date
// D is the sum over sources of each source's most recent known value at or
// before D; sources with no row yet contribute zero. FlowOnDateCents sums the
// flows dated exactly on each candidate date.
//
// dates must be sorted ascending; each source's rows must be sorted ascending
// by date.
func BuildAsOfSeries(dates []time.Time, rowsBySource map[string][]ValueRow) []SeriesPoint {
	cursors := make([]*Cursor, 0, len(rowsBySource))
	for _, rows := range rowsBySource {
		cursors = append(cursors, NewCursor(rows))
	}

	points := make([]SeriesPoint, len(dates))
	for i, date := range dates {
		point := SeriesPoint{Date: date}
		for _, cursor := range cursors {
			cursor.Advance(date)
			point.TotalCents += cursor.ValueCents()
			point.FlowOnDateCents += cursor.FlowCents()
		}
		points[i] = point
	}
	return points
}

// UnionDates merges date sets into one ascending, de-duplicated axis.
func UnionDates(dateSets ...[]time.Time) []time.Time {
	set := make(map[time.Time]struct{})
	for _, dates := range dateSets {
		for _, d := range dates {
			set[day(d)] = struct{}{}
		}
	}
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
