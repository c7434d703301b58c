package report

import (
	"sort"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

const dayFormat = "2006-01-02"

type (
	// DatedEntry is the temporal aggregator's input: a timestamped
	// magnitude with its series category. Direction is empty for
	// single-total domains such as calories.
	DatedEntry struct {
		At        time.Time
		Category  string
		Value     float64
		Direction core.Direction
	}

	// DayRow is one chart row. Values holds one column per discovered
	// category; Total always carries the plain magnitude sum, so
	// calorie-style domains read it directly while ledger domains use
	// the per-direction totals.
	DayRow struct {
		Date         string             `json:"date"`
		Values       map[string]float64 `json:"values"`
		IncomeTotal  float64            `json:"incomeTotal"`
		ExpenseTotal float64            `json:"expenseTotal"`
		Total        float64            `json:"total"`
	}

	// DailySeries is the temporal aggregator's output. Categories lists
	// the discovered column set in ascending order; it is not a fixed
	// enum, it is rediscovered from the entry set on every invocation.
	DailySeries struct {
		Rows       []DayRow `json:"rows"`
		Categories []string `json:"categories"`
	}
)

// AggregateByDay builds one row per calendar day in [start, end] inclusive,
// gap-filled with zeros so inactive days render as zero-height points
// instead of being interpolated over. Each entry buckets to its calendar
// date in loc (local time, not UTC: a record stamped near midnight must land
// on the viewer's day). Entries outside the range get rows on demand;
// entries with a zero timestamp are skipped. Rows come back sorted
// ascending by date.
func AggregateByDay(entries []DatedEntry, start, end time.Time, loc *time.Location) DailySeries {
	if loc == nil {
		loc = time.Local
	}

	rows := make(map[string]*DayRow)
	seed := func(date string) *DayRow {
		if row, ok := rows[date]; ok {
			return row
		}
		row := &DayRow{Date: date, Values: make(map[string]float64)}
		rows[date] = row
		return row
	}

	// Pre-seed the inclusive range. An unparsable boundary (zero time) or
	// an inverted range seeds nothing; on-demand rows still cover records.
	if !start.IsZero() && !end.IsZero() {
		from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			seed(d.Format(dayFormat))
		}
	}

	categories := make(map[string]struct{})
	for _, e := range entries {
		if e.At.IsZero() {
			continue
		}
		row := seed(e.At.In(loc).Format(dayFormat))
		row.Values[e.Category] += e.Value
		row.Total += e.Value
		switch e.Direction {
		case core.Income:
			row.IncomeTotal += e.Value
		case core.Expense:
			row.ExpenseTotal += e.Value
		}
		categories[e.Category] = struct{}{}
	}

	series := DailySeries{
		Rows:       make([]DayRow, 0, len(rows)),
		Categories: make([]string, 0, len(categories)),
	}
	for _, row := range rows {
		series.Rows = append(series.Rows, *row)
	}
	sort.Slice(series.Rows, func(i, j int) bool {
		return series.Rows[i].Date < series.Rows[j].Date
	})
	for c := range categories {
		series.Categories = append(series.Categories, c)
	}
	sort.Strings(series.Categories)
	return series
}
