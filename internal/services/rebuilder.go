package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

// SummaryRebuilder recomputes the derived daily_summaries rows from the raw
// records. The rows are a pure projection, so a rebuild is always safe to
// repeat.
type SummaryRebuilder struct {
	storage   *storage.SQLiteRepository
	dashboard *DashboardService
	loc       *time.Location
}

func NewSummaryRebuilder(repo *storage.SQLiteRepository, loc *time.Location) *SummaryRebuilder {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryRebuilder{
		storage:   repo,
		dashboard: NewDashboardService(repo, loc),
		loc:       loc,
	}
}

// RebuildDay recomputes the summary row for one local day of a domain. The
// budget domain has no per-day records and is skipped.
func (r *SummaryRebuilder) RebuildDay(ctx context.Context, domain, day string) error {
	if domain == DomainBudget || domain == DomainCalendar {
		return nil
	}

	start, err := time.ParseInLocation("2006-01-02", day, r.loc)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", day, err)
	}

	return r.rebuildRange(ctx, domain, start, start)
}

// RebuildRange recomputes every day in [from, to] for a domain, including
// the zero rows gap-filling produces for empty days.
func (r *SummaryRebuilder) RebuildRange(ctx context.Context, domain string, from, to time.Time) error {
	return r.rebuildRange(ctx, domain, from, to)
}

func (r *SummaryRebuilder) rebuildRange(ctx context.Context, domain string, from, to time.Time) error {
	series, err := r.dashboard.DailyReport(ctx, domain, from, to, "", report.DirectionAll)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", domain, err)
	}

	for _, row := range series.Rows {
		summary := storage.DailySummary{
			Domain:       domain,
			Day:          row.Date,
			IncomeTotal:  row.IncomeTotal,
			ExpenseTotal: row.ExpenseTotal,
			Total:        row.Total,
		}
		if err := r.storage.UpsertDailySummary(ctx, summary); err != nil {
			return fmt.Errorf("upsert summary %s/%s: %w", domain, row.Date, err)
		}
	}

	slog.InfoContext(ctx, "Rebuilt daily summaries",
		"domain", domain,
		"days", len(series.Rows))
	return nil
}

// Summaries returns the stored rows for a domain in [from, to], both given
// as YYYY-MM-DD day strings.
func (r *SummaryRebuilder) Summaries(ctx context.Context, domain, from, to string) ([]storage.DailySummary, error) {
	return r.storage.ListDailySummaries(ctx, domain, from, to)
}
