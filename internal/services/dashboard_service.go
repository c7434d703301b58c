package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

// DashboardService builds read-only report views on top of the raw records.
// All aggregation happens in memory so a report is always consistent with
// the records it was computed from.
type DashboardService struct {
	storage *storage.SQLiteRepository
	loc     *time.Location
}

func NewDashboardService(storage *storage.SQLiteRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{storage: storage, loc: loc}
}

// Overview is the combined dashboard payload: drill-down slices and daily
// series for the ledger, plus the recurring-budget projection.
type Overview struct {
	Categories []report.Slice       `json:"categories"`
	Daily      report.DailySeries   `json:"daily"`
	Budget     report.BudgetSummary `json:"budget"`
	Assets     []report.Slice       `json:"assets"`
}

// CategoryReport aggregates a domain's records in [from, to] into drill-down
// slices. The keyword and direction filters apply before aggregation.
func (s *DashboardService) CategoryReport(ctx context.Context, domain string, from, to time.Time, keyword string, dir report.DirectionFilter) ([]report.Slice, error) {
	entries, err := s.entries(ctx, domain, from, to, keyword, dir)
	if err != nil {
		return nil, err
	}
	return report.AggregateByCategory(entries), nil
}

// DailyReport aggregates a domain's records into gap-filled per-day rows.
// The keyword and direction filters apply before aggregation, like in
// CategoryReport.
func (s *DashboardService) DailyReport(ctx context.Context, domain string, from, to time.Time, keyword string, dir report.DirectionFilter) (report.DailySeries, error) {
	entries, err := s.datedEntries(ctx, domain, from, to, keyword, dir)
	if err != nil {
		return report.DailySeries{}, err
	}
	return report.AggregateByDay(entries, from, to, s.loc), nil
}

// BudgetReport classifies the recurring budget configs into the monthly
// income, expense and deposit breakdowns as of now.
func (s *DashboardService) BudgetReport(ctx context.Context, now time.Time) (report.BudgetSummary, error) {
	configs, err := s.storage.ListBudgetConfigs(ctx)
	if err != nil {
		return report.BudgetSummary{}, fmt.Errorf("list budget configs: %w", err)
	}
	return report.ClassifyBudget(configs, now), nil
}

// AssetReport projects the budget summary into allocation slices.
func (s *DashboardService) AssetReport(ctx context.Context, now time.Time) ([]report.Slice, error) {
	summary, err := s.BudgetReport(ctx, now)
	if err != nil {
		return nil, err
	}
	return report.AssetAllocation(summary), nil
}

// BuildOverview assembles the full dashboard, fetching the independent
// record sets concurrently.
func (s *DashboardService) BuildOverview(ctx context.Context, from, to, now time.Time) (Overview, error) {
	var overview Overview

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slices, err := s.CategoryReport(ctx, DomainLedger, from, to, "", report.DirectionExpense)
		if err != nil {
			return err
		}
		overview.Categories = slices
		return nil
	})

	g.Go(func() error {
		series, err := s.DailyReport(ctx, DomainLedger, from, to, "", report.DirectionAll)
		if err != nil {
			return err
		}
		overview.Daily = series
		return nil
	})

	g.Go(func() error {
		summary, err := s.BudgetReport(ctx, now)
		if err != nil {
			return err
		}
		overview.Budget = summary
		overview.Assets = report.AssetAllocation(summary)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("build overview: %w", err)
	}

	return overview, nil
}

func (s *DashboardService) entries(ctx context.Context, domain string, from, to time.Time, keyword string, dir report.DirectionFilter) ([]report.Entry, error) {
	switch domain {
	case DomainLedger:
		records, err := s.storage.ListTransactions(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		return report.TransactionEntries(report.FilterTransactions(records, keyword, dir)), nil
	case DomainMeals:
		logs, err := s.storage.ListMealLogs(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list meal logs: %w", err)
		}
		return report.MealEntries(report.FilterKeyword(logs, keyword)), nil
	case DomainExercise:
		logs, err := s.storage.ListExerciseLogs(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list exercise logs: %w", err)
		}
		return report.ExerciseEntries(report.FilterKeyword(logs, keyword)), nil
	default:
		return nil, fmt.Errorf("unknown report domain %q", domain)
	}
}

func (s *DashboardService) datedEntries(ctx context.Context, domain string, from, to time.Time, keyword string, dir report.DirectionFilter) ([]report.DatedEntry, error) {
	switch domain {
	case DomainLedger:
		records, err := s.storage.ListTransactions(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		return report.TransactionDatedEntries(report.FilterTransactions(records, keyword, dir)), nil
	case DomainMeals:
		logs, err := s.storage.ListMealLogs(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list meal logs: %w", err)
		}
		return report.MealDatedEntries(report.FilterKeyword(logs, keyword)), nil
	case DomainExercise:
		logs, err := s.storage.ListExerciseLogs(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list exercise logs: %w", err)
		}
		return report.ExerciseDatedEntries(report.FilterKeyword(logs, keyword)), nil
	default:
		return nil, fmt.Errorf("unknown report domain %q", domain)
	}
}
