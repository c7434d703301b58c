package storage

import (
	"context"
	"fmt"
)

// DailySummary is a derived per-day aggregate row maintained by the worker.
// It can always be rebuilt from the underlying record tables.
type DailySummary struct {
	Domain       string  `json:"domain"`
	Day          string  `json:"day"` // yyyy-MM-dd
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
	Total        float64 `json:"total"`
}

func (r *SQLiteRepository) UpsertDailySummary(ctx context.Context, s DailySummary) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_summaries (domain, day, income_total, expense_total, total, updated_at)
		 VALUES (?, ?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		 ON CONFLICT (domain, day) DO UPDATE SET
		     income_total = excluded.income_total,
		     expense_total = excluded.expense_total,
		     total = excluded.total,
		     updated_at = excluded.updated_at`,
		s.Domain, s.Day, s.IncomeTotal, s.ExpenseTotal, s.Total)
	if err != nil {
		return fmt.Errorf("upsert daily summary %s/%s: %w", s.Domain, s.Day, err)
	}
	return nil
}

// ListDailySummaries returns the derived rows of one domain in the
// inclusive [from, to] day range, ascending.
func (r *SQLiteRepository) ListDailySummaries(ctx context.Context, domain, from, to string) ([]DailySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT domain, day, income_total, expense_total, total
		 FROM daily_summaries
		 WHERE domain = ? AND day >= ? AND day <= ?
		 ORDER BY day`,
		domain, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily summaries: %w", err)
	}
	defer rows.Close()

	var out []DailySummary
	for rows.Next() {
		var s DailySummary
		if err := rows.Scan(&s.Domain, &s.Day, &s.IncomeTotal, &s.ExpenseTotal, &s.Total); err != nil {
			return nil, fmt.Errorf("scan daily summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
