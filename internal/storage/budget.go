package storage

import (
	"context"
	"fmt"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

func (r *SQLiteRepository) CreateBudgetConfig(ctx context.Context, c core.RecurringBudgetConfig) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_configs (frequency, purpose, amount, description)
		 VALUES (?, ?, ?, ?)`,
		string(c.Frequency), string(c.Purpose), c.Amount, c.Description)
	if err != nil {
		return 0, fmt.Errorf("create budget config: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget config id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateBudgetConfig(ctx context.Context, c core.RecurringBudgetConfig) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budget_configs
		 SET frequency = ?, purpose = ?, amount = ?, description = ?
		 WHERE id = ?`,
		string(c.Frequency), string(c.Purpose), c.Amount, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("update budget config: %w", err)
	}
	return requireRow(res, c.ID)
}

func (r *SQLiteRepository) DeleteBudgetConfig(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budget_configs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget config: %w", err)
	}
	return requireRow(res, id)
}

// ListBudgetConfigs returns the full user-managed list in insertion order;
// recurring budgets have no temporal dimension, they are always evaluated
// as of now.
func (r *SQLiteRepository) ListBudgetConfigs(ctx context.Context) ([]core.RecurringBudgetConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, frequency, purpose, amount, description FROM budget_configs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list budget configs: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringBudgetConfig
	for rows.Next() {
		var c core.RecurringBudgetConfig
		var frequency, purpose string
		if err := rows.Scan(&c.ID, &frequency, &purpose, &c.Amount, &c.Description); err != nil {
			return nil, fmt.Errorf("scan budget config: %w", err)
		}
		c.Frequency = core.Frequency(frequency)
		c.Purpose = core.NormalizePurpose(purpose)
		out = append(out, c)
	}
	return out, rows.Err()
}
