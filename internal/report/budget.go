package report

import (
	"math"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

// DisposableLabel names the residual pseudo-slice in the asset allocation.
const DisposableLabel = "disposable"

// BudgetSummary is the financial classifier's output: monthly-equivalent
// totals per bucket plus the per-entry breakdowns, in the user's list order.
type BudgetSummary struct {
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
	DepositTotal float64 `json:"depositTotal"`
	Disposable   float64 `json:"disposable"`
	Income       []Slice `json:"incomeBreakdown"`
	Expense      []Slice `json:"expenseBreakdown"`
	Deposit      []Slice `json:"depositBreakdown"`
}

// ClassifyBudget classifies each recurring entry into income, expense, or
// fixed deposit and normalizes its magnitude to the current month.
//
// The classification is order-sensitive: a positive amount is income no
// matter its purpose; a non-positive amount is a deposit only when it
// carries the fixed-deposit tag, and an expense otherwise.
//
// Disposable income is clamped at zero: the "money left to spend" bucket
// never shows a deficit, which stays visible through the raw totals.
func ClassifyBudget(configs []core.RecurringBudgetConfig, now time.Time) BudgetSummary {
	days := DaysInMonth(now)
	summary := BudgetSummary{
		Income:  []Slice{},
		Expense: []Slice{},
		Deposit: []Slice{},
	}

	for _, cfg := range configs {
		monthly := MonthlyEquivalent(math.Abs(cfg.Amount), cfg.Frequency, days)
		slice := Slice{Name: cfg.Label(), Value: monthly}
		switch {
		case cfg.Amount > 0:
			summary.Income = append(summary.Income, slice)
			summary.IncomeTotal = round2(summary.IncomeTotal + monthly)
		case cfg.Purpose.IsFixedDeposit():
			summary.Deposit = append(summary.Deposit, slice)
			summary.DepositTotal = round2(summary.DepositTotal + monthly)
		default:
			summary.Expense = append(summary.Expense, slice)
			summary.ExpenseTotal = round2(summary.ExpenseTotal + monthly)
		}
	}

	summary.Disposable = round2(math.Max(0, summary.IncomeTotal-summary.ExpenseTotal-summary.DepositTotal))
	return summary
}

// AssetAllocation turns a budget summary into the slices of the single
// allocation chart: deposits, then expenses, then the disposable
// pseudo-entry, keeping only positive values. "Assets" here means where
// committed and disposable money is going, not what is owned.
func AssetAllocation(summary BudgetSummary) []Slice {
	out := make([]Slice, 0, len(summary.Deposit)+len(summary.Expense)+1)
	for _, s := range summary.Deposit {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	for _, s := range summary.Expense {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	if summary.Disposable > 0 {
		out = append(out, Slice{Name: DisposableLabel, Value: summary.Disposable})
	}
	return out
}
