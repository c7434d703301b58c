package report

import (
	"strings"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

// Searchable is implemented by every record type that exposes its textual
// fields to the keyword filter.
type Searchable interface {
	SearchFields() []string
}

// DirectionFilter narrows a transaction set to one side of the ledger.
type DirectionFilter string

const (
	DirectionAll     DirectionFilter = "all"
	DirectionIncome  DirectionFilter = "income"
	DirectionExpense DirectionFilter = "expense"
)

// MatchesKeyword reports whether any field contains the keyword,
// case-insensitively. A blank keyword (after trimming) matches everything.
// There is no tokenization: this is a plain substring OR across fields.
func MatchesKeyword(fields []string, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), kw) {
			return true
		}
	}
	return false
}

// FilterKeyword returns the records whose search fields match the keyword.
// The input slice is never mutated.
func FilterKeyword[T Searchable](records []T, keyword string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if MatchesKeyword(r.SearchFields(), keyword) {
			out = append(out, r)
		}
	}
	return out
}

// FilterTransactions applies the keyword and direction filters in one pass.
func FilterTransactions(records []core.TransactionRecord, keyword string, dir DirectionFilter) []core.TransactionRecord {
	out := make([]core.TransactionRecord, 0, len(records))
	for _, r := range records {
		switch dir {
		case DirectionIncome:
			if r.Direction != core.Income {
				continue
			}
		case DirectionExpense:
			if r.Direction != core.Expense {
				continue
			}
		}
		if MatchesKeyword(r.SearchFields(), keyword) {
			out = append(out, r)
		}
	}
	return out
}
