package report

import (
	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

// Adapters from the core record shapes into the aggregators' inputs, so the
// aggregation logic itself stays record-agnostic.

func TransactionEntries(records []core.TransactionRecord) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = Entry{Category: r.Category, Name: r.Name, Note: r.Note, Value: r.Amount}
	}
	return out
}

func TransactionDatedEntries(records []core.TransactionRecord) []DatedEntry {
	out := make([]DatedEntry, len(records))
	for i, r := range records {
		out[i] = DatedEntry{At: r.OccurredOn, Category: r.Category, Value: r.Amount, Direction: r.Direction}
	}
	return out
}

// Meal and exercise logs group by type name at both drill-down levels, so a
// single-type filter falls through to the note level.

func MealEntries(records []core.MealLogRecord) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = Entry{Category: r.TypeName, Name: r.TypeName, Note: r.Note, Value: r.Calories}
	}
	return out
}

func MealDatedEntries(records []core.MealLogRecord) []DatedEntry {
	out := make([]DatedEntry, len(records))
	for i, r := range records {
		out[i] = DatedEntry{At: r.OccurredOn, Category: r.TypeName, Value: r.Calories}
	}
	return out
}

func ExerciseEntries(records []core.ExerciseLogRecord) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = Entry{Category: r.TypeName, Name: r.TypeName, Note: r.Note, Value: r.Calories}
	}
	return out
}

func ExerciseDatedEntries(records []core.ExerciseLogRecord) []DatedEntry {
	out := make([]DatedEntry, len(records))
	for i, r := range records {
		out[i] = DatedEntry{At: r.OccurredOn, Category: r.TypeName, Value: r.Calories}
	}
	return out
}
