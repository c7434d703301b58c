package report

import (
	"sort"
	"strings"
)

// NoNotePlaceholder is the sentinel bucket for entries whose note is empty
// or whitespace-only when the drill-down reaches the note level.
const NoNotePlaceholder = "(no note)"

type (
	// Slice is one bucket of a pie chart.
	Slice struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	// Entry is the categorical aggregator's input: the three grouping
	// fields of a record, coarsest first, plus its magnitude.
	Entry struct {
		Category string
		Name     string
		Note     string
		Value    float64
	}
)

// AggregateByCategory groups entries by the finest key that still yields
// more than one bucket: category when categories differ, otherwise name,
// otherwise note. The fallback keeps a pie chart from degenerating into a
// single slice once the user has filtered down to one category.
//
// Sums are plain accumulation of Value; output is sorted descending by
// value, ties broken by name for determinism.
func AggregateByCategory(entries []Entry) []Slice {
	if len(entries) == 0 {
		return []Slice{}
	}

	byCategory := sumBy(entries, func(e Entry) string { return e.Category })
	if len(byCategory) > 1 {
		return sortedSlices(byCategory)
	}

	byName := sumBy(entries, func(e Entry) string { return e.Name })
	if len(byName) > 1 {
		return sortedSlices(byName)
	}

	byNote := sumBy(entries, func(e Entry) string {
		note := strings.TrimSpace(e.Note)
		if note == "" {
			return NoNotePlaceholder
		}
		return note
	})
	return sortedSlices(byNote)
}

func sumBy(entries []Entry, key func(Entry) string) map[string]float64 {
	sums := make(map[string]float64, len(entries))
	for _, e := range entries {
		sums[key(e)] += e.Value
	}
	return sums
}

func sortedSlices(sums map[string]float64) []Slice {
	out := make([]Slice, 0, len(sums))
	for name, value := range sums {
		out = append(out, Slice{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
