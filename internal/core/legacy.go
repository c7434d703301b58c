package core

import (
	"math"
	"strings"
	"time"
)

// LegacyTransaction is the wire shape of the earlier backend model, which
// conflated direction and magnitude in a signed value and carried the
// direction in a free-text type string. It exists only at the transport
// boundary; nothing past the translation below ever sees it.
type LegacyTransaction struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Note     string  `json:"ps"`
}

// legacyDirections maps the historical free-text type tags onto the
// direction enum. All legacy string comparisons live in this one table.
var legacyDirections = map[string]Direction{
	"收入":      Income,
	"支出":      Expense,
	"income":  Income,
	"expense": Expense,
	"in":      Income,
	"out":     Expense,
}

// legacyPurposes maps historical free-text purpose tags onto the closed
// purpose vocabulary.
var legacyPurposes = map[string]Purpose{
	"定存":            PurposeFixedDeposit,
	"fixeddeposit":  PurposeFixedDeposit,
	"fixed-deposit": PurposeFixedDeposit,
	"fixed deposit": PurposeFixedDeposit,
}

// NormalizePurpose maps a free-text purpose tag to its canonical form,
// passing unknown tags through unchanged.
func NormalizePurpose(raw string) Purpose {
	key := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := legacyPurposes[key]; ok {
		return p
	}
	return Purpose(strings.TrimSpace(raw))
}

// FromLegacy translates a legacy record into the canonical
// direction+magnitude form. The type tag wins when it is recognized;
// otherwise the sign of the value decides, so untagged legacy rows still
// land in a determinate bucket.
func FromLegacy(l LegacyTransaction) TransactionRecord {
	dir, ok := legacyDirections[strings.ToLower(strings.TrimSpace(l.Type))]
	if !ok {
		if l.Value >= 0 {
			dir = Income
		} else {
			dir = Expense
		}
	}

	occurred, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(l.Date), time.Local)
	if err != nil {
		// Leave zero; downstream aggregation skips unparsable dates.
		occurred = time.Time{}
	}

	return TransactionRecord{
		ID:         l.ID,
		OccurredOn: occurred,
		Direction:  dir,
		Category:   l.Category,
		Name:       l.Name,
		Amount:     math.Abs(l.Value),
		Note:       l.Note,
	}
}
