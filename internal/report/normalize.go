// Package report implements the chart-facing aggregation layer: pure,
// synchronous transforms from record slices to view models. Functions here
// never perform I/O, never mutate their inputs, and always allocate fresh
// output, so callers may re-invoke them freely while fetches are in flight.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

// DaysInMonth returns the number of days in the month containing now.
// Leap years fall out of the calendar arithmetic; nothing is hardcoded.
func DaysInMonth(now time.Time) int {
	y, m, _ := now.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location()).Day()
}

// MonthlyEquivalent converts a periodic amount into its monthly-equivalent
// scalar. Recurring-budget math always projects against the current month
// length, so daysInMonth comes from the real calendar month, never from a
// record's date.
//
// Rounding policy: every derived value is rounded half-up to two decimal
// places, uniformly across frequencies.
func MonthlyEquivalent(amount float64, freq core.Frequency, daysInMonth int) float64 {
	switch freq {
	case core.Daily:
		return round2(amount * float64(daysInMonth))
	case core.Weekly:
		return round2(amount * float64(daysInMonth) / 7)
	default:
		// Monthly, and any unrecognized frequency, passes through.
		return amount
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
