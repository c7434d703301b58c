package report

import (
	"testing"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"january", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 31},
		{"february leap year", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 29},
		{"february non-leap", time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), 28},
		{"century non-leap", time.Date(1900, 2, 10, 0, 0, 0, 0, time.UTC), 28},
		{"quadricentennial leap", time.Date(2000, 2, 10, 0, 0, 0, 0, time.UTC), 29},
		{"april", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.now); got != tt.want {
				t.Errorf("DaysInMonth(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		freq   core.Frequency
		days   int
		want   float64
	}{
		{"daily over 30 days", 100, core.Daily, 30, 3000},
		{"weekly over 28 days", 700, core.Weekly, 28, 2800},
		{"monthly is unchanged", 50, core.Monthly, 31, 50},
		{"monthly is unchanged regardless of days", 50, core.Monthly, 28, 50},
		{"weekly over 31 days rounds to 2 decimals", 100, core.Weekly, 31, 442.86},
		{"weekly over 30 days", 70, core.Weekly, 30, 300},
		{"daily fractional", 3.33, core.Daily, 29, 96.57},
		{"unknown frequency passes through", 42, core.Frequency("yearly"), 30, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyEquivalent(tt.amount, tt.freq, tt.days); got != tt.want {
				t.Errorf("MonthlyEquivalent(%v, %s, %d) = %v, want %v",
					tt.amount, tt.freq, tt.days, got, tt.want)
			}
		})
	}
}
