// Package core provides the domain model shared by storage, services, and
// the aggregation layer: record types, validation, and the legacy wire
// translation boundary.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into a float64 amount rounded to
// two decimal places. It accepts both dot (12.34) and comma (12,34)
// separators and an optional leading minus for the signed budget amounts.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,345") -> 12.35, nil (rounds half up)
//	ParseAmount("-50")    -> -50, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return d.Round(2).InexactFloat64(), nil
}

// ParseMagnitude is ParseAmount restricted to non-negative values, for the
// record types whose sign is carried by a direction enum.
func ParseMagnitude(s string) (float64, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
