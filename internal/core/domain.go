package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// PurposeFixedDeposit is the reserved purpose tag that routes a budget entry
// to the deposit bucket regardless of its sign.
const PurposeFixedDeposit Purpose = "fixed-deposit"

type (
	Direction string

	Frequency string

	// Purpose is the category tag of a recurring budget entry.
	Purpose string

	// TransactionRecord is a single ledger entry. Amount is always a
	// magnitude; the sign lives in Direction.
	TransactionRecord struct {
		ID         int64
		OccurredOn time.Time
		Direction  Direction
		Category   string
		Name       string
		Amount     float64
		Note       string
	}

	// RecurringBudgetConfig is a user-managed recurring entry evaluated
	// "as of now": positive amounts are income, negative amounts are
	// expenses or fixed deposits.
	RecurringBudgetConfig struct {
		ID          int64
		Frequency   Frequency
		Purpose     Purpose
		Amount      float64
		Description string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
	ErrZeroDate         = errors.New("date cannot be zero")
)

func (d Direction) Valid() bool {
	return d == Income || d == Expense
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// IsFixedDeposit reports whether the purpose carries the reserved deposit
// tag, accepting the legacy free-text aliases via the translation table.
func (p Purpose) IsFixedDeposit() bool {
	return NormalizePurpose(string(p)) == PurposeFixedDeposit
}

func (t TransactionRecord) Validate() error {
	if t.OccurredOn.IsZero() {
		return ErrZeroDate
	}
	if !t.Direction.Valid() {
		return ErrInvalidDirection
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// SearchFields returns the textual fields the keyword filter scans.
func (t TransactionRecord) SearchFields() []string {
	return []string{
		t.OccurredOn.Format("2006-01-02"),
		t.Category,
		t.Name,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		t.Note,
	}
}

func (c RecurringBudgetConfig) Validate() error {
	if !c.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if strings.TrimSpace(string(c.Purpose)) == "" {
		return ErrEmptyCategory
	}
	if len(c.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Label returns the display name of a budget entry for breakdown slices:
// the description when present, the purpose tag otherwise.
func (c RecurringBudgetConfig) Label() string {
	if s := strings.TrimSpace(c.Description); s != "" {
		return s
	}
	return string(c.Purpose)
}

func (c RecurringBudgetConfig) SearchFields() []string {
	return []string{
		string(c.Frequency),
		string(c.Purpose),
		strconv.FormatFloat(c.Amount, 'f', -1, 64),
		c.Description,
	}
}
