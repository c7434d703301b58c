package core

import (
	"strconv"
	"strings"
	"time"
)

type (
	// MealLogRecord is a single eaten meal. TypeName loosely references a
	// MealType catalog entry by name; no referential integrity is enforced.
	MealLogRecord struct {
		ID         int64
		OccurredOn time.Time
		TypeName   string
		Calories   float64
		Note       string
	}

	// ExerciseLogRecord is a single workout session.
	ExerciseLogRecord struct {
		ID         int64
		OccurredOn time.Time
		TypeName   string
		Duration   float64 // minutes
		Calories   float64
		Note       string
	}

	// MealType is a user-managed catalog entry seeding meal form defaults.
	MealType struct {
		ID              int64
		Name            string
		Icon            string
		DefaultCalories float64
	}

	// ExerciseType is a user-managed catalog entry seeding exercise form
	// defaults. KcalPerHour lets the form derive calories from duration.
	ExerciseType struct {
		ID              int64
		Name            string
		Icon            string
		DefaultDuration float64 // minutes
		KcalPerHour     float64
	}
)

func (m MealLogRecord) Validate() error {
	if m.OccurredOn.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(m.TypeName) == "" {
		return ErrEmptyName
	}
	if m.Calories < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m MealLogRecord) SearchFields() []string {
	return []string{
		m.OccurredOn.Format("2006-01-02"),
		m.TypeName,
		strconv.FormatFloat(m.Calories, 'f', -1, 64),
		m.Note,
	}
}

func (e ExerciseLogRecord) Validate() error {
	if e.OccurredOn.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(e.TypeName) == "" {
		return ErrEmptyName
	}
	if e.Calories < 0 || e.Duration < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e ExerciseLogRecord) SearchFields() []string {
	return []string{
		e.OccurredOn.Format("2006-01-02"),
		e.TypeName,
		strconv.FormatFloat(e.Duration, 'f', -1, 64),
		strconv.FormatFloat(e.Calories, 'f', -1, 64),
		e.Note,
	}
}

// DefaultCaloriesFor derives the calorie default of an exercise type from
// its default duration and hourly burn rate.
func (t ExerciseType) DefaultCaloriesFor(durationMinutes float64) float64 {
	if durationMinutes <= 0 || t.KcalPerHour <= 0 {
		return 0
	}
	return t.KcalPerHour * durationMinutes / 60
}
