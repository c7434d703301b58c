package core

import (
	"errors"
	"testing"
	"time"
)

func TestMealLogRecordValidate(t *testing.T) {
	valid := MealLogRecord{
		OccurredOn: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		TypeName:   "Lunch",
		Calories:   650,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*MealLogRecord)
		want   error
	}{
		{"zero date", func(m *MealLogRecord) { m.OccurredOn = time.Time{} }, ErrZeroDate},
		{"blank type", func(m *MealLogRecord) { m.TypeName = "   " }, ErrEmptyName},
		{"negative calories", func(m *MealLogRecord) { m.Calories = -1 }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExerciseLogRecordValidate(t *testing.T) {
	valid := ExerciseLogRecord{
		OccurredOn: time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC),
		TypeName:   "Running",
		Duration:   30,
		Calories:   300,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ExerciseLogRecord)
		want   error
	}{
		{"zero date", func(e *ExerciseLogRecord) { e.OccurredOn = time.Time{} }, ErrZeroDate},
		{"blank type", func(e *ExerciseLogRecord) { e.TypeName = "" }, ErrEmptyName},
		{"negative duration", func(e *ExerciseLogRecord) { e.Duration = -5 }, ErrInvalidAmount},
		{"negative calories", func(e *ExerciseLogRecord) { e.Calories = -5 }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExerciseTypeDefaultCaloriesFor(t *testing.T) {
	running := ExerciseType{Name: "Running", DefaultDuration: 30, KcalPerHour: 600}

	tests := []struct {
		name     string
		duration float64
		want     float64
	}{
		{"default duration", 30, 300},
		{"full hour", 60, 600},
		{"zero duration", 0, 0},
		{"negative duration", -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := running.DefaultCaloriesFor(tt.duration); got != tt.want {
				t.Errorf("DefaultCaloriesFor(%v) = %v, want %v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestExerciseTypeWithoutRateHasNoDefault(t *testing.T) {
	yoga := ExerciseType{Name: "Yoga", DefaultDuration: 45}
	if got := yoga.DefaultCaloriesFor(45); got != 0 {
		t.Errorf("DefaultCaloriesFor(45) = %v, want 0", got)
	}
}
