package services

import (
	"context"
	"testing"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

func TestHealthService_MealDefaults(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewHealthService(repo, nil, time.UTC)
	ctx := context.Background()

	if _, err := svc.CreateMealType(ctx, core.MealType{Name: "Breakfast", DefaultCalories: 400}); err != nil {
		t.Fatalf("CreateMealType() error = %v", err)
	}

	got, err := svc.MealDefaults(ctx, "breakfast")
	if err != nil {
		t.Fatalf("MealDefaults() error = %v", err)
	}
	if got != 400 {
		t.Errorf("MealDefaults(breakfast) = %v, want 400", got)
	}

	unknown, err := svc.MealDefaults(ctx, "brunch")
	if err != nil {
		t.Fatalf("MealDefaults() error = %v", err)
	}
	if unknown != 0 {
		t.Errorf("MealDefaults(unknown) = %v, want 0", unknown)
	}
}

func TestHealthService_ExerciseDefaults(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewHealthService(repo, nil, time.UTC)
	ctx := context.Background()

	_, err := svc.CreateExerciseType(ctx, core.ExerciseType{
		Name: "Running", DefaultDuration: 30, KcalPerHour: 600,
	})
	if err != nil {
		t.Fatalf("CreateExerciseType() error = %v", err)
	}

	duration, calories, err := svc.ExerciseDefaults(ctx, "Running")
	if err != nil {
		t.Fatalf("ExerciseDefaults() error = %v", err)
	}
	if duration != 30 {
		t.Errorf("duration = %v, want 30", duration)
	}
	if calories != 300 {
		t.Errorf("calories = %v, want 300 (30 minutes at 600 kcal/h)", calories)
	}
}

func TestHealthService_RejectsBlankTypeName(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewHealthService(repo, nil, time.UTC)
	ctx := context.Background()

	if _, err := svc.CreateMealType(ctx, core.MealType{Name: "   "}); err == nil {
		t.Error("CreateMealType() should reject a blank name")
	}
	if _, err := svc.CreateExerciseType(ctx, core.ExerciseType{Name: ""}); err == nil {
		t.Error("CreateExerciseType() should reject a blank name")
	}
}

func TestHealthService_LogLifecycleNotifies(t *testing.T) {
	repo := newTestRepo(t)
	pub := &fakePublisher{}
	svc := NewHealthService(repo, pub, time.UTC)
	ctx := context.Background()

	id, err := svc.CreateMealLog(ctx, core.MealLogRecord{
		OccurredOn: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
		TypeName:   "Breakfast",
		Calories:   400,
	})
	if err != nil {
		t.Fatalf("CreateMealLog() error = %v", err)
	}
	if len(pub.messages) != 1 || pub.messages[0].Domain != DomainMeals {
		t.Fatalf("messages = %+v", pub.messages)
	}
	if pub.messages[0].Day != "2024-04-01" {
		t.Errorf("Day = %q, want 2024-04-01", pub.messages[0].Day)
	}

	if err := svc.DeleteMealLog(ctx, id); err != nil {
		t.Fatalf("DeleteMealLog() error = %v", err)
	}
	if len(pub.messages) != 2 {
		t.Errorf("published %d messages, want 2", len(pub.messages))
	}
}
