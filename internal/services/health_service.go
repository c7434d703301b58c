package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/amqp"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

// HealthService manages meal and exercise logs plus their type catalogs.
// Catalog entries only provide form defaults; logs keep a copy of the type
// name and survive catalog deletions.
type HealthService struct {
	storage   *storage.SQLiteRepository
	publisher ChangePublisher
	loc       *time.Location
}

func NewHealthService(storage *storage.SQLiteRepository, publisher ChangePublisher, loc *time.Location) *HealthService {
	if loc == nil {
		loc = time.Local
	}
	return &HealthService{storage: storage, publisher: publisher, loc: loc}
}

func (s *HealthService) CreateMealLog(ctx context.Context, m core.MealLogRecord) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.CreateMealLog(ctx, m)
	if err != nil {
		return 0, fmt.Errorf("save meal log: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainMeals, id, amqp.ActionCreated, m.OccurredOn)
	return id, nil
}

func (s *HealthService) UpdateMealLog(ctx context.Context, m core.MealLogRecord) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateMealLog(ctx, m); err != nil {
		return fmt.Errorf("update meal log: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainMeals, m.ID, amqp.ActionUpdated, m.OccurredOn)
	return nil
}

func (s *HealthService) DeleteMealLog(ctx context.Context, id int64) error {
	if err := s.storage.DeleteMealLog(ctx, id); err != nil {
		return fmt.Errorf("delete meal log: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainMeals, id, amqp.ActionDeleted, time.Now())
	return nil
}

func (s *HealthService) ListMealLogs(ctx context.Context, from, to time.Time, keyword string) ([]core.MealLogRecord, error) {
	logs, err := s.storage.ListMealLogs(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	return report.FilterKeyword(logs, keyword), nil
}

func (s *HealthService) CreateExerciseLog(ctx context.Context, e core.ExerciseLogRecord) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.CreateExerciseLog(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save exercise log: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainExercise, id, amqp.ActionCreated, e.OccurredOn)
	return id, nil
}

func (s *HealthService) UpdateExerciseLog(ctx context.Context, e core.ExerciseLogRecord) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateExerciseLog(ctx, e); err != nil {
		return fmt.Errorf("update exercise log: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainExercise, e.ID, amqp.ActionUpdated, e.OccurredOn)
	return nil
}

func (s *HealthService) DeleteExerciseLog(ctx context.Context, id int64) error {
	if err := s.storage.DeleteExerciseLog(ctx, id); err != nil {
		return fmt.Errorf("delete exercise log: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainExercise, id, amqp.ActionDeleted, time.Now())
	return nil
}

func (s *HealthService) ListExerciseLogs(ctx context.Context, from, to time.Time, keyword string) ([]core.ExerciseLogRecord, error) {
	logs, err := s.storage.ListExerciseLogs(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	return report.FilterKeyword(logs, keyword), nil
}

func (s *HealthService) CreateMealType(ctx context.Context, t core.MealType) (int64, error) {
	if strings.TrimSpace(t.Name) == "" {
		return 0, core.ErrEmptyName
	}
	return s.storage.CreateMealType(ctx, t)
}

func (s *HealthService) DeleteMealType(ctx context.Context, id int64) error {
	return s.storage.DeleteMealType(ctx, id)
}

func (s *HealthService) ListMealTypes(ctx context.Context) ([]core.MealType, error) {
	return s.storage.ListMealTypes(ctx)
}

func (s *HealthService) CreateExerciseType(ctx context.Context, t core.ExerciseType) (int64, error) {
	if strings.TrimSpace(t.Name) == "" {
		return 0, core.ErrEmptyName
	}
	return s.storage.CreateExerciseType(ctx, t)
}

func (s *HealthService) DeleteExerciseType(ctx context.Context, id int64) error {
	return s.storage.DeleteExerciseType(ctx, id)
}

func (s *HealthService) ListExerciseTypes(ctx context.Context) ([]core.ExerciseType, error) {
	return s.storage.ListExerciseTypes(ctx)
}

// MealDefaults returns the catalog default calories for a type name, or
// zero when the type is unknown.
func (s *HealthService) MealDefaults(ctx context.Context, typeName string) (float64, error) {
	types, err := s.storage.ListMealTypes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list meal types: %w", err)
	}
	for _, t := range types {
		if strings.EqualFold(t.Name, typeName) {
			return t.DefaultCalories, nil
		}
	}
	return 0, nil
}

// ExerciseDefaults returns the default duration and the calories burned at
// that duration for a type name. Unknown types yield zeros.
func (s *HealthService) ExerciseDefaults(ctx context.Context, typeName string) (duration, calories float64, err error) {
	types, err := s.storage.ListExerciseTypes(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list exercise types: %w", err)
	}
	for _, t := range types {
		if strings.EqualFold(t.Name, typeName) {
			return t.DefaultDuration, t.DefaultCaloriesFor(t.DefaultDuration), nil
		}
	}
	return 0, 0, nil
}
