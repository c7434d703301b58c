package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

func (r *SQLiteRepository) CreateMealLog(ctx context.Context, m core.MealLogRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_logs (occurred_on, type_name, calories, note) VALUES (?, ?, ?, ?)`,
		encodeTime(m.OccurredOn), m.TypeName, m.Calories, m.Note)
	if err != nil {
		return 0, fmt.Errorf("create meal log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("meal log id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateMealLog(ctx context.Context, m core.MealLogRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meal_logs SET occurred_on = ?, type_name = ?, calories = ?, note = ? WHERE id = ?`,
		encodeTime(m.OccurredOn), m.TypeName, m.Calories, m.Note, m.ID)
	if err != nil {
		return fmt.Errorf("update meal log: %w", err)
	}
	return requireRow(res, m.ID)
}

func (r *SQLiteRepository) DeleteMealLog(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal log: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) ListMealLogs(ctx context.Context, from, to time.Time) ([]core.MealLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, occurred_on, type_name, calories, note
		 FROM meal_logs WHERE occurred_on >= ? AND occurred_on < ? ORDER BY occurred_on`,
		encodeTime(from), encodeTime(endOfRange(to)))
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	var out []core.MealLogRecord
	for rows.Next() {
		var m core.MealLogRecord
		var occurred string
		if err := rows.Scan(&m.ID, &occurred, &m.TypeName, &m.Calories, &m.Note); err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		m.OccurredOn = decodeTime(occurred)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateExerciseLog(ctx context.Context, e core.ExerciseLogRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO exercise_logs (occurred_on, type_name, duration, calories, note) VALUES (?, ?, ?, ?, ?)`,
		encodeTime(e.OccurredOn), e.TypeName, e.Duration, e.Calories, e.Note)
	if err != nil {
		return 0, fmt.Errorf("create exercise log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("exercise log id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateExerciseLog(ctx context.Context, e core.ExerciseLogRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE exercise_logs SET occurred_on = ?, type_name = ?, duration = ?, calories = ?, note = ? WHERE id = ?`,
		encodeTime(e.OccurredOn), e.TypeName, e.Duration, e.Calories, e.Note, e.ID)
	if err != nil {
		return fmt.Errorf("update exercise log: %w", err)
	}
	return requireRow(res, e.ID)
}

func (r *SQLiteRepository) DeleteExerciseLog(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercise_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise log: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) ListExerciseLogs(ctx context.Context, from, to time.Time) ([]core.ExerciseLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, occurred_on, type_name, duration, calories, note
		 FROM exercise_logs WHERE occurred_on >= ? AND occurred_on < ? ORDER BY occurred_on`,
		encodeTime(from), encodeTime(endOfRange(to)))
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	var out []core.ExerciseLogRecord
	for rows.Next() {
		var e core.ExerciseLogRecord
		var occurred string
		if err := rows.Scan(&e.ID, &occurred, &e.TypeName, &e.Duration, &e.Calories, &e.Note); err != nil {
			return nil, fmt.Errorf("scan exercise log: %w", err)
		}
		e.OccurredOn = decodeTime(occurred)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Type catalogs. Deleting a catalog entry never touches existing logs: the
// log's type name is a loose reference used only to seed form defaults.

func (r *SQLiteRepository) CreateMealType(ctx context.Context, t core.MealType) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_types (name, icon, default_calories) VALUES (?, ?, ?)`,
		t.Name, t.Icon, t.DefaultCalories)
	if err != nil {
		return 0, fmt.Errorf("create meal type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("meal type id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) DeleteMealType(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal type: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) ListMealTypes(ctx context.Context) ([]core.MealType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, icon, default_calories FROM meal_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list meal types: %w", err)
	}
	defer rows.Close()

	var out []core.MealType
	for rows.Next() {
		var t core.MealType
		if err := rows.Scan(&t.ID, &t.Name, &t.Icon, &t.DefaultCalories); err != nil {
			return nil, fmt.Errorf("scan meal type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateExerciseType(ctx context.Context, t core.ExerciseType) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO exercise_types (name, icon, default_duration, kcal_per_hour) VALUES (?, ?, ?, ?)`,
		t.Name, t.Icon, t.DefaultDuration, t.KcalPerHour)
	if err != nil {
		return 0, fmt.Errorf("create exercise type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("exercise type id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) DeleteExerciseType(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercise_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise type: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) ListExerciseTypes(ctx context.Context) ([]core.ExerciseType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, icon, default_duration, kcal_per_hour FROM exercise_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list exercise types: %w", err)
	}
	defer rows.Close()

	var out []core.ExerciseType
	for rows.Next() {
		var t core.ExerciseType
		if err := rows.Scan(&t.ID, &t.Name, &t.Icon, &t.DefaultDuration, &t.KcalPerHour); err != nil {
			return nil, fmt.Errorf("scan exercise type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
