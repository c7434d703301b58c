// Package storage persists all record types in SQLite and owns the embedded
// schema migrations. Timestamps are stored as RFC3339 UTC strings so range
// scans stay lexicographic.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Ping verifies the database connection is still usable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Corrupt rows surface as zero times, which the aggregation
		// layer skips rather than aborting the whole computation.
		return time.Time{}
	}
	return t
}

// CreateTransaction inserts a ledger entry and returns its id.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.TransactionRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (occurred_on, direction, category, name, amount, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		encodeTime(t.OccurredOn), string(t.Direction), t.Category, t.Name, t.Amount, t.Note)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}
	return id, nil
}

// UpdateTransaction replaces every field of the row; records are mutated
// only by full replacement, never patched.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.TransactionRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET occurred_on = ?, direction = ?, category = ?, name = ?, amount = ?, note = ?,
		     updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		 WHERE id = ?`,
		encodeTime(t.OccurredOn), string(t.Direction), t.Category, t.Name, t.Amount, t.Note, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res, t.ID)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.TransactionRecord, error) {
	var t core.TransactionRecord
	var occurred, direction string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, occurred_on, direction, category, name, amount, note
		 FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &occurred, &direction, &t.Category, &t.Name, &t.Amount, &t.Note)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	t.OccurredOn = decodeTime(occurred)
	t.Direction = core.Direction(direction)
	return t, nil
}

// ListTransactions returns entries in the inclusive [from, to] range,
// oldest first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, from, to time.Time) ([]core.TransactionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, occurred_on, direction, category, name, amount, note
		 FROM transactions
		 WHERE occurred_on >= ? AND occurred_on < ?
		 ORDER BY occurred_on`,
		encodeTime(from), encodeTime(endOfRange(to)))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.TransactionRecord
	for rows.Next() {
		var t core.TransactionRecord
		var occurred, direction string
		if err := rows.Scan(&t.ID, &occurred, &direction, &t.Category, &t.Name, &t.Amount, &t.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.OccurredOn = decodeTime(occurred)
		t.Direction = core.Direction(direction)
		out = append(out, t)
	}
	return out, rows.Err()
}

// endOfRange widens an inclusive range end to the first instant of the next
// day, so "to 2024-03-03" still covers records late on that day.
func endOfRange(to time.Time) time.Time {
	return time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
