package storage

import (
	"context"
	"fmt"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
)

func (r *SQLiteRepository) CreateCalendarEvent(ctx context.Context, e core.CalendarEventRecord) (int64, error) {
	e = e.WithDerivedFields()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO calendar_events (title, date_str, start_at, end_at, start_text, end_text, month)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.DateStr, encodeTime(e.Start), encodeTime(e.End), e.StartText, e.EndText, e.Month)
	if err != nil {
		return 0, fmt.Errorf("create calendar event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("calendar event id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateCalendarEvent(ctx context.Context, e core.CalendarEventRecord) error {
	e = e.WithDerivedFields()
	res, err := r.db.ExecContext(ctx,
		`UPDATE calendar_events
		 SET title = ?, date_str = ?, start_at = ?, end_at = ?, start_text = ?, end_text = ?, month = ?
		 WHERE id = ?`,
		e.Title, e.DateStr, encodeTime(e.Start), encodeTime(e.End), e.StartText, e.EndText, e.Month, e.ID)
	if err != nil {
		return fmt.Errorf("update calendar event: %w", err)
	}
	return requireRow(res, e.ID)
}

func (r *SQLiteRepository) DeleteCalendarEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return requireRow(res, id)
}

// ListCalendarEventsByMonth returns the events of one YYYYMM index, the
// coarse lookup the month view uses.
func (r *SQLiteRepository) ListCalendarEventsByMonth(ctx context.Context, month int) ([]core.CalendarEventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, date_str, start_at, end_at, start_text, end_text, month
		 FROM calendar_events WHERE month = ? ORDER BY start_at`, month)
	if err != nil {
		return nil, fmt.Errorf("list calendar events for %d: %w", month, err)
	}
	defer rows.Close()
	return scanCalendarEvents(rows)
}

func scanCalendarEvents(rows rowScanner) ([]core.CalendarEventRecord, error) {
	var out []core.CalendarEventRecord
	for rows.Next() {
		var e core.CalendarEventRecord
		var start, end string
		if err := rows.Scan(&e.ID, &e.Title, &e.DateStr, &start, &end, &e.StartText, &e.EndText, &e.Month); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		e.Start = decodeTime(start)
		e.End = decodeTime(end)
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}
