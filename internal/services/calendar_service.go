package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/amqp"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

// CalendarService manages monthly calendar events.
type CalendarService struct {
	storage   *storage.SQLiteRepository
	publisher ChangePublisher
	loc       *time.Location
}

func NewCalendarService(storage *storage.SQLiteRepository, publisher ChangePublisher, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{storage: storage, publisher: publisher, loc: loc}
}

func (s *CalendarService) CreateEvent(ctx context.Context, e core.CalendarEventRecord) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateCalendarEvent(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save calendar event: %w", err)
	}

	s.notifyEvent(ctx, id, amqp.ActionCreated, e)
	return id, nil
}

func (s *CalendarService) UpdateEvent(ctx context.Context, e core.CalendarEventRecord) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateCalendarEvent(ctx, e); err != nil {
		return fmt.Errorf("update calendar event: %w", err)
	}
	s.notifyEvent(ctx, e.ID, amqp.ActionUpdated, e)
	return nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.storage.DeleteCalendarEvent(ctx, id); err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	publishChange(ctx, s.publisher, s.loc, DomainCalendar, id, amqp.ActionDeleted, time.Now())
	return nil
}

// EventsForMonth lists events for a YYYYMM index, optionally filtered by a
// title keyword.
func (s *CalendarService) EventsForMonth(ctx context.Context, month int, keyword string) ([]core.CalendarEventRecord, error) {
	events, err := s.storage.ListCalendarEventsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return report.FilterKeyword(events, keyword), nil
}

func (s *CalendarService) notifyEvent(ctx context.Context, id int64, action string, e core.CalendarEventRecord) {
	// Events bucket by their declared day string rather than the start
	// instant, so prefer it when it parses.
	at := e.Start
	if day, err := time.ParseInLocation("2006-01-02", e.DateStr, s.loc); err == nil {
		at = day
	}
	publishChange(ctx, s.publisher, s.loc, DomainCalendar, id, action, at)
}
