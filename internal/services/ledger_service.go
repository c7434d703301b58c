package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/amqp"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/report"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

// Change-notification domains.
const (
	DomainLedger   = "ledger"
	DomainBudget   = "budget"
	DomainCalendar = "calendar"
	DomainMeals    = "meals"
	DomainExercise = "exercise"
)

// ChangePublisher publishes record-change notifications. *amqp.Client
// satisfies it; tests substitute a fake.
type ChangePublisher interface {
	PublishRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error
}

// LedgerService orchestrates transaction and budget-config operations
// across SQLite and AMQP.
type LedgerService struct {
	storage   *storage.SQLiteRepository
	publisher ChangePublisher
	loc       *time.Location
}

func NewLedgerService(storage *storage.SQLiteRepository, publisher ChangePublisher, loc *time.Location) *LedgerService {
	if loc == nil {
		loc = time.Local
	}
	return &LedgerService{storage: storage, publisher: publisher, loc: loc}
}

// CreateTransaction saves a transaction locally and publishes a change
// notification. Publish failures never fail the request; the record is
// already durable and summaries can be rebuilt.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.TransactionRecord) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	s.notify(ctx, DomainLedger, id, amqp.ActionCreated, t.OccurredOn)
	return id, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.TransactionRecord) error {
	if err := t.Validate(); err != nil {
		return err
	}

	// The update may move the record to a different day; both days need a
	// rebuild, so notify for the old day as well.
	previous, err := s.storage.GetTransaction(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	if err := s.storage.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	s.notify(ctx, DomainLedger, t.ID, amqp.ActionUpdated, t.OccurredOn)
	if !sameLocalDay(previous.OccurredOn, t.OccurredOn, s.loc) {
		s.notify(ctx, DomainLedger, t.ID, amqp.ActionUpdated, previous.OccurredOn)
	}
	return nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	previous, err := s.storage.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.notify(ctx, DomainLedger, id, amqp.ActionDeleted, previous.OccurredOn)
	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id int64) (core.TransactionRecord, error) {
	return s.storage.GetTransaction(ctx, id)
}

// ListTransactions returns records in [from, to] filtered by an optional
// keyword and direction. A blank keyword matches everything.
func (s *LedgerService) ListTransactions(ctx context.Context, from, to time.Time, keyword string, dir report.DirectionFilter) ([]core.TransactionRecord, error) {
	records, err := s.storage.ListTransactions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return report.FilterTransactions(records, keyword, dir), nil
}

func (s *LedgerService) CreateBudgetConfig(ctx context.Context, c core.RecurringBudgetConfig) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.CreateBudgetConfig(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("save budget config: %w", err)
	}
	s.notify(ctx, DomainBudget, id, amqp.ActionCreated, time.Now())
	return id, nil
}

func (s *LedgerService) UpdateBudgetConfig(ctx context.Context, c core.RecurringBudgetConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateBudgetConfig(ctx, c); err != nil {
		return fmt.Errorf("update budget config: %w", err)
	}
	s.notify(ctx, DomainBudget, c.ID, amqp.ActionUpdated, time.Now())
	return nil
}

func (s *LedgerService) DeleteBudgetConfig(ctx context.Context, id int64) error {
	if err := s.storage.DeleteBudgetConfig(ctx, id); err != nil {
		return fmt.Errorf("delete budget config: %w", err)
	}
	s.notify(ctx, DomainBudget, id, amqp.ActionDeleted, time.Now())
	return nil
}

func (s *LedgerService) ListBudgetConfigs(ctx context.Context, keyword string) ([]core.RecurringBudgetConfig, error) {
	configs, err := s.storage.ListBudgetConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budget configs: %w", err)
	}
	return report.FilterKeyword(configs, keyword), nil
}

func (s *LedgerService) notify(ctx context.Context, domain string, id int64, action string, at time.Time) {
	publishChange(ctx, s.publisher, s.loc, domain, id, action, at)
}

// publishChange sends a best-effort change notification. Failures are
// logged, never propagated: the record is already saved locally and the
// worker can rebuild summaries from scratch.
func publishChange(ctx context.Context, publisher ChangePublisher, loc *time.Location, domain string, id int64, action string, at time.Time) {
	if publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping change message", "domain", domain)
		return
	}

	day := at.In(loc).Format("2006-01-02")
	msg := amqp.NewRecordChangeMessage(domain, id, action, day)
	if err := publisher.PublishRecordChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"domain", domain, "id", id, "error", err)
	}
}

func sameLocalDay(a, b time.Time, loc *time.Location) bool {
	return a.In(loc).Format("2006-01-02") == b.In(loc).Format("2006-01-02")
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if closer, ok := s.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
