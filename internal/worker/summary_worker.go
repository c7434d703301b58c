// Package worker maintains the derived daily_summaries table from the
// stream of record change notifications.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/amqp"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

// SummaryWorker consumes record change messages and rebuilds the affected
// day's summary row. Rebuilds are idempotent, so redelivered or duplicated
// messages are harmless.
type SummaryWorker struct {
	client    *amqp.Client
	rebuilder *services.SummaryRebuilder
	loc       *time.Location
}

func NewSummaryWorker(client *amqp.Client, rebuilder *services.SummaryRebuilder, loc *time.Location) *SummaryWorker {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryWorker{
		client:    client,
		rebuilder: rebuilder,
		loc:       loc,
	}
}

// HandleChange rebuilds the summary row for the day a change touched.
func (w *SummaryWorker) HandleChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	slog.InfoContext(ctx, "Processing record change",
		"domain", msg.Domain,
		"id", msg.ID,
		"action", msg.Action,
		"day", msg.Day)

	if err := w.rebuilder.RebuildDay(ctx, msg.Domain, msg.Day); err != nil {
		return fmt.Errorf("rebuild %s summary for %s: %w", msg.Domain, msg.Day, err)
	}
	return nil
}

// Backfill rebuilds summaries for the trailing window so rows missed while
// the worker was down catch up on startup.
func (w *SummaryWorker) Backfill(ctx context.Context, windowDays int) error {
	if windowDays < 1 {
		return nil
	}
	now := time.Now().In(w.loc)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.loc)
	from := to.AddDate(0, 0, -(windowDays - 1))

	for _, domain := range []string{services.DomainLedger, services.DomainMeals, services.DomainExercise} {
		if err := w.rebuilder.RebuildRange(ctx, domain, from, to); err != nil {
			return fmt.Errorf("backfill %s summaries: %w", domain, err)
		}
	}
	slog.InfoContext(ctx, "Summary backfill complete",
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))
	return nil
}

// Run consumes change messages until ctx is cancelled. Handler errors are
// returned to the consumer loop, which requeues the message.
func (w *SummaryWorker) Run(ctx context.Context) error {
	return w.client.ConsumeRecordChanges(ctx, func(msg *amqp.RecordChangeMessage) error {
		return w.HandleChange(ctx, msg)
	})
}
