package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/amqp"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/storage"
)

func newTestWorker(t *testing.T) (*SummaryWorker, *storage.SQLiteRepository) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	rb := services.NewSummaryRebuilder(repo, time.UTC)
	return NewSummaryWorker(nil, rb, time.UTC), repo
}

func TestHandleChangeRebuildsDay(t *testing.T) {
	w, repo := newTestPopulatedWorker(t)
	ctx := context.Background()

	msg := &amqp.RecordChangeMessage{
		Domain: services.DomainLedger,
		ID:     1,
		Action: amqp.ActionCreated,
		Day:    "2024-03-05",
	}
	require.NoError(t, w.HandleChange(ctx, msg))

	rows, err := repo.ListDailySummaries(ctx, services.DomainLedger, "2024-03-05", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 80.0, rows[0].ExpenseTotal)
}

func TestHandleChangeIsIdempotent(t *testing.T) {
	w, repo := newTestPopulatedWorker(t)
	ctx := context.Background()

	msg := &amqp.RecordChangeMessage{
		Domain: services.DomainLedger,
		ID:     1,
		Action: amqp.ActionUpdated,
		Day:    "2024-03-05",
	}
	require.NoError(t, w.HandleChange(ctx, msg))
	require.NoError(t, w.HandleChange(ctx, msg))

	rows, err := repo.ListDailySummaries(ctx, services.DomainLedger, "2024-03-05", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestHandleChangeRejectsBadDay(t *testing.T) {
	w, _ := newTestWorker(t)

	msg := &amqp.RecordChangeMessage{
		Domain: services.DomainLedger,
		ID:     1,
		Action: amqp.ActionCreated,
		Day:    "yesterday",
	}
	assert.Error(t, w.HandleChange(context.Background(), msg))
}

func TestBackfillCoversTrailingWindow(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	_, err := repo.CreateTransaction(ctx, core.TransactionRecord{
		OccurredOn: today.Add(12 * time.Hour),
		Direction:  core.Expense,
		Category:   "Food",
		Name:       "Lunch",
		Amount:     42,
	})
	require.NoError(t, err)

	require.NoError(t, w.Backfill(ctx, 3))

	from := today.AddDate(0, 0, -2).Format("2006-01-02")
	to := today.Format("2006-01-02")
	rows, err := repo.ListDailySummaries(ctx, services.DomainLedger, from, to)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 42.0, rows[2].ExpenseTotal)
}

func TestBackfillZeroWindowIsNoop(t *testing.T) {
	w, _ := newTestWorker(t)
	assert.NoError(t, w.Backfill(context.Background(), 0))
}

func newTestPopulatedWorker(t *testing.T) (*SummaryWorker, *storage.SQLiteRepository) {
	t.Helper()
	w, repo := newTestWorker(t)
	_, err := repo.CreateTransaction(context.Background(), core.TransactionRecord{
		OccurredOn: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		Direction:  core.Expense,
		Category:   "Food",
		Name:       "Lunch",
		Amount:     80,
	})
	require.NoError(t, err)
	return w, repo
}
