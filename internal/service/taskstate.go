package service

import (
	"context"
	"fmt"
	"time"

	"wtms/internal/models"
	"wtms/internal/repository"
	"wtms/pkg/logger"
	"wtms/pkg/telemetry"

	"go.uber.org/zap"
)

// Engine memegang aturan lifecycle work: pending -> overdue -> completed.
type Engine struct {
	store repository.Store
	now   func() time.Time
	loc   *time.Location
}

type EngineOption func(*Engine)

// WithClock mengganti sumber waktu, dipakai di test.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithLocation menentukan zona waktu untuk menghitung tanggal "hari ini".
func WithLocation(loc *time.Location) EngineOption {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func NewEngine(store repository.Store, opts ...EngineOption) *Engine {
	e := &Engine{store: store, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today adalah tanggal kalender saat ini di lokasi engine.
func (e *Engine) Today() models.Date {
	return models.DateOf(e.now().In(e.loc))
}

// RefreshOverdue menandai work pending milik worker yang due_date <= hari ini
// sebagai overdue dan mengembalikan jumlah baris yang berubah.
func (e *Engine) RefreshOverdue(ctx context.Context, workerID int64) (int64, error) {
	if workerID <= 0 {
		return 0, fmt.Errorf("%w: worker id is required", models.ErrValidation)
	}
	today := e.Today()
	n, err := e.store.MarkOverdue(ctx, workerID, today)
	if err != nil {
		logger.ErrorLogger.Error("Error refreshing overdue works", zap.Int64("worker_id", workerID), zap.Error(err))
		return 0, err
	}
	logger.ContextLogger.Debug("Overdue refresh",
		zap.Int64("worker_id", workerID),
		zap.String("today", today.String()),
		zap.Int64("updated", n),
	)
	if n > 0 {
		telemetry.OverdueTransitions.Add(float64(n))
	}
	return n, nil
}

// ListForWorker mengembalikan work milik worker dengan status terbaru,
// urut overdue, pending, completed lalu due_date dan id.
func (e *Engine) ListForWorker(ctx context.Context, workerID int64) ([]models.WorkItem, error) {
	if workerID <= 0 {
		return nil, fmt.Errorf("%w: worker id is required", models.ErrValidation)
	}
	exists, err := e.store.WorkerExists(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("worker %d: %w", workerID, models.ErrNotFound)
	}

	if _, err := e.RefreshOverdue(ctx, workerID); err != nil {
		return nil, err
	}

	items, err := e.store.ListWorks(ctx, workerID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching works", zap.Int64("worker_id", workerID), zap.Error(err))
		return nil, err
	}

	// Refresh dan completion bisa balapan; status dihitung ulang di sini.
	today := e.Today()
	for i := range items {
		items[i].Status = models.DeriveStatus(items[i].Status, items[i].DueDate, today)
	}
	models.SortWorkItems(items)
	return items, nil
}

// MarkCompleted menyelesaikan work hanya jika work itu milik workerID.
// Kepemilikan yang tidak cocok adalah no-op: changed=false tanpa error.
// store harus handle transaksi milik pemanggil.
func (e *Engine) MarkCompleted(ctx context.Context, store repository.Store, workID, workerID int64) (bool, error) {
	n, err := store.MarkCompleted(ctx, workID, workerID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
