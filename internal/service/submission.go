package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wtms/internal/models"
	"wtms/internal/repository"
	"wtms/pkg/logger"
	"wtms/pkg/telemetry"

	"go.uber.org/zap"
)

// Notifier menerima event submission setelah transaksi commit.
type Notifier interface {
	Notify(workerID int64, event models.SubmissionEvent)
}

type nopNotifier struct{}

func (nopNotifier) Notify(int64, models.SubmissionEvent) {}

type Manager struct {
	store    repository.Store
	engine   *Engine
	notifier Notifier
	now      func() time.Time
}

func NewManager(store repository.Store, engine *Engine, notifier Notifier) *Manager {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Manager{store: store, engine: engine, notifier: notifier, now: engine.now}
}

func (m *Manager) timestamp() time.Time {
	return m.now().UTC()
}

func validateSubmission(workID, workerID int64, text string) error {
	switch {
	case workID <= 0:
		return fmt.Errorf("%w: work id is required", models.ErrValidation)
	case workerID <= 0:
		return fmt.Errorf("%w: worker id is required", models.ErrValidation)
	case strings.TrimSpace(text) == "":
		return fmt.Errorf("%w: submission text is required", models.ErrValidation)
	}
	return nil
}

// SubmitOrEdit membuat submission pertama untuk sebuah work (dan menandai
// work completed di transaksi yang sama), atau mengedit submission yang ada
// jika isEditing.
func (m *Manager) SubmitOrEdit(ctx context.Context, workID, workerID int64, text string, isEditing bool) (models.Submission, error) {
	if err := validateSubmission(workID, workerID, text); err != nil {
		return models.Submission{}, err
	}

	if isEditing {
		sub, err := m.store.UpdateSubmission(ctx, workID, workerID, text, m.timestamp())
		if err != nil {
			return models.Submission{}, err
		}
		m.publish(workerID, models.EventSubmissionUpdated, sub)
		return sub, nil
	}

	var created models.Submission
	err := m.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.LockSubmission(ctx, workID, workerID); err != nil {
			return err
		}
		work, err := tx.GetWorkForUpdate(ctx, workID, workerID)
		if err != nil {
			return err
		}
		if !work.Status.Submittable() {
			return fmt.Errorf("work %d is already %s: %w", workID, work.Status, models.ErrConflict)
		}
		if _, err := tx.GetSubmission(ctx, workID, workerID); err == nil {
			return fmt.Errorf("work %d already has a submission: %w", workID, models.ErrConflict)
		} else if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		created = models.Submission{
			WorkID:         workID,
			WorkerID:       workerID,
			SubmissionText: text,
			SubmittedAt:    m.timestamp(),
		}
		if err := tx.InsertSubmission(ctx, &created); err != nil {
			return err
		}

		changed, err := m.engine.MarkCompleted(ctx, tx, workID, workerID)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("work %d for worker %d: %w", workID, workerID, models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		fields := []zap.Field{zap.Int64("work_id", workID), zap.Int64("worker_id", workerID), zap.Error(err)}
		switch {
		case errors.Is(err, models.ErrConflict):
			telemetry.SubmissionConflicts.Inc()
			logger.AuditLogger.Info("Submission rejected", fields...)
		case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrValidation):
			logger.RequestLogger.Info("Submission rejected", fields...)
		default:
			logger.ErrorLogger.Error("Error submitting work", fields...)
		}
		return models.Submission{}, err
	}

	m.publish(workerID, models.EventSubmissionCreated, created)
	return created, nil
}

func (m *Manager) publish(workerID int64, eventType string, sub models.Submission) {
	action := "edited"
	if eventType == models.EventSubmissionCreated {
		action = "created"
	}
	telemetry.Submissions.WithLabelValues(action).Inc()
	logger.AuditLogger.Info("Submission saved",
		zap.String("action", action),
		zap.Int64("submission_id", sub.ID),
		zap.Int64("work_id", sub.WorkID),
		zap.Int64("worker_id", workerID),
	)
	m.notifier.Notify(workerID, models.SubmissionEvent{Type: eventType, Submission: sub})
}

// GetSubmissionsForWorker mengembalikan feed submission terbaru lebih dulu.
func (m *Manager) GetSubmissionsForWorker(ctx context.Context, workerID int64) ([]models.SubmissionItem, error) {
	if workerID <= 0 {
		return nil, fmt.Errorf("%w: worker id is required", models.ErrValidation)
	}
	items, err := m.store.ListSubmissions(ctx, workerID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching submissions", zap.Int64("worker_id", workerID), zap.Error(err))
		return nil, err
	}
	today := m.engine.Today()
	for i := range items {
		items[i].TaskStatus = models.DeriveStatus(items[i].TaskStatus, items[i].DueDate, today)
	}
	models.SortSubmissionItems(items)
	return items, nil
}

// EditSubmission mengganti teks submission berdasarkan id. Submission yang
// bukan milik workerID dilaporkan sebagai NotFound. Teks yang sama tetap sukses.
func (m *Manager) EditSubmission(ctx context.Context, workerID, submissionID int64, text string) (models.Submission, error) {
	if submissionID <= 0 {
		return models.Submission{}, fmt.Errorf("%w: submission id is required", models.ErrValidation)
	}
	if workerID <= 0 {
		return models.Submission{}, fmt.Errorf("%w: worker id is required", models.ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return models.Submission{}, fmt.Errorf("%w: updated text is required", models.ErrValidation)
	}

	sub, err := m.store.UpdateSubmissionByID(ctx, submissionID, workerID, text, m.timestamp())
	if err != nil {
		return models.Submission{}, err
	}
	m.publish(workerID, models.EventSubmissionUpdated, sub)
	return sub, nil
}
