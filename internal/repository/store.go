package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wtms/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store adalah gateway persistence. Engine dan Manager hanya bicara lewat
// interface ini, sehingga handle transaksi bisa diteruskan secara eksplisit.
type Store interface {
	// Workers
	CreateWorker(ctx context.Context, w *models.Worker) error
	GetWorker(ctx context.Context, id int64) (models.Worker, error)
	GetWorkerByEmail(ctx context.Context, email string) (models.Worker, error)
	WorkerExists(ctx context.Context, id int64) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, workerID int64) (bool, error)
	UpdateWorker(ctx context.Context, w *models.Worker) error
	UpdateProfileImage(ctx context.Context, workerID int64, path string) error

	// Works
	CreateWork(ctx context.Context, w *models.Work) error
	MarkOverdue(ctx context.Context, workerID int64, today models.Date) (int64, error)
	ListWorks(ctx context.Context, workerID int64) ([]models.WorkItem, error)
	GetWorkForUpdate(ctx context.Context, workID, workerID int64) (models.Work, error)
	MarkCompleted(ctx context.Context, workID, workerID int64) (int64, error)

	// Submissions
	LockSubmission(ctx context.Context, workID, workerID int64) error
	GetSubmission(ctx context.Context, workID, workerID int64) (models.Submission, error)
	InsertSubmission(ctx context.Context, s *models.Submission) error
	UpdateSubmission(ctx context.Context, workID, workerID int64, text string, at time.Time) (models.Submission, error)
	UpdateSubmissionByID(ctx context.Context, id, workerID int64, text string, at time.Time) (models.Submission, error)
	ListSubmissions(ctx context.Context, workerID int64) ([]models.SubmissionItem, error)

	// WithTx menjalankan fn di dalam satu transaksi. Error atau panic dari fn
	// membuat semua write di-rollback.
	WithTx(ctx context.Context, fn func(Store) error) error
}

// queryer dipenuhi oleh *sqlx.DB maupun *sqlx.Tx.
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Postgres struct {
	db *sqlx.DB
	q  queryer
	tx *sqlx.Tx
}

func NewPostgres(db *sql.DB) *Postgres {
	x := sqlx.NewDb(db, "postgres")
	return &Postgres{db: x, q: x}
}

func (p *Postgres) WithTx(ctx context.Context, fn func(Store) error) (err error) {
	// Sudah di dalam transaksi: pakai transaksi yang sama.
	if p.tx != nil {
		return fn(p)
	}

	tx, err := p.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return mapError("begin transaction", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&Postgres{db: p.db, q: tx, tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// mapError menerjemahkan error driver ke error kind domain.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, models.ErrConflict)
	default:
		return fmt.Errorf("%w: %s: %w", models.ErrPersistence, op, err)
	}
}

var errNoRows = sql.ErrNoRows

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
