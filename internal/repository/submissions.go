package repository

import (
	"context"
	"time"

	"wtms/internal/models"
)

const submissionColumns = "id, work_id, worker_id, submission_text, submitted_at"

// LockSubmission mengambil advisory lock transaksi untuk pasangan
// (work, worker). Lock dilepas otomatis saat commit atau rollback.
func (p *Postgres) LockSubmission(ctx context.Context, workID, workerID int64) error {
	_, err := p.q.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1::int, $2::int)", workID, workerID)
	return mapError("lock submission", err)
}

func (p *Postgres) GetSubmission(ctx context.Context, workID, workerID int64) (models.Submission, error) {
	var s models.Submission
	err := p.q.GetContext(ctx, &s,
		"SELECT "+submissionColumns+" FROM tbl_submissions WHERE work_id = $1 AND worker_id = $2",
		workID, workerID)
	return s, mapError("get submission", err)
}

func (p *Postgres) InsertSubmission(ctx context.Context, s *models.Submission) error {
	err := p.q.QueryRowxContext(ctx,
		`INSERT INTO tbl_submissions (work_id, worker_id, submission_text, submitted_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		s.WorkID, s.WorkerID, s.SubmissionText, s.SubmittedAt,
	).Scan(&s.ID)
	return mapError("insert submission", err)
}

func (p *Postgres) UpdateSubmission(ctx context.Context, workID, workerID int64, text string, at time.Time) (models.Submission, error) {
	var s models.Submission
	err := p.q.GetContext(ctx, &s,
		`UPDATE tbl_submissions SET submission_text = $1, submitted_at = $2
		WHERE work_id = $3 AND worker_id = $4
		RETURNING `+submissionColumns,
		text, at, workID, workerID)
	return s, mapError("update submission", err)
}

func (p *Postgres) UpdateSubmissionByID(ctx context.Context, id, workerID int64, text string, at time.Time) (models.Submission, error) {
	var s models.Submission
	err := p.q.GetContext(ctx, &s,
		`UPDATE tbl_submissions SET submission_text = $1, submitted_at = $2
		WHERE id = $3 AND worker_id = $4
		RETURNING `+submissionColumns,
		text, at, id, workerID)
	return s, mapError("edit submission", err)
}

func (p *Postgres) ListSubmissions(ctx context.Context, workerID int64) ([]models.SubmissionItem, error) {
	query := `SELECT s.id AS submission_id, s.work_id, w.title AS task_title,
			w.description AS task_description, s.submission_text, s.submitted_at,
			w.due_date, w.status AS task_status
		FROM tbl_submissions s
		JOIN tbl_works w ON w.id = s.work_id
		WHERE s.worker_id = $1
		ORDER BY s.submitted_at DESC, s.id DESC`
	items := []models.SubmissionItem{}
	if err := p.q.SelectContext(ctx, &items, query, workerID); err != nil {
		return nil, mapError("list submissions", err)
	}
	return items, nil
}
