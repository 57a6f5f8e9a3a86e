package repository

import (
	"context"

	"wtms/internal/models"
)

func (p *Postgres) CreateWork(ctx context.Context, w *models.Work) error {
	if w.Status == "" {
		w.Status = models.StatusPending
	}
	query := `INSERT INTO tbl_works (title, description, assigned_to, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date_assigned`
	err := p.q.QueryRowxContext(ctx, query,
		w.Title, w.Description, w.AssignedTo, w.DueDate, w.Status,
	).Scan(&w.ID, &w.DateAssigned)
	return mapError("create work", err)
}

// MarkOverdue memindahkan semua work pending milik worker yang due_date-nya
// sudah lewat atau hari ini menjadi overdue. Completed tidak pernah disentuh.
func (p *Postgres) MarkOverdue(ctx context.Context, workerID int64, today models.Date) (int64, error) {
	res, err := p.q.ExecContext(ctx,
		`UPDATE tbl_works SET status = 'overdue'
		WHERE assigned_to = $1 AND status = 'pending' AND due_date <= $2::date`,
		workerID, today)
	if err != nil {
		return 0, mapError("mark overdue", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError("mark overdue", err)
	}
	return n, nil
}

func (p *Postgres) ListWorks(ctx context.Context, workerID int64) ([]models.WorkItem, error) {
	query := `SELECT w.id, w.title, w.description, w.date_assigned, w.due_date, w.status,
			s.id AS submission_id, s.submission_text, s.submitted_at
		FROM tbl_works w
		LEFT JOIN tbl_submissions s ON s.work_id = w.id AND s.worker_id = w.assigned_to
		WHERE w.assigned_to = $1
		ORDER BY CASE w.status WHEN 'overdue' THEN 1 WHEN 'pending' THEN 2 WHEN 'completed' THEN 3 ELSE 4 END,
			w.due_date ASC, w.id ASC`
	items := []models.WorkItem{}
	if err := p.q.SelectContext(ctx, &items, query, workerID); err != nil {
		return nil, mapError("list works", err)
	}
	return items, nil
}

// GetWorkForUpdate mengunci baris work selama transaksi berjalan.
func (p *Postgres) GetWorkForUpdate(ctx context.Context, workID, workerID int64) (models.Work, error) {
	var w models.Work
	err := p.q.GetContext(ctx, &w,
		`SELECT id, title, description, assigned_to, date_assigned, due_date, status
		FROM tbl_works WHERE id = $1 AND assigned_to = $2 FOR UPDATE`,
		workID, workerID)
	return w, mapError("get work", err)
}

func (p *Postgres) MarkCompleted(ctx context.Context, workID, workerID int64) (int64, error) {
	res, err := p.q.ExecContext(ctx,
		"UPDATE tbl_works SET status = 'completed' WHERE id = $1 AND assigned_to = $2",
		workID, workerID)
	if err != nil {
		return 0, mapError("mark completed", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError("mark completed", err)
	}
	return n, nil
}
