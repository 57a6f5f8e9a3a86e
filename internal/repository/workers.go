package repository

import (
	"context"

	"wtms/internal/models"
)

const workerColumns = `id, full_name, email, password, phone, address, profile_image, date_of_birth,
	gender, nationality, emergency_contact_name, emergency_contact_phone,
	emergency_contact_relationship, city, state, postal_code, country, created_at, updated_at`

func (p *Postgres) CreateWorker(ctx context.Context, w *models.Worker) error {
	query := `INSERT INTO tbl_workers (full_name, email, password, phone, address, gender, nationality, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := p.q.QueryRowxContext(ctx, query,
		w.FullName, w.Email, w.PasswordHash, w.Phone, w.Address, w.Gender, w.Nationality, w.Country,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	return mapError("create worker", err)
}

func (p *Postgres) GetWorker(ctx context.Context, id int64) (models.Worker, error) {
	var w models.Worker
	err := p.q.GetContext(ctx, &w, "SELECT "+workerColumns+" FROM tbl_workers WHERE id = $1", id)
	return w, mapError("get worker", err)
}

func (p *Postgres) GetWorkerByEmail(ctx context.Context, email string) (models.Worker, error) {
	var w models.Worker
	err := p.q.GetContext(ctx, &w, "SELECT "+workerColumns+" FROM tbl_workers WHERE LOWER(email) = LOWER($1)", email)
	return w, mapError("get worker by email", err)
}

func (p *Postgres) WorkerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := p.q.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM tbl_workers WHERE id = $1)", id)
	return exists, mapError("check worker", err)
}

func (p *Postgres) EmailTakenByOther(ctx context.Context, email string, workerID int64) (bool, error) {
	var taken bool
	err := p.q.GetContext(ctx, &taken,
		"SELECT EXISTS(SELECT 1 FROM tbl_workers WHERE LOWER(email) = LOWER($1) AND id <> $2)", email, workerID)
	return taken, mapError("check email", err)
}

func (p *Postgres) UpdateWorker(ctx context.Context, w *models.Worker) error {
	query := `UPDATE tbl_workers SET
		full_name = $1, email = $2, phone = $3, address = $4, date_of_birth = $5, gender = $6,
		nationality = $7, emergency_contact_name = $8, emergency_contact_phone = $9,
		emergency_contact_relationship = $10, city = $11, state = $12, postal_code = $13,
		country = $14, updated_at = NOW()
		WHERE id = $15
		RETURNING updated_at`
	err := p.q.QueryRowxContext(ctx, query,
		w.FullName, w.Email, w.Phone, w.Address, w.DateOfBirth, w.Gender,
		w.Nationality, w.EmergencyContactName, w.EmergencyContactPhone,
		w.EmergencyContactRelationship, w.City, w.State, w.PostalCode,
		w.Country, w.ID,
	).Scan(&w.UpdatedAt)
	return mapError("update worker", err)
}

func (p *Postgres) UpdateProfileImage(ctx context.Context, workerID int64, path string) error {
	res, err := p.q.ExecContext(ctx,
		"UPDATE tbl_workers SET profile_image = $1, updated_at = NOW() WHERE id = $2", path, workerID)
	if err != nil {
		return mapError("update profile image", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError("update profile image", err)
	}
	if n == 0 {
		return mapError("update profile image", errNoRows)
	}
	return nil
}
