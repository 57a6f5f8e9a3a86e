package repository

import (
	"database/sql"
	"fmt"

	"wtms/pkg/logger"

	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS tbl_workers (
    id SERIAL PRIMARY KEY,
    full_name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    password VARCHAR(255) NOT NULL,
    phone VARCHAR(50) NOT NULL,
    address TEXT NOT NULL,
    profile_image VARCHAR(255),
    date_of_birth DATE,
    gender VARCHAR(50) NOT NULL DEFAULT 'prefer_not_to_say',
    nationality VARCHAR(100) NOT NULL DEFAULT 'Malaysian',
    emergency_contact_name VARCHAR(255),
    emergency_contact_phone TEXT,
    emergency_contact_relationship VARCHAR(100),
    city VARCHAR(100),
    state VARCHAR(100),
    postal_code VARCHAR(20),
    country VARCHAR(100) NOT NULL DEFAULT 'Malaysia',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tbl_works (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    assigned_to INT NOT NULL REFERENCES tbl_workers (id),
    date_assigned DATE NOT NULL DEFAULT CURRENT_DATE,
    due_date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'overdue', 'completed'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_workers_email_lower ON tbl_workers (LOWER(email));

CREATE INDEX IF NOT EXISTS idx_works_assigned_status ON tbl_works (assigned_to, status);

CREATE TABLE IF NOT EXISTS tbl_submissions (
    id SERIAL PRIMARY KEY,
    work_id INT NOT NULL REFERENCES tbl_works (id),
    worker_id INT NOT NULL REFERENCES tbl_workers (id),
    submission_text TEXT NOT NULL,
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_submissions_work_worker UNIQUE (work_id, worker_id)
);
`

func CreateTableIfNotExists(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		logger.ErrorLogger.Error("Error creating table", zap.Error(err))
		return fmt.Errorf("create tables: %w", err)
	}
	logger.SystemLogger.Info("Table 'tbl_workers', 'tbl_works', 'tbl_submissions' are ready.")
	return nil
}

func DeleteAllTable(db *sql.DB) error {
	query := `
    DROP TABLE IF EXISTS tbl_submissions;
    DROP TABLE IF EXISTS tbl_works;
    DROP TABLE IF EXISTS tbl_workers;
    `
	if _, err := db.Exec(query); err != nil {
		logger.ErrorLogger.Error("Error deleting table", zap.Error(err))
		return fmt.Errorf("drop tables: %w", err)
	}
	logger.SystemLogger.Info("Table 'tbl_workers', 'tbl_works', 'tbl_submissions' are deleted.")
	return nil
}
