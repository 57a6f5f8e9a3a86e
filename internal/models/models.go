package models

import (
	"time"
)

type Worker struct {
	ID                           int64     `json:"id" db:"id"`
	FullName                     string    `json:"full_name" db:"full_name"`
	Email                        string    `json:"email" db:"email"`
	PasswordHash                 string    `json:"-" db:"password"`
	Phone                        string    `json:"phone" db:"phone"`
	Address                      string    `json:"address" db:"address"`
	ProfileImage                 *string   `json:"profile_image" db:"profile_image"`
	DateOfBirth                  *Date     `json:"date_of_birth" db:"date_of_birth"`
	Gender                       string    `json:"gender" db:"gender"`
	Nationality                  string    `json:"nationality" db:"nationality"`
	EmergencyContactName         *string   `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactPhone        *string   `json:"emergency_contact_phone" db:"emergency_contact_phone"`
	EmergencyContactRelationship *string   `json:"emergency_contact_relationship" db:"emergency_contact_relationship"`
	City                         *string   `json:"city" db:"city"`
	State                        *string   `json:"state" db:"state"`
	PostalCode                   *string   `json:"postal_code" db:"postal_code"`
	Country                      string    `json:"country" db:"country"`
	CreatedAt                    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                    time.Time `json:"updated_at" db:"updated_at"`
}

// Profile defaults carried over from the registration form.
const (
	DefaultGender      = "prefer_not_to_say"
	DefaultNationality = "Malaysian"
	DefaultCountry     = "Malaysia"
)

// Work is a task assigned to exactly one worker.
type Work struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	AssignedTo   int64      `json:"assigned_to" db:"assigned_to"`
	DateAssigned Date       `json:"date_assigned" db:"date_assigned"`
	DueDate      Date       `json:"due_date" db:"due_date"`
	Status       WorkStatus `json:"status" db:"status"`
}

// WorkItem is one row of a worker's task list: the work plus the worker's
// own submission, if any.
type WorkItem struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	DateAssigned   Date       `json:"date_assigned" db:"date_assigned"`
	DueDate        Date       `json:"due_date" db:"due_date"`
	Status         WorkStatus `json:"status" db:"status"`
	SubmissionID   *int64     `json:"submission_id" db:"submission_id"`
	SubmissionText *string    `json:"submission_text" db:"submission_text"`
	SubmittedAt    *time.Time `json:"submitted_at" db:"submitted_at"`
}

type Submission struct {
	ID             int64     `json:"id" db:"id"`
	WorkID         int64     `json:"work_id" db:"work_id"`
	WorkerID       int64     `json:"worker_id" db:"worker_id"`
	SubmissionText string    `json:"submission_text" db:"submission_text"`
	SubmittedAt    time.Time `json:"submitted_at" db:"submitted_at"`
}

// SubmissionItem is one row of the submission feed.
type SubmissionItem struct {
	SubmissionID    int64      `json:"submission_id" db:"submission_id"`
	WorkID          int64      `json:"work_id" db:"work_id"`
	TaskTitle       string     `json:"task_title" db:"task_title"`
	TaskDescription string     `json:"task_description" db:"task_description"`
	SubmissionText  string     `json:"submission_text" db:"submission_text"`
	SubmittedAt     time.Time  `json:"submitted_at" db:"submitted_at"`
	DueDate         Date       `json:"due_date" db:"due_date"`
	TaskStatus      WorkStatus `json:"task_status" db:"task_status"`
}

// Submission event types pushed to connected clients.
const (
	EventSubmissionCreated = "submission.created"
	EventSubmissionUpdated = "submission.updated"
)

type SubmissionEvent struct {
	Type       string     `json:"type"`
	Submission Submission `json:"submission"`
}
