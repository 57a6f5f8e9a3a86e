package models

import "sort"

// WorkStatus is the lifecycle state of a work.
type WorkStatus string

const (
	StatusPending   WorkStatus = "pending"
	StatusOverdue   WorkStatus = "overdue"
	StatusCompleted WorkStatus = "completed"
)

// IsValidWorkStatus reports whether s is one of the known statuses.
func IsValidWorkStatus(s WorkStatus) bool {
	switch s {
	case StatusPending, StatusOverdue, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are possible.
func (s WorkStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// Submittable reports whether a first submission may be created for a work
// in this status.
func (s WorkStatus) Submittable() bool {
	return s == StatusPending || s == StatusOverdue
}

// Rank is the listing priority: overdue first, then pending, then completed.
// Unknown statuses sort last.
func (s WorkStatus) Rank() int {
	switch s {
	case StatusOverdue:
		return 1
	case StatusPending:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 4
	}
}

// DeriveStatus recomputes the status of a work on read. Completed is terminal.
// A pending work whose due date is today or earlier is overdue.
func DeriveStatus(status WorkStatus, due, today Date) WorkStatus {
	if status == StatusPending && !due.After(today) {
		return StatusOverdue
	}
	return status
}

// SortWorkItems orders items by status rank, then ascending due date, then id.
func SortWorkItems(items []WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := a.Status.Rank(), b.Status.Rank(); ra != rb {
			return ra < rb
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.ID < b.ID
	})
}

// SortSubmissionItems orders the feed by most recent submission first.
func SortSubmissionItems(items []SubmissionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.After(b.SubmittedAt)
		}
		return a.SubmissionID > b.SubmissionID
	})
}
