package domain

import "time"

// TaskStatus enumerates lifecycle states for cleaning/maintenance tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Task models a unit of housekeeping work.
//
// Assignee is a denormalized display name stored verbatim; AssigneeID is a
// best-effort link resolved by exact name match at creation time and never
// re-validated afterwards, so the two can drift apart when staff records
// change. Room is a weak reference by room number.
type Task struct {
	ID         int64
	Title      string
	Assignee   string
	AssigneeID *int64
	Room       *int64
	Status     TaskStatus
	DoneOn     *time.Time
}
