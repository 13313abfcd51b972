package events

import (
	"time"

	"github.com/spec-kit/housekeeping-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffAdded        EventType = "staff_added"
	EventStaffUpdated      EventType = "staff_updated"
	EventStaffRemoved      EventType = "staff_removed"
	EventRoomStatusChanged EventType = "room_status_changed"
	EventTaskCreated       EventType = "task_created"
	EventTaskCompleted     EventType = "task_completed"
)

// Event represents a domain event emitted after a committed mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffPayload accompanies staff lifecycle events.
type StaffPayload struct {
	StaffID int64              `json:"staff_id"`
	Name    string             `json:"name"`
	Status  domain.StaffStatus `json:"status,omitempty"`
}

// RoomStatusChangedPayload payload.
type RoomStatusChangedPayload struct {
	RoomID int64             `json:"room_id"`
	Status domain.RoomStatus `json:"status"`
}

// TaskPayload accompanies task lifecycle events.
type TaskPayload struct {
	TaskID   int64             `json:"task_id"`
	Title    string            `json:"title"`
	Assignee string            `json:"assignee,omitempty"`
	RoomID   *int64            `json:"room_id,omitempty"`
	Status   domain.TaskStatus `json:"status"`
}
