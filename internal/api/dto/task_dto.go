package dto

import "github.com/spec-kit/housekeeping-service/internal/domain"

// TaskCreateRequest payload for POST /task.
type TaskCreateRequest struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
	Room     *int64 `json:"room"`
}

// TaskResponse response shape. DoneOn is a calendar date string, absent
// until the task is completed.
type TaskResponse struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	Assignee string            `json:"assignee"`
	Room     *int64            `json:"room"`
	Status   domain.TaskStatus `json:"status"`
	DoneOn   *string           `json:"doneOn"`
}
