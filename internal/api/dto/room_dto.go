package dto

import "github.com/spec-kit/housekeeping-service/internal/domain"

// RoomStatusRequest payload for PATCH /room/:id.
type RoomStatusRequest struct {
	Status domain.RoomStatus `json:"status"`
}

// RoomResponse response shape.
type RoomResponse struct {
	ID     int64             `json:"id"`
	Status domain.RoomStatus `json:"status"`
}
