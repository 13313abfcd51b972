package dto

import "github.com/spec-kit/housekeeping-service/internal/domain"

// StaffCreateRequest payload for POST /staff. Role, type and status fall
// back to roster defaults when omitted.
type StaffCreateRequest struct {
	Name     string             `json:"name"`
	Role     string             `json:"role"`
	Type     string             `json:"type"`
	Status   domain.StaffStatus `json:"status"`
	Assigned int                `json:"assigned"`
}

// StaffUpdateRequest payload for PATCH /staff/:id. Absent fields retain
// their prior values.
type StaffUpdateRequest struct {
	Name     *string             `json:"name"`
	Role     *string             `json:"role"`
	Type     *string             `json:"type"`
	Status   *domain.StaffStatus `json:"status"`
	Assigned *int                `json:"assigned"`
}

// StaffResponse response shape.
type StaffResponse struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Role     string             `json:"role"`
	Type     string             `json:"type"`
	Status   domain.StaffStatus `json:"status"`
	Assigned int                `json:"assigned"`
}
