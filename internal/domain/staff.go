package domain

// StaffStatus enumerates employment states for staff members.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "Active"
	StaffStatusInactive StaffStatus = "Inactive"
)

// Staff models a housekeeping employee.
type Staff struct {
	ID       int64
	Name     string
	Role     string
	Type     string
	Status   StaffStatus
	Assigned int
}
