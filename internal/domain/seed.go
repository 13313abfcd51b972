package domain

import "time"

func int64Ptr(v int64) *int64 { return &v }

func datePtr(value string) *time.Time {
	t, err := time.Parse(ActivityDateLayout, value)
	if err != nil {
		panic(err)
	}
	return &t
}

// SeedStaff returns the default staff roster loaded into a fresh store.
func SeedStaff() []Staff {
	return []Staff{
		{ID: 1, Name: "Alice Johnson", Role: "Housekeeper", Type: "Room Cleaning", Status: StaffStatusActive, Assigned: 5},
		{ID: 2, Name: "Bob Smith", Role: "Housekeeper", Type: "Floor Cleaning", Status: StaffStatusActive, Assigned: 3},
		{ID: 3, Name: "Charlie Brown", Role: "Housekeeper", Type: "Public Area", Status: StaffStatusActive, Assigned: 2},
		{ID: 4, Name: "Diana Miller", Role: "Maintenance", Type: "Maintenance", Status: StaffStatusActive, Assigned: 1},
		{ID: 5, Name: "Eve Davis", Role: "Housekeeper", Type: "Laundry", Status: StaffStatusInactive, Assigned: 0},
		{ID: 6, Name: "Grace Taylor", Role: "Supervisor", Type: "Food Service", Status: StaffStatusActive, Assigned: 4},
	}
}

// SeedRooms returns the default room inventory.
func SeedRooms() []Room {
	return []Room{
		{ID: 101, Status: RoomStatusVacant},
		{ID: 102, Status: RoomStatusOccupied},
		{ID: 103, Status: RoomStatusNeeds},
		{ID: 104, Status: RoomStatusVacant},
		{ID: 105, Status: RoomStatusNeeds},
		{ID: 201, Status: RoomStatusOccupied},
		{ID: 202, Status: RoomStatusVacant},
	}
}

// SeedTasks returns the default task board.
func SeedTasks() []Task {
	return []Task{
		{ID: 1, Title: "Room 101 – Standard Clean", Assignee: "Alice Johnson", AssigneeID: int64Ptr(1), Room: int64Ptr(101), Status: TaskStatusPending},
		{ID: 2, Title: "Lobby – Floor Polish", Assignee: "Bob Smith", AssigneeID: int64Ptr(2), Status: TaskStatusInProgress},
		{ID: 3, Title: "Room 201 – Deep Clean", Assignee: "Charlie Brown", AssigneeID: int64Ptr(3), Room: int64Ptr(201), Status: TaskStatusCompleted, DoneOn: datePtr("2025-10-11")},
		{ID: 4, Title: "Laundry – Batch 3", Assignee: "Eve Davis", AssigneeID: int64Ptr(5), Status: TaskStatusCompleted, DoneOn: datePtr("2025-10-10")},
		{ID: 5, Title: "Restaurant – Setup", Assignee: "Grace Taylor", AssigneeID: int64Ptr(6), Status: TaskStatusCompleted, DoneOn: datePtr("2025-10-09")},
	}
}
