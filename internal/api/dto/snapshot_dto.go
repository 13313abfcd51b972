package dto

// ActivityResponse response shape for one feed entry.
type ActivityResponse struct {
	ID    int64  `json:"id"`
	Event string `json:"event"`
	Date  string `json:"date"`
}

// SnapshotResponse is the unified state payload returned by GET /state and
// by every successful write.
type SnapshotResponse struct {
	Staff    []StaffResponse    `json:"staff"`
	Rooms    []RoomResponse     `json:"rooms"`
	Tasks    []TaskResponse     `json:"tasks"`
	Activity []ActivityResponse `json:"activity"`
}
