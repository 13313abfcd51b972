package domain

// RoomStatus enumerates occupancy/cleanliness states for rooms.
type RoomStatus string

const (
	RoomStatusVacant   RoomStatus = "Vacant"
	RoomStatusOccupied RoomStatus = "Occupied"
	RoomStatusNeeds    RoomStatus = "Needs"
)

// ValidRoomStatus reports whether s is one of the three accepted values.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusVacant, RoomStatusOccupied, RoomStatusNeeds:
		return true
	}
	return false
}

// Room models a hotel room. The ID is caller-supplied (the room number).
type Room struct {
	ID     int64
	Status RoomStatus
}
