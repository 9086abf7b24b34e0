package enums

import "fmt"

// RoomStatus describes the allowed values for the `status` column in rooms.
type RoomStatus string

const (
	RoomStatusVacant           RoomStatus = "Vacant"
	RoomStatusOccupied         RoomStatus = "Occupied"
	RoomStatusUnderMaintenance RoomStatus = "Under Maintenance"
)

var validRoomStatuses = []RoomStatus{
	RoomStatusVacant,
	RoomStatusOccupied,
	RoomStatusUnderMaintenance,
}

// IsValid reports whether the value matches the canonical room status enum.
func (r RoomStatus) IsValid() bool {
	for _, candidate := range validRoomStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoomStatus converts the raw string to RoomStatus.
func ParseRoomStatus(value string) (RoomStatus, error) {
	for _, candidate := range validRoomStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid room status %q", value)
}
