package rooms

import (
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateRoomInput carries the fields for adding a room to a hostel.
type CreateRoomInput struct {
	HostelID uuid.UUID
	RoomNo   string
	Capacity int
}

// UpdateRoomInput lists the mutable room fields. Nil means unchanged.
// Status changes go through SetMaintenance or the allotment flow, never here.
type UpdateRoomInput struct {
	RoomNo   *string
	Capacity *int
}

// SearchFilters narrows a room search. Zero values mean no filter; RoomNo
// matches case-insensitively as a substring.
type SearchFilters struct {
	HostelID   uuid.UUID
	Status     enums.RoomStatus
	HostelType enums.HostelType
	RoomNo     string
}

// RoomSummary is a room joined with its hostel and live occupancy counts.
type RoomSummary struct {
	ID               uuid.UUID        `gorm:"column:id"`
	HostelID         uuid.UUID        `gorm:"column:hostel_id"`
	RoomNo           string           `gorm:"column:room_no"`
	Capacity         int              `gorm:"column:capacity"`
	Status           enums.RoomStatus `gorm:"column:status"`
	HostelName       string           `gorm:"column:hostel_name"`
	HostelType       enums.HostelType `gorm:"column:hostel_type"`
	CurrentOccupants int              `gorm:"column:current_occupants"`
	AvailableSpots   int              `gorm:"column:available_spots"`
}

// RoomOccupant is one active resident of a room.
type RoomOccupant struct {
	StudentID     uuid.UUID `gorm:"column:student_id"`
	Name          string    `gorm:"column:name"`
	RegNo         string    `gorm:"column:reg_no"`
	Department    string    `gorm:"column:department"`
	YearOfStudy   int       `gorm:"column:year_of_study"`
	AllotmentDate time.Time `gorm:"column:allotment_date"`
}

// RoomOccupancy bundles a room summary with its current occupants.
type RoomOccupancy struct {
	RoomSummary
	Occupants []RoomOccupant
}
