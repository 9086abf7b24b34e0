package allotments

import (
	"time"

	"github.com/google/uuid"
)

// AllocateInput carries the identifiers needed to place a student in a room.
type AllocateInput struct {
	StudentID uuid.UUID
	RoomID    uuid.UUID
}

// ApplyInput carries the identifiers for a student-initiated application.
// Applications are created Pending and require approval before they count
// against room capacity.
type ApplyInput struct {
	StudentID uuid.UUID
	RoomID    uuid.UUID
}

// VacateInput identifies the active allotment to close. VacatedDate defaults
// to the current time when nil.
type VacateInput struct {
	AllotmentID uuid.UUID
	VacatedDate *time.Time
}

// OccupancyReportRow aggregates room and occupant counts for one hostel.
type OccupancyReportRow struct {
	HostelID         uuid.UUID `gorm:"column:hostel_id"`
	HostelName       string    `gorm:"column:hostel_name"`
	TotalRooms       int       `gorm:"column:total_rooms"`
	VacantRooms      int       `gorm:"column:vacant_rooms"`
	OccupiedRooms    int       `gorm:"column:occupied_rooms"`
	MaintenanceRooms int       `gorm:"column:maintenance_rooms"`
	TotalCapacity    int       `gorm:"column:total_capacity"`
	ActiveStudents   int       `gorm:"column:active_students"`
	OccupancyPercent float64   `gorm:"-"`
}
