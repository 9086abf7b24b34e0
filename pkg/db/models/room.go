package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/pkg/enums"
)

// Room is a bookable unit inside a hostel. Status is owned by the
// allotment flow: Occupied is set when active allotments reach capacity,
// Under Maintenance is set manually and blocks allocation.
type Room struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	HostelID  uuid.UUID        `gorm:"column:hostel_id;type:uuid;not null;index"`
	RoomNo    string           `gorm:"column:room_no;not null"`
	Capacity  int              `gorm:"column:capacity;not null"`
	Status    enums.RoomStatus `gorm:"column:status;type:room_status;not null;default:'Vacant'"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
