package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/pkg/enums"
)

// Hostel groups rooms under one building and an optional warden.
type Hostel struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string           `gorm:"column:name;not null;uniqueIndex"`
	HostelType enums.HostelType `gorm:"column:hostel_type;type:hostel_type;not null"`
	Location   *string          `gorm:"column:location"`
	WardenID   *uuid.UUID       `gorm:"column:warden_id;type:uuid"`
	TotalRooms int              `gorm:"column:total_rooms;not null;default:0"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
