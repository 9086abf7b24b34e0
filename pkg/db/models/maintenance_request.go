package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/pkg/enums"
)

// MaintenanceRequest tracks a repair ticket raised by a student for a room.
type MaintenanceRequest struct {
	ID          uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentID   uuid.UUID                 `gorm:"column:student_id;type:uuid;not null;index"`
	RoomID      uuid.UUID                 `gorm:"column:room_id;type:uuid;not null;index"`
	Category    enums.MaintenanceCategory `gorm:"column:category;type:maintenance_category;not null"`
	Description string                    `gorm:"column:description;not null"`
	Status      enums.MaintenanceStatus   `gorm:"column:status;type:maintenance_status;not null;default:'Pending'"`
	AssignedTo  *string                   `gorm:"column:assigned_to"`
	ResolvedAt  *time.Time                `gorm:"column:resolved_at"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
