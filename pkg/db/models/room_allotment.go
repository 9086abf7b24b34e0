package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/pkg/enums"
)

// RoomAllotment links one student to one room for a span of time. Rows are
// never deleted; Vacated rows form the allotment history. A partial unique
// index (uq_room_allotments_active_student) guarantees at most one Active
// row per student.
type RoomAllotment struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentID     uuid.UUID             `gorm:"column:student_id;type:uuid;not null;index"`
	RoomID        uuid.UUID             `gorm:"column:room_id;type:uuid;not null;index"`
	Status        enums.AllotmentStatus `gorm:"column:status;type:allotment_status;not null;default:'Pending'"`
	AllotmentDate time.Time             `gorm:"column:allotment_date;not null"`
	VacatedDate   *time.Time            `gorm:"column:vacated_date"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
