package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/pkg/enums"
)

// Notification stores in-app messages targeted at a user, a role, or everyone.
type Notification struct {
	ID           uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID     *uuid.UUID                 `gorm:"column:sender_id;type:uuid"`
	Audience     enums.NotificationAudience `gorm:"column:audience;type:notification_audience;not null"`
	ReceiverID   *uuid.UUID                 `gorm:"column:receiver_id;type:uuid;index"`
	ReceiverRole *enums.UserRole            `gorm:"column:receiver_role;type:user_role"`
	Title        string                     `gorm:"column:title;not null"`
	Message      string                     `gorm:"column:message;not null"`
	ReadAt       *time.Time                 `gorm:"column:read_at"`
	CreatedAt    time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
