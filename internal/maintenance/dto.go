package maintenance

import (
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateRequestInput carries the fields for raising a maintenance ticket.
type CreateRequestInput struct {
	StudentID   uuid.UUID
	RoomID      uuid.UUID
	Category    enums.MaintenanceCategory
	Description string
}

// UpdateStatusInput moves a ticket through the Pending -> In Progress ->
// Completed state machine. AssignedTo is optional staff attribution.
type UpdateStatusInput struct {
	RequestID  uuid.UUID
	Status     enums.MaintenanceStatus
	AssignedTo *string
}

// ListFilters narrows maintenance listings. Zero values mean no filter.
type ListFilters struct {
	StudentID uuid.UUID
	HostelID  uuid.UUID
	Status    enums.MaintenanceStatus
}

// Statistics aggregates ticket counts by status and category over the
// reporting window.
type Statistics struct {
	TotalRequests      int64 `gorm:"column:total_requests"`
	PendingRequests    int64 `gorm:"column:pending_requests"`
	InProgressRequests int64 `gorm:"column:in_progress_requests"`
	CompletedRequests  int64 `gorm:"column:completed_requests"`
	ElectricalRequests int64 `gorm:"column:electrical_requests"`
	PlumbingRequests   int64 `gorm:"column:plumbing_requests"`
	CarpentryRequests  int64 `gorm:"column:carpentry_requests"`
	CleaningRequests   int64 `gorm:"column:cleaning_requests"`
	OtherRequests      int64 `gorm:"column:other_requests"`
}
