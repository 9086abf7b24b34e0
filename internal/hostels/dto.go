package hostels

import (
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateHostelInput carries the fields for registering a new hostel.
type CreateHostelInput struct {
	Name       string
	HostelType enums.HostelType
	Location   *string
	WardenID   *uuid.UUID
}

// UpdateHostelInput lists the mutable hostel fields. Nil means unchanged.
type UpdateHostelInput struct {
	Name     *string
	Location *string
	WardenID *uuid.UUID
}
