package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/api/responses"
	"github.com/campusworks/hosteldesk-backend/api/validators"
	"github.com/campusworks/hosteldesk-backend/internal/maintenance"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
)

type createMaintenanceRequest struct {
	RoomID      uuid.UUID                 `json:"room_id" validate:"required"`
	Category    enums.MaintenanceCategory `json:"category" validate:"required"`
	Description string                    `json:"description" validate:"required"`
}

type updateMaintenanceStatusRequest struct {
	Status     enums.MaintenanceStatus `json:"status" validate:"required"`
	AssignedTo *string                 `json:"assigned_to,omitempty"`
}

// MaintenanceCreate files a repair ticket for the requesting student.
func MaintenanceCreate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		studentID, err := uuid.Parse(middleware.StudentIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "student context missing"))
			return
		}

		var body createMaintenanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Create(r.Context(), maintenance.CreateRequestInput{
			StudentID:   studentID,
			RoomID:      body.RoomID,
			Category:    body.Category,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// StudentMaintenanceList returns the requesting student's tickets.
func StudentMaintenanceList(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		studentID, err := uuid.Parse(middleware.StudentIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "student context missing"))
			return
		}

		list, err := svc.List(r.Context(), maintenance.ListFilters{StudentID: studentID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// WardenMaintenanceList returns tickets for rooms in the warden's hostel,
// optionally narrowed by status.
func WardenMaintenanceList(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		hostelID, err := wardenHostelID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := maintenance.ListFilters{HostelID: hostelID}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.MaintenanceStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = status
		}

		list, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// MaintenanceOverdueList returns open tickets in the warden's hostel that
// have sat unresolved past the overdue threshold.
func MaintenanceOverdueList(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		hostelID, err := wardenHostelID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListOverdue(r.Context(), hostelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// MaintenanceStatistics aggregates recent ticket counts for the warden's
// hostel.
func MaintenanceStatistics(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		hostelID, err := wardenHostelID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.GetStatistics(r.Context(), hostelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// MaintenanceUpdateStatus moves a ticket through its lifecycle.
func MaintenanceUpdateStatus(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		id, err := parsePathID(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMaintenanceStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.UpdateStatus(r.Context(), maintenance.UpdateStatusInput{
			RequestID:  id,
			Status:     body.Status,
			AssignedTo: body.AssignedTo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}
