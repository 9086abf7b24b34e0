package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/api/responses"
	"github.com/campusworks/hosteldesk-backend/api/validators"
	"github.com/campusworks/hosteldesk-backend/internal/allotments"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
)

type allocateRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	RoomID    uuid.UUID `json:"room_id" validate:"required"`
}

type applyRequest struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`
}

type vacateRequest struct {
	VacatedDate *time.Time `json:"vacated_date,omitempty"`
}

// AllotmentAllocate places a student into a room immediately.
func AllotmentAllocate(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		var body allocateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		allotment, err := svc.Allocate(r.Context(), allotments.AllocateInput{
			StudentID: body.StudentID,
			RoomID:    body.RoomID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, allotment)
	}
}

// AllotmentApply files a pending application for the requesting student.
func AllotmentApply(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		studentID, err := uuid.Parse(middleware.StudentIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "student context missing"))
			return
		}

		var body applyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		allotment, err := svc.Apply(r.Context(), allotments.ApplyInput{
			StudentID: studentID,
			RoomID:    body.RoomID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, allotment)
	}
}

// AllotmentApprove activates a pending application.
func AllotmentApprove(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		id, err := parsePathID(r, "allotmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		allotment, err := svc.ApprovePending(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, allotment)
	}
}

// AllotmentVacate closes an active allotment.
func AllotmentVacate(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		id, err := parsePathID(r, "allotmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body vacateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		allotment, err := svc.Vacate(r.Context(), allotments.VacateInput{
			AllotmentID: id,
			VacatedDate: body.VacatedDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, allotment)
	}
}

// StudentActiveAllotment returns the requesting student's live placement.
func StudentActiveAllotment(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		studentID, err := uuid.Parse(middleware.StudentIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "student context missing"))
			return
		}

		allotment, err := svc.FindActiveByStudent(r.Context(), studentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, allotment)
	}
}

// StudentAllotmentHistory returns the requesting student's full stay history.
func StudentAllotmentHistory(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		studentID, err := uuid.Parse(middleware.StudentIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "student context missing"))
			return
		}

		history, err := svc.FindHistoryByStudent(r.Context(), studentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

// WardenActiveAllotments lists the live placements in the warden's hostel.
func WardenActiveAllotments(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		hostelID, err := wardenHostelID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.FindActiveByHostel(r.Context(), hostelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AllotmentPending lists applications awaiting approval.
func AllotmentPending(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		list, err := svc.FindPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OccupancyReport aggregates per-hostel room and occupant counts.
func OccupancyReport(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		report, err := svc.GetOccupancyReport(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
