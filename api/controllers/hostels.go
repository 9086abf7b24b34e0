package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/api/responses"
	"github.com/campusworks/hosteldesk-backend/api/validators"
	"github.com/campusworks/hosteldesk-backend/internal/hostels"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
)

type createHostelRequest struct {
	Name       string           `json:"name" validate:"required"`
	HostelType enums.HostelType `json:"hostel_type" validate:"required"`
	Location   *string          `json:"location,omitempty"`
	WardenID   *uuid.UUID       `json:"warden_id,omitempty"`
}

type updateHostelRequest struct {
	Name     *string    `json:"name,omitempty"`
	Location *string    `json:"location,omitempty"`
	WardenID *uuid.UUID `json:"warden_id,omitempty"`
}

// HostelCreate registers a new hostel block.
func HostelCreate(svc hostels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hostels service unavailable"))
			return
		}

		var body createHostelRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hostel, err := svc.Create(r.Context(), hostels.CreateHostelInput{
			Name:       body.Name,
			HostelType: body.HostelType,
			Location:   body.Location,
			WardenID:   body.WardenID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, hostel)
	}
}

// HostelList returns every hostel.
func HostelList(svc hostels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hostels service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// HostelDetail returns one hostel by id.
func HostelDetail(svc hostels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hostels service unavailable"))
			return
		}

		id, err := parsePathID(r, "hostelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hostel, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hostel)
	}
}

// HostelUpdate patches hostel attributes, including warden reassignment.
func HostelUpdate(svc hostels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hostels service unavailable"))
			return
		}

		id, err := parsePathID(r, "hostelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateHostelRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hostel, err := svc.Update(r.Context(), id, hostels.UpdateHostelInput{
			Name:     body.Name,
			Location: body.Location,
			WardenID: body.WardenID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hostel)
	}
}

// WardenHostel returns the hostel assigned to the requesting warden.
func WardenHostel(svc hostels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hostels service unavailable"))
			return
		}

		hostelID, err := uuid.Parse(middleware.HostelIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "hostel context missing"))
			return
		}

		hostel, err := svc.Get(r.Context(), hostelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hostel)
	}
}
