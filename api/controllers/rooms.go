package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/api/responses"
	"github.com/campusworks/hosteldesk-backend/api/validators"
	"github.com/campusworks/hosteldesk-backend/internal/allotments"
	"github.com/campusworks/hosteldesk-backend/internal/rooms"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
)

type createRoomRequest struct {
	RoomNo   string `json:"room_no" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

type updateRoomRequest struct {
	RoomNo   *string `json:"room_no,omitempty"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

type roomMaintenanceRequest struct {
	UnderMaintenance *bool `json:"under_maintenance" validate:"required"`
}

func wardenHostelID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.HostelIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "hostel context missing")
	}
	return id, nil
}

// RoomCreate adds a room to the warden's hostel.
func RoomCreate(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		hostelID, err := wardenHostelID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRoomRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		room, err := svc.Create(r.Context(), rooms.CreateRoomInput{
			HostelID: hostelID,
			RoomNo:   body.RoomNo,
			Capacity: body.Capacity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, room)
	}
}

// RoomList returns the rooms of the warden's hostel.
func RoomList(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		hostelID, err := wardenHostelID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByHostel(r.Context(), hostelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// RoomSearch filters rooms by status, hostel type, and room number
// substring, joined with live occupancy counts. Wardens are scoped to their
// own hostel; admins may pass hostel_id.
func RoomSearch(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		query := r.URL.Query()
		filters := rooms.SearchFilters{
			Status:     enums.RoomStatus(strings.TrimSpace(query.Get("status"))),
			HostelType: enums.HostelType(strings.TrimSpace(query.Get("hostel_type"))),
			RoomNo:     query.Get("room_no"),
		}

		if raw := middleware.HostelIDFromContext(r.Context()); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "hostel context missing"))
				return
			}
			filters.HostelID = id
		} else if raw := strings.TrimSpace(query.Get("hostel_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid hostel id filter"))
				return
			}
			filters.HostelID = id
		}

		list, err := svc.Search(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// RoomAvailable lists vacant rooms with free spots, optionally narrowed by
// hostel type.
func RoomAvailable(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		hostelType := enums.HostelType(strings.TrimSpace(r.URL.Query().Get("hostel_type")))
		list, err := svc.FindAvailable(r.Context(), hostelType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// RoomOccupants returns one room with its current residents.
func RoomOccupants(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		id, err := parsePathID(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		occupancy, err := svc.GetWithOccupants(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, occupancy)
	}
}

// RoomUpdate patches room number or capacity. A capacity change re-derives
// the room status.
func RoomUpdate(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		id, err := parsePathID(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateRoomRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		room, err := svc.Update(r.Context(), id, rooms.UpdateRoomInput{
			RoomNo:   body.RoomNo,
			Capacity: body.Capacity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, room)
	}
}

// RoomSetMaintenance flags a room in or out of maintenance.
func RoomSetMaintenance(svc rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		id, err := parsePathID(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body roomMaintenanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		room, err := svc.SetMaintenance(r.Context(), id, *body.UnderMaintenance)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, room)
	}
}

// RoomRecompute re-derives a room's status from its active occupant count.
// It is the repair operation for rooms whose stored status drifted.
func RoomRecompute(svc allotments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allotments service unavailable"))
			return
		}

		id, err := parsePathID(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.RecomputeRoomStatus(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"room_id": id.String(), "status": string(status)})
	}
}
