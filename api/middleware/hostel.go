package middleware

import (
	"net/http"

	"github.com/campusworks/hosteldesk-backend/api/responses"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
)

// HostelContext rejects warden requests that are not bound to a hostel.
// A warden without an assigned hostel can log in but cannot manage rooms.
func HostelContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if HostelIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "hostel context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StudentContext rejects requests from student accounts that lack a linked
// academic profile.
func StudentContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if StudentIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "student context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
