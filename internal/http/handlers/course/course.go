// Package course contains the HTTP handlers for the course catalogue.
//
// Handlers are factories: they receive their dependencies once at startup
// and return the http.HandlerFunc the router calls on every request.
//
//	r.Get("/api/courses", course.List(store))
package course

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
	"github.com/aanand-mishra/course-registration/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/courses?session=Autumn
// Returns the session's courses in catalogue order.
//
// Success response (200 OK):
//
//	[ { "code": "MAT1000", "name": "Calculus", "session": "Autumn" } ]
//
// Error responses:
//
//	400 Bad Request: session missing or unknown
//	503 Service Unavailable: the store could not list courses
//
// ─────────────────────────────────────────────────────────────────────────────
func List(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("session")
		slog.Info("listing courses", slog.String("session", raw))

		session, err := types.ParseSession(raw)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.CodeInvalidSession, err))
			return
		}
		if session == "" {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.CodeInvalidSession,
					errors.New("a session must be selected")))
			return
		}

		courses, err := store.ListCourses(r.Context(), session)
		if err != nil {
			slog.Error("error listing courses",
				slog.String("session", session.String()),
				slog.String("error", err.Error()))
			status, resp := response.StoreError(err)
			if status == http.StatusInternalServerError {
				status, resp = http.StatusServiceUnavailable,
					response.GeneralError(response.CodeCoursesUnavailable, err)
			}
			response.WriteJSON(w, status, resp)
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}
