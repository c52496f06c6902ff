// Package registrations contains the HTTP handler that records a student's
// registration for a course.
package registrations

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
	"github.com/aanand-mishra/course-registration/internal/utils/response"
)

// MaxBodyBytes caps the size of a registration request body.
const MaxBodyBytes = 64 << 10

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/registrations
//
// Request body (JSON):
//
//	{ "firstName": "Marie", "lastName": "Curie", "email": "marie@udem.ca",
//	  "studentId": "20123456",
//	  "course": { "code": "MAT1000", "name": "Calculus", "session": "Autumn" } }
//
// Success response (201 Created):
//
//	{ "id": "…uuid…", "courseCode": "MAT1000", "createdAt": "…" }
//
// Error responses:
//
//	400 Bad Request: empty body, malformed JSON, or failed validation
//	413 Request Entity Too Large: body over MaxBodyBytes
//	404 Not Found: the course is not offered in that session
//	409 Conflict: already registered, or the course is full
//	500 Internal: database error
//
// The form is validated again here with the same rules the client uses;
// the server does not trust what reaches it.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, validator *registration.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("registering a student")

		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

		var form types.RegistrationForm
		err := json.NewDecoder(r.Body).Decode(&form)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.CodeBadRequest, errors.New("request body is empty")))
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteJSON(w, http.StatusRequestEntityTooLarge,
				response.GeneralError(response.CodeBadRequest, err))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.CodeBadRequest, err))
			return
		}

		form = registration.Normalize(form)
		if errs := validator.Validate(form); len(errs) > 0 {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		reg, err := store.RegisterStudent(r.Context(), form)
		if err != nil {
			slog.Error("error registering student",
				slog.String("course", form.Course.Code),
				slog.String("error", err.Error()))
			status, resp := response.StoreError(err)
			response.WriteJSON(w, status, resp)
			return
		}

		slog.Info("student registered",
			slog.String("id", reg.ID),
			slog.String("course", reg.CourseCode))

		response.WriteJSON(w, http.StatusCreated, reg)
	}
}
