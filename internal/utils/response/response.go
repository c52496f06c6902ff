// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Consistent error shapes matter more than usual here: the terminal
// client's remote store decodes them and turns the Code back into the
// matching storage error.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/storage"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a course list, a receipt…).
// Error responses always look like:
//
//	{ "status": "error", "code": "course_full", "error": "course is full" }
//
// Validation failures add the per-field messages:
//
//	{ "status": "error", "code": "validation",
//	  "error": "invalid email; invalid student id",
//	  "errors": ["invalid email", "invalid student id"] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string   `json:"status"`
	Code   string   `json:"code,omitempty"`
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// Status string constants.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Machine-readable error codes.
const (
	CodeInternal           = "internal"
	CodeBadRequest         = "bad_request"
	CodeInvalidSession     = "invalid_session"
	CodeValidation         = "validation"
	CodeCourseNotFound     = "course_not_found"
	CodeAlreadyRegistered  = "already_registered"
	CodeCourseFull         = "course_full"
	CodeCoursesUnavailable = "courses_unavailable"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(code string, err error) Response {
	return Response{
		Status: StatusError,
		Code:   code,
		Error:  err.Error(),
	}
}

// ValidationError converts the registration validator's failures into a
// single Response listing every message.
func ValidationError(errs registration.ValidationErrors) Response {
	return Response{
		Status: StatusError,
		Code:   CodeValidation,
		Error:  errs.Error(),
		Errors: errs.Messages(),
	}
}

// storeErrors maps data store sentinel errors to status and code.
var storeErrors = []struct {
	err    error
	status int
	code   string
}{
	{storage.ErrCourseNotFound, http.StatusNotFound, CodeCourseNotFound},
	{storage.ErrAlreadyRegistered, http.StatusConflict, CodeAlreadyRegistered},
	{storage.ErrCourseFull, http.StatusConflict, CodeCourseFull},
	{storage.ErrCoursesUnavailable, http.StatusServiceUnavailable, CodeCoursesUnavailable},
}

// StoreError picks the HTTP status and envelope for a data store error.
// Unknown errors are 500s.
func StoreError(err error) (int, Response) {
	for _, se := range storeErrors {
		if errors.Is(err, se.err) {
			return se.status, GeneralError(se.code, err)
		}
	}
	return http.StatusInternalServerError, GeneralError(CodeInternal, err)
}

// SentinelFor is the reverse of StoreError: the storage error a code
// stands for, or nil when the code is not a data store rejection.
func SentinelFor(code string) error {
	for _, se := range storeErrors {
		if se.code == code {
			return se.err
		}
	}
	return nil
}
