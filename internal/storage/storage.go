// Package storage defines the Storage interface, the data store contract
// the registration coordinator talks to.
//
// Three backends satisfy it:
//
//   - sqlite: the system of record used by the registration server
//   - cache:  a read-through decorator that caches course lists
//   - remote: a client for the server's JSON API, used by the terminal client
//
// The coordinator and HTTP handlers depend only on this interface, so
// tests pass a fake that satisfies it.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/course-registration/internal/types"
)

// Errors a backend reports when it rejects a request. Their messages are
// shown to the user verbatim, so they are phrased for people.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrAlreadyRegistered  = errors.New("student is already registered for this course")
	ErrCourseFull         = errors.New("course is full")
	ErrCoursesUnavailable = errors.New("course list unavailable")
)

// Storage is the data store contract.
type Storage interface {
	// ListCourses returns the courses offered in a session, in catalogue
	// order. Returns an empty slice (not nil) if the session has none.
	ListCourses(ctx context.Context, session types.Session) ([]types.Course, error)

	// RegisterStudent records a validated form and returns the receipt.
	// The receipt's CourseCode is the course the student is now in.
	RegisterStudent(ctx context.Context, form types.RegistrationForm) (types.Registration, error)
}
