// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the coordinator, storage backends, HTTP handlers and the terminal UI
// can all import types without depending on each other.
package types

import (
	"fmt"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Session is an academic term. Courses are always listed for one session.
//
// The zero value ("") means "no session selected"; LoadCourses refuses it.
// ─────────────────────────────────────────────────────────────────────────────
type Session string

const (
	Autumn Session = "Autumn"
	Winter Session = "Winter"
	Summer Session = "Summer"
)

// Sessions lists every selectable session in the order the UI shows them.
var Sessions = []Session{Autumn, Winter, Summer}

// String implements fmt.Stringer.
func (s Session) String() string { return string(s) }

// Valid reports whether s is one of the three known sessions.
func (s Session) Valid() bool {
	switch s {
	case Autumn, Winter, Summer:
		return true
	}
	return false
}

// ParseSession converts a user-facing selector value into a Session.
//
// Accepted spellings (case-insensitive, surrounding spaces ignored):
//
//	Autumn | Automne
//	Winter | Hiver
//	Summer | Ete | Été
//
// An empty string returns ("", nil): nothing was selected, which is not
// a parse error. Callers decide what "not selected" means.
func ParseSession(raw string) (Session, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "autumn", "automne":
		return Autumn, nil
	case "winter", "hiver":
		return Winter, nil
	case "summer", "ete", "été":
		return Summer, nil
	default:
		return "", fmt.Errorf("unknown session %q", raw)
	}
}

// Course is one entry of the course catalogue for a session.
// Identity is Code; codes are unique within a loaded list.
type Course struct {
	Code    string  `json:"code"    validate:"required"`
	Name    string  `json:"name"`
	Session Session `json:"session" validate:"course_session"`
}

// RegistrationForm is what gets sent to the data store once every field
// has passed validation. Field values are already trimmed.
//
// The validate:"..." tags are checked by registration.Validator. The
// "registration_email" and "student_id" tags are custom rules registered
// there, configured from validation settings.
type RegistrationForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,registration_email"`
	StudentID string `json:"studentId" validate:"required,student_id"`
	Course    Course `json:"course"`
}

// Registration is the data store's receipt for an accepted form.
type Registration struct {
	ID         string    `json:"id"`
	CourseCode string    `json:"courseCode"`
	CreatedAt  time.Time `json:"createdAt"`
}
