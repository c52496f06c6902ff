// Package registration holds the course-registration flow: validate what
// the user typed, ask the data store to act on it, and tell the display
// what to show.
//
// The Coordinator never touches presentation state directly. Everything
// the user sees changes through the Display interface, so the whole flow
// is testable with a recording fake and no rendering surface.
package registration

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
)

// Display is what the Coordinator may ask the user interface to do.
type Display interface {
	// SetCourseList replaces the course table with courses, in order.
	SetCourseList(courses []types.Course)
	// ShowLoadError reports that courses could not be loaded.
	ShowLoadError(message string)
	// ShowValidationErrors shows one error report listing every message.
	ShowValidationErrors(messages []string)
	// ShowSuccess confirms a registration.
	ShowSuccess(firstName, lastName, courseCode string)
	// ClearForm empties the four form fields.
	ClearForm()
	// HighlightInvalidFields marks the named fields as invalid; an empty
	// list removes all marks.
	HighlightInvalidFields(fields []string)
}

// FormInput is the raw content of the registration form at submit time.
type FormInput struct {
	FirstName string
	LastName  string
	Email     string
	StudentID string
	// Course is the row selected in the course table; zero when none is.
	Course types.Course
}

// Coordinator mediates between a Display and a data store.
type Coordinator struct {
	display   Display
	store     storage.Storage
	validator *Validator
	log       *slog.Logger

	loading    atomic.Bool
	submitting atomic.Bool
}

// New creates a Coordinator. A nil validator uses DefaultRules; a nil
// logger uses slog.Default().
func New(display Display, store storage.Storage, validator *Validator, log *slog.Logger) *Coordinator {
	if validator == nil {
		validator = NewValidator(DefaultRules())
	}
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		display:   display,
		store:     store,
		validator: validator,
		log:       log,
	}
}

// LoadCourses fills the display's course table for the selected session.
//
// An empty or unknown selection is a *SelectionError and never reaches the
// store. A store failure is a *DataStoreError. Both end in ShowLoadError.
// Returns ErrInFlight, without any display instruction, while a previous
// load is still running.
func (c *Coordinator) LoadCourses(ctx context.Context, selection string) error {
	if !c.loading.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer c.loading.Store(false)

	session, err := types.ParseSession(selection)
	if err != nil || session == "" {
		selErr := &SelectionError{Raw: strings.TrimSpace(selection)}
		c.log.Info("course load refused", slog.String("reason", selErr.Error()))
		c.display.ShowLoadError(selErr.Error())
		return selErr
	}

	c.log.Info("loading courses", slog.String("session", session.String()))

	courses, err := c.store.ListCourses(ctx, session)
	if err != nil {
		c.log.Error("error loading courses",
			slog.String("session", session.String()),
			slog.String("error", err.Error()))
		c.display.ShowLoadError("could not load courses: " + err.Error())
		return &DataStoreError{Op: "list courses", Err: err}
	}

	c.log.Info("courses loaded",
		slog.String("session", session.String()),
		slog.Int("count", len(courses)))
	c.display.SetCourseList(courses)
	return nil
}

// SubmitForm validates the form and, when every field is valid, registers
// the student.
//
// Invalid input: all failures are reported together, invalid fields are
// highlighted, and the store is not called; returns ValidationErrors.
// Store rejection: the store's message is shown and the form is kept;
// returns *DataStoreError. Success: the form is cleared, then the success
// message is shown.
func (c *Coordinator) SubmitForm(ctx context.Context, in FormInput) error {
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer c.submitting.Store(false)

	form := Normalize(types.RegistrationForm{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		StudentID: in.StudentID,
		Course:    in.Course,
	})

	if errs := c.validator.Validate(form); len(errs) > 0 {
		c.log.Info("registration form rejected",
			slog.Any("fields", errs.Fields()))
		c.display.HighlightInvalidFields(errs.Fields())
		c.display.ShowValidationErrors(errs.Messages())
		return errs
	}
	c.display.HighlightInvalidFields([]string{})

	c.log.Info("registering student",
		slog.String("course", form.Course.Code),
		slog.String("session", form.Course.Session.String()))

	reg, err := c.store.RegisterStudent(ctx, form)
	if err != nil {
		c.log.Error("registration rejected",
			slog.String("course", form.Course.Code),
			slog.String("error", err.Error()))
		c.display.ShowValidationErrors(storeMessages(err))
		return &DataStoreError{Op: "register student", Err: err}
	}

	code := reg.CourseCode
	if code == "" {
		code = form.Course.Code
	}

	c.log.Info("student registered",
		slog.String("registration_id", reg.ID),
		slog.String("course", code))

	c.display.ClearForm()
	c.display.ShowSuccess(form.FirstName, form.LastName, code)
	return nil
}

// storeMessages returns the messages of a store rejection. A store error
// carrying several messages, such as a server's per-field validation
// failures, keeps them apart.
func storeMessages(err error) []string {
	var multi interface{ Messages() []string }
	if errors.As(err, &multi) {
		if msgs := multi.Messages(); len(msgs) > 0 {
			return msgs
		}
	}
	return []string{err.Error()}
}
