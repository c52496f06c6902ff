package registration

import (
	"errors"
	"strings"
)

// ErrInFlight is returned when an action is triggered while the same
// action is still waiting on the data store.
var ErrInFlight = errors.New("request already in progress")

// SelectionError means courses were requested without choosing a session.
type SelectionError struct {
	// Raw is the selector value that could not be used ("" when nothing
	// was selected).
	Raw string
}

func (e *SelectionError) Error() string {
	if e.Raw == "" {
		return "a session must be selected"
	}
	return "unknown session " + `"` + e.Raw + `"`
}

// ValidationError is one invalid form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string { return e.Message }

// ValidationErrors is every invalid field of one submission, in form order.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the user-facing message of each error.
func (e ValidationErrors) Messages() []string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Message
	}
	return msgs
}

// Fields returns the names of the invalid fields.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, v := range e {
		fields[i] = v.Field
	}
	return fields
}

// DataStoreError carries a data store failure. Its message is the store's
// message unchanged; errors.Is reaches the store's sentinel errors.
type DataStoreError struct {
	Op  string
	Err error
}

func (e *DataStoreError) Error() string { return e.Err.Error() }

func (e *DataStoreError) Unwrap() error { return e.Err }
