package tui

import (
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/types"
)

// Instruction messages. The Coordinator runs inside a tea.Cmd goroutine;
// Display turns each call into one of these and hands it to the program,
// and Model.Update applies them in the order they were issued.
type (
	courseListMsg       struct{ courses []types.Course }
	loadErrorMsg        struct{ message string }
	validationErrorsMsg struct{ messages []string }
	successMsg          struct{ firstName, lastName, courseCode string }
	clearFormMsg        struct{}
	highlightMsg        struct{ fields []string }
)

// Display implements registration.Display for a running tea.Program.
//
// Messages sent before Attach are queued and delivered on Attach.
type Display struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

var _ registration.Display = (*Display)(nil)

// NewDisplay returns a Display with no program attached.
func NewDisplay() *Display {
	return &Display{}
}

// Attach routes instructions to send, usually (*tea.Program).Send.
func (d *Display) Attach(send func(tea.Msg)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.send = send
	for _, msg := range d.pending {
		send(msg)
	}
	d.pending = nil
}

func (d *Display) emit(msg tea.Msg) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.send == nil {
		d.pending = append(d.pending, msg)
		return
	}
	d.send(msg)
}

// SetCourseList replaces the course table. The previous selection is dropped.
func (d *Display) SetCourseList(courses []types.Course) {
	d.emit(courseListMsg{courses: slices.Clone(courses)})
}

// ShowLoadError shows message under the course table.
func (d *Display) ShowLoadError(message string) {
	d.emit(loadErrorMsg{message: message})
}

// ShowValidationErrors shows messages as one error report.
func (d *Display) ShowValidationErrors(messages []string) {
	d.emit(validationErrorsMsg{messages: slices.Clone(messages)})
}

// ShowSuccess shows a toast naming the student and the course.
func (d *Display) ShowSuccess(firstName, lastName, courseCode string) {
	d.emit(successMsg{firstName: firstName, lastName: lastName, courseCode: courseCode})
}

// ClearForm empties the four text inputs.
func (d *Display) ClearForm() {
	d.emit(clearFormMsg{})
}

// HighlightInvalidFields marks fields in red; an empty list clears every mark.
func (d *Display) HighlightInvalidFields(fields []string) {
	d.emit(highlightMsg{fields: slices.Clone(fields)})
}
