// Package tui is the terminal Display of the registration client.
//
// The Model owns everything on screen. It forwards user intent to a
// Coordinator inside tea.Cmds, and the Coordinator answers through Display,
// whose instructions come back into Update as messages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aanand-mishra/course-registration/internal/registration"
	"github.com/aanand-mishra/course-registration/internal/types"
)

// ToastDuration is how long the success toast stays up.
const ToastDuration = 4 * time.Second

// Coordinator is the part of registration.Coordinator the Model drives.
type Coordinator interface {
	LoadCourses(ctx context.Context, selection string) error
	SubmitForm(ctx context.Context, in registration.FormInput) error
}

// Focus identifies the focused control.
type Focus int

const (
	FocusSession Focus = iota
	FocusLoad
	FocusTable
	FocusFirstName
	FocusLastName
	FocusEmail
	FocusStudentID
	FocusSubmit
	focusCount
)

// inputs are ordered as on screen.
const (
	inputFirstName = iota
	inputLastName
	inputEmail
	inputStudentID
	inputCount
)

var inputFields = [inputCount]struct {
	field, label, placeholder string
}{
	{registration.FieldFirstName, "First name", "Marie"},
	{registration.FieldLastName, "Last name", "Curie"},
	{registration.FieldEmail, "Email", "marie@udem.ca"},
	{registration.FieldStudentID, "Student ID", "20123456"},
}

type (
	loadDoneMsg   struct{ err error }
	submitDoneMsg struct{ err error }
	dismissMsg    struct{ seq int }
)

// Model is the registration screen.
type Model struct {
	ctx   context.Context
	coord Coordinator
	keys  KeyMap
	help  help.Model

	focus Focus

	// session is an index into types.Sessions; -1 until the user picks one.
	session int

	courses  []types.Course
	table    table.Model
	selected int

	inputs [inputCount]textinput.Model

	loading    bool
	submitting bool

	invalid   map[string]bool
	errors    []string
	loadError string

	// rejected is set when the current report names no invalid field: the
	// form passed validation and the data store refused it.
	rejected bool

	toast    string
	toastSeq int

	width  int
	height int
}

// New creates the registration screen driving coord.
func New(ctx context.Context, coord Coordinator) Model {
	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: " ", Width: 1},
			{Title: "Code", Width: 9},
			{Title: "Course", Width: 32},
		}),
		table.WithHeight(8),
	)

	var inputs [inputCount]textinput.Model
	for i, f := range inputFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Prompt = ""
		ti.Width = 32
		ti.CharLimit = 64
		inputs[i] = ti
	}

	return Model{
		ctx:      ctx,
		coord:    coord,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		session:  -1,
		table:    tbl,
		selected: -1,
		inputs:   inputs,
		invalid:  map[string]bool{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	// ── Display instructions ────────────────────────────────────────────
	case courseListMsg:
		m.courses = msg.courses
		m.selected = -1
		m.loadError = ""
		m.table.SetRows(m.rows())
		m.table.SetCursor(0)
		return m, nil

	case loadErrorMsg:
		m.loadError = msg.message
		return m, nil

	case validationErrorsMsg:
		m.errors = msg.messages
		m.rejected = len(m.invalid) == 0
		return m, nil

	case highlightMsg:
		m.invalid = make(map[string]bool, len(msg.fields))
		for _, f := range msg.fields {
			m.invalid[f] = true
		}
		return m, nil

	case clearFormMsg:
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		return m, nil

	case successMsg:
		m.errors = nil
		m.toast = fmt.Sprintf("%s %s is registered for %s", msg.firstName, msg.lastName, msg.courseCode)
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
			return dismissMsg{seq: seq}
		})

	// ── Command completions ─────────────────────────────────────────────
	case loadDoneMsg:
		m.loading = false
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		return m, nil

	case dismissMsg:
		// A newer toast replaced this one.
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Load):
		return m.load()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.focus {
	case FocusSession:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.session = max(m.session-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.session = min(m.session+1, len(types.Sessions)-1)
		}
		return m, nil

	case FocusLoad:
		if key.Matches(msg, m.keys.Select) {
			return m.load()
		}
		return m, nil

	case FocusSubmit:
		if key.Matches(msg, m.keys.Select) {
			return m.submit()
		}
		return m, nil

	case FocusTable:
		if key.Matches(msg, m.keys.Select) {
			if len(m.courses) > 0 {
				m.selected = m.table.Cursor()
				m.table.SetRows(m.rows())
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	i := m.inputIndex()
	if i < 0 {
		return m, nil
	}
	if key.Matches(msg, m.keys.Select) && msg.Type == tea.KeyEnter {
		return m.setFocus(m.focus + 1)
	}
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	return m, cmd
}

func (m Model) setFocus(f Focus) (tea.Model, tea.Cmd) {
	if i := m.inputIndex(); i >= 0 {
		m.inputs[i].Blur()
	}
	m.table.Blur()

	m.focus = f
	switch {
	case f == FocusTable:
		m.table.Focus()
	case m.inputIndex() >= 0:
		return m, m.inputs[m.inputIndex()].Focus()
	}
	return m, nil
}

// inputIndex maps the focused control to its text input, or -1.
func (m Model) inputIndex() int {
	if m.focus < FocusFirstName || m.focus > FocusStudentID {
		return -1
	}
	return int(m.focus - FocusFirstName)
}

// load starts a course load unless one is already running.
func (m Model) load() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true

	ctx, coord, selection := m.ctx, m.coord, m.Selection()
	return m, func() tea.Msg {
		return loadDoneMsg{err: coord.LoadCourses(ctx, selection)}
	}
}

// submit starts a registration unless one is already running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true

	ctx, coord, in := m.ctx, m.coord, m.FormInput()
	return m, func() tea.Msg {
		return submitDoneMsg{err: coord.SubmitForm(ctx, in)}
	}
}

// Selection is the session selector's value, "" when nothing is chosen.
func (m Model) Selection() string {
	if m.session < 0 {
		return ""
	}
	return types.Sessions[m.session].String()
}

// FormInput snapshots the form as the Coordinator receives it.
func (m Model) FormInput() registration.FormInput {
	in := registration.FormInput{
		FirstName: m.inputs[inputFirstName].Value(),
		LastName:  m.inputs[inputLastName].Value(),
		Email:     m.inputs[inputEmail].Value(),
		StudentID: m.inputs[inputStudentID].Value(),
	}
	if course, ok := m.SelectedCourse(); ok {
		in.Course = course
	}
	return in
}

// SelectedCourse returns the course picked in the table.
func (m Model) SelectedCourse() (types.Course, bool) {
	if m.selected < 0 || m.selected >= len(m.courses) {
		return types.Course{}, false
	}
	return m.courses[m.selected], true
}

// Courses returns the course list as displayed.
func (m Model) Courses() []types.Course { return m.courses }

// Errors returns the current error report.
func (m Model) Errors() []string { return m.errors }

// Rejected reports whether the error report is a data store refusal
// rather than invalid input.
func (m Model) Rejected() bool { return m.rejected }

// LoadError returns the current load error, "" when none.
func (m Model) LoadError() string { return m.loadError }

// Toast returns the visible success message, "" when none.
func (m Model) Toast() string { return m.toast }

// Invalid reports whether field is highlighted.
func (m Model) Invalid(field string) bool { return m.invalid[field] }

// Loading reports whether the load control is disabled.
func (m Model) Loading() bool { return m.loading }

// Submitting reports whether the submit control is disabled.
func (m Model) Submitting() bool { return m.submitting }

// Focused returns the focused control.
func (m Model) Focused() Focus { return m.focus }

func (m Model) rows() []table.Row {
	rows := make([]table.Row, len(m.courses))
	for i, c := range m.courses {
		mark := ""
		if i == m.selected {
			mark = "●"
		}
		rows[i] = table.Row{mark, c.Code, c.Name}
	}
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Course registration"))
	b.WriteString("\n")

	// ── Courses ─────────────────────────────────────────────────────────
	courses := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center,
			labelStyle.Render("Session"), m.sessionView(), "  ",
			m.button("Load", FocusLoad, m.loading)),
		"",
		m.table.View(),
	)
	if m.loadError != "" {
		courses = lipgloss.JoinVertical(lipgloss.Left, courses, errorTextStyle.Render(m.loadError))
	}
	b.WriteString(m.pane(courses, m.focus <= FocusTable))
	b.WriteString("\n")

	// ── Form ────────────────────────────────────────────────────────────
	lines := make([]string, 0, inputCount+3)
	for i, f := range inputFields {
		label := labelStyle
		if m.invalid[f.field] {
			label = invalidLabelStyle
		}
		lines = append(lines, label.Render(f.label)+m.inputs[i].View())
	}
	course := mutedStyle.Render("select a course in the table")
	if c, ok := m.SelectedCourse(); ok {
		course = c.Code + " " + c.Name
	}
	courseLabel := labelStyle
	if m.invalid[registration.FieldCourse] {
		courseLabel = invalidLabelStyle
	}
	lines = append(lines, courseLabel.Render("Course")+course, "", m.button("Submit", FocusSubmit, m.submitting))
	b.WriteString(m.pane(lipgloss.JoinVertical(lipgloss.Left, lines...), m.focus > FocusTable))
	b.WriteString("\n")

	if len(m.errors) > 0 {
		report := "The form is invalid\n"
		if m.rejected {
			report = "Registration refused\n"
		}
		for _, e := range m.errors {
			report += "\n• " + e
		}
		b.WriteString(errorBoxStyle.Render(errorTextStyle.Render(report)))
		b.WriteString("\n")
	}
	if m.toast != "" {
		b.WriteString(toastStyle.Render("✅ " + m.toast))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sessionView() string {
	if m.session < 0 {
		return mutedStyle.Render("‹ choose a session ›")
	}
	return "‹ " + types.Sessions[m.session].String() + " ›"
}

func (m Model) button(label string, f Focus, disabled bool) string {
	switch {
	case disabled:
		return buttonDisabledStyle.Render(label + "…")
	case m.focus == f:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func (m Model) pane(content string, focused bool) string {
	if focused {
		return focusedPaneStyle.Render(content)
	}
	return paneStyle.Render(content)
}
