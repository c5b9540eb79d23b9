package researchform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// ResearchSubmittedMsg is dispatched when research notes are submitted.
type ResearchSubmittedMsg struct {
	GoalID string
	Fields model.ResearchFields
}

// ResearchFormCancelMsg is dispatched when the user cancels the form.
type ResearchFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	link     string
	keywords string
	notes    string
	summary  string
}

// Model is the Bubble Tea model for the research notes form.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	goalID    string
	goalTitle string
	width     int
	height    int
}

// New creates a new research form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form with the goal's current research fields.
func (m *Model) Start(goalID, goalTitle string, current model.ResearchFields) tea.Cmd {
	m.goalID = goalID
	m.goalTitle = goalTitle
	m.fb.link = current.Link
	m.fb.keywords = current.Keywords
	m.fb.notes = current.Notes
	m.fb.summary = current.Summary

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Link").
				Placeholder("https://...").
				Value(&m.fb.link),
			huh.NewInput().
				Title("Keywords").
				Placeholder("comma, separated, keywords").
				Value(&m.fb.keywords),
			huh.NewText().
				Title("Notes").
				Placeholder("What did you find?").
				Value(&m.fb.notes),
			huh.NewText().
				Title("Summary").
				Placeholder("Key takeaways...").
				Value(&m.fb.summary),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())

	return m.form.Init()
}

// Update handles messages for the research form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		msg := ResearchSubmittedMsg{
			GoalID: m.goalID,
			Fields: model.ResearchFields{
				Link:     m.fb.link,
				Keywords: m.fb.keywords,
				Notes:    m.fb.notes,
				Summary:  m.fb.summary,
			},
		}
		return m, func() tea.Msg { return msg }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ResearchFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the research form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Research: "+m.goalTitle) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
