package checkform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/theme"
)

// CheckSubmittedMsg is dispatched when a check-in is submitted.
type CheckSubmittedMsg struct {
	GoalID  string
	Content string
	Rating  int
}

// CheckFormCancelMsg is dispatched when the user cancels the form.
type CheckFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	content string
	rating  int
}

// Model is the Bubble Tea model for the goal check-in form.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	goalID    string
	goalTitle string
	width     int
	height    int
}

// New creates a new check-in form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{rating: 3},
		width:  width,
		height: height,
	}
}

// Start initializes the form for a check-in against the given goal.
func (m *Model) Start(goalID, goalTitle string) tea.Cmd {
	m.goalID = goalID
	m.goalTitle = goalTitle
	m.fb.content = ""
	m.fb.rating = 3

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How did it go?").
				Placeholder("A few words about today's progress...").
				Value(&m.fb.content),
			huh.NewSelect[int]().
				Title("Rating").
				Options(
					huh.NewOption("★★★★★ Excellent", 5),
					huh.NewOption("★★★★☆ Good", 4),
					huh.NewOption("★★★☆☆ Okay", 3),
					huh.NewOption("★★☆☆☆ Rough", 2),
					huh.NewOption("★☆☆☆☆ Bad", 1),
				).
				Value(&m.fb.rating),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())

	return m.form.Init()
}

// Update handles messages for the check-in form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		msg := CheckSubmittedMsg{
			GoalID:  m.goalID,
			Content: m.fb.content,
			Rating:  m.fb.rating,
		}
		return m, func() tea.Msg { return msg }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CheckFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the check-in form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Check In: "+m.goalTitle) + "\n" + m.form.View()

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
