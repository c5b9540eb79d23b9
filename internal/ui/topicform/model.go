package topicform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/store"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// TopicCreatedMsg is dispatched when a new topic is submitted via the form.
type TopicCreatedMsg struct {
	Params store.TopicParams
}

// TopicUpdatedMsg is dispatched when an existing topic is edited.
type TopicUpdatedMsg struct {
	TopicID string
	Params  store.TopicParams
}

// TopicFormCancelMsg is dispatched when the user cancels the form.
type TopicFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	icon     string
	link     string
	keywords string
}

// Model is the Bubble Tea model for the topic create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new topic form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new user topic.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.name = ""
	m.fb.icon = ""
	m.fb.link = ""
	m.fb.keywords = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing user topic.
func (m *Model) StartEdit(topic model.Topic) tea.Cmd {
	m.editMode = true
	m.editID = topic.ID
	m.fb.name = topic.Name
	m.fb.icon = topic.Icon
	m.fb.link = topic.Link
	m.fb.keywords = topic.Keywords
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the topic form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TopicFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the topic form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Topic"
	if m.editMode {
		titleText = "Edit Topic"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("What are you interested in?").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Icon").
				Placeholder("An emoji (optional)").
				Value(&m.fb.icon),
			huh.NewInput().
				Title("Link").
				Placeholder("https://... (optional)").
				Value(&m.fb.link),
			huh.NewInput().
				Title("Keywords").
				Placeholder("comma, separated, keywords").
				Value(&m.fb.keywords),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	params := store.TopicParams{
		Name:     m.fb.name,
		Icon:     m.fb.icon,
		Link:     m.fb.link,
		Keywords: m.fb.keywords,
	}

	if m.editMode {
		id := m.editID
		return func() tea.Msg { return TopicUpdatedMsg{TopicID: id, Params: params} }
	}
	return func() tea.Msg { return TopicCreatedMsg{Params: params} }
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
