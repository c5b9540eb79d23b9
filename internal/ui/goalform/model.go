package goalform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// GoalCreatedMsg is dispatched when a new goal is submitted via the form.
type GoalCreatedMsg struct {
	Title       string
	Description string
	TopicID     string
	TargetDate  *time.Time
}

// GoalUpdatedMsg is dispatched when an existing goal is edited via the form.
type GoalUpdatedMsg struct {
	GoalID      string
	Title       string
	Description string
	TopicID     string
	TargetDate  *time.Time
	Status      string
}

// GoalFormCancelMsg is dispatched when the user cancels the form.
type GoalFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	topicID     string
	targetDate  string
	status      string
}

// Model is the Bubble Tea model for the goal create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	topics   []model.Topic
	width    int
	height   int
}

// New creates a new goal form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{status: model.GoalStatusActive},
		width:  width,
		height: height,
	}
}

// SetTopics sets the available topics for the link selector.
func (m *Model) SetTopics(topics []model.Topic) {
	m.topics = topics
}

// StartCreate initializes the form for creating a new goal. A non-empty
// topicID preselects the topic link.
func (m *Model) StartCreate(topicID string) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.topicID = topicID
	m.fb.targetDate = ""
	m.fb.status = model.GoalStatusActive
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing goal.
func (m *Model) StartEdit(goal model.Goal) tea.Cmd {
	m.editMode = true
	m.editID = goal.ID
	m.fb.title = goal.Title
	m.fb.description = goal.Description
	m.fb.topicID = goal.TopicID
	m.fb.status = goal.Status
	if goal.TargetDate != nil {
		m.fb.targetDate = goal.TargetDate.Format("2006-01-02")
	} else {
		m.fb.targetDate = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the goal form.
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
		return m, func() tea.Msg { return GoalFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the goal form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Goal"
	if m.editMode {
		titleText = "Edit Goal"
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
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What do you want to achieve?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		m.topicField(),
		huh.NewInput().
			Title("Target Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.targetDate).
			Validate(validateOptionalDate),
	}

	if m.editMode {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Active", model.GoalStatusActive),
					huh.NewOption("Completed", model.GoalStatusCompleted),
					huh.NewOption("Archived", model.GoalStatusArchived),
				).
				Value(&m.fb.status),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) topicField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, t := range m.topics {
		opts = append(opts, huh.NewOption(t.Name, t.ID))
	}
	return huh.NewSelect[string]().
		Title("Topic").
		Options(opts...).
		Value(&m.fb.topicID)
}

func (m Model) handleSubmit() tea.Cmd {
	var targetDate *time.Time
	if m.fb.targetDate != "" {
		if t, err := time.Parse("2006-01-02", m.fb.targetDate); err == nil {
			targetDate = &t
		}
	}

	if m.editMode {
		msg := GoalUpdatedMsg{
			GoalID:      m.editID,
			Title:       m.fb.title,
			Description: m.fb.description,
			TopicID:     m.fb.topicID,
			TargetDate:  targetDate,
			Status:      m.fb.status,
		}
		return func() tea.Msg { return msg }
	}

	msg := GoalCreatedMsg{
		Title:       m.fb.title,
		Description: m.fb.description,
		TopicID:     m.fb.topicID,
		TargetDate:  targetDate,
	}
	return func() tea.Msg { return msg }
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

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
