package goallist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/keys"
	"github.com/jyoon/topic-tracker/internal/service"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// GoalsLoadedMsg is sent when goals have been loaded from the tracker.
type GoalsLoadedMsg struct {
	Rows []Row
}

// SelectedGoalMsg is sent when a user selects a goal to view details.
type SelectedGoalMsg struct {
	GoalID string
}

// Model is the goal list view component.
type Model struct {
	list    list.Model
	tracker *service.Tracker
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates a new goal list model.
func New(tr *service.Tracker, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, GoalDelegate{}, width, height-2)
	l.Title = "Goals"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		tracker: tr,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the initial set of goals.
func (m Model) Init() tea.Cmd {
	return m.LoadGoals()
}

// Update handles messages for the goal list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GoalsLoadedMsg:
		items := make([]list.Item, len(msg.Rows))
		for i, row := range msg.Rows {
			items[i] = row
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			row, ok := m.list.SelectedItem().(Row)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedGoalMsg{GoalID: row.Goal.ID}
			}
		}
	}

	// Delegate to list model for navigation and other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the goal list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no goals exist yet.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No goals yet.\n\nPress n to create one.")
}

// SelectedGoal returns the id of the currently highlighted goal.
func (m Model) SelectedGoal() (string, bool) {
	row, ok := m.list.SelectedItem().(Row)
	if !ok {
		return "", false
	}
	return row.Goal.ID, true
}

// LoadGoals returns a tea.Cmd that reads goals from the tracker and
// enriches each with its check-in count and linked topic name.
func (m Model) LoadGoals() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		goals := tr.Goals().All()
		rows := make([]Row, len(goals))
		for i, goal := range goals {
			row := Row{
				Goal:       goal,
				CheckCount: len(tr.Goals().ChecksForGoal(goal.ID)),
			}
			if goal.TopicID != "" {
				if topic, ok := tr.Topics().Topic(goal.TopicID); ok {
					row.TopicName = topic.Name
				}
			}
			rows[i] = row
		}
		return GoalsLoadedMsg{Rows: rows}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
