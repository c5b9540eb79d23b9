package goaldetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/keys"
	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/service"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// BackMsg is sent when the user leaves the detail view.
type BackMsg struct{}

// Model is the goal detail view, rendering one goal with its research
// record and check-in history in a scrollable viewport.
type Model struct {
	tracker  *service.Tracker
	keys     *keys.KeyMap
	viewport viewport.Model
	goalID   string
	width    int
	height   int
}

// New creates a new goal detail model.
func New(tr *service.Tracker, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width-4, height-4)
	return Model{
		tracker:  tr,
		keys:     k,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetGoal points the view at a goal and rebuilds the rendered content.
func (m *Model) SetGoal(goalID string) {
	m.goalID = goalID
	m.Refresh()
}

// GoalID returns the id of the goal currently shown.
func (m Model) GoalID() string {
	return m.goalID
}

// Refresh re-reads the goal from the tracker and re-renders the content.
func (m *Model) Refresh() {
	m.viewport.SetContent(m.renderGoal())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail panel.
func (m Model) View() string {
	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 2).
		Render(m.viewport.View())
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 8
	m.viewport.Height = height - 4
}

func (m Model) renderGoal() string {
	goal, ok := m.tracker.Goals().Goal(m.goalID)
	if !ok {
		return theme.HelpStyle.Render("Goal not found.")
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(titleStyle.Render(goal.Title))
	b.WriteString("  ")
	b.WriteString(theme.StatusStyle(goal.Status).Render(goal.Status))
	b.WriteString("\n\n")

	meta := lipgloss.NewStyle().Foreground(theme.ColorGray)
	b.WriteString(meta.Render("Created " + goal.CreatedAt.Format("2006-01-02")))
	if goal.TargetDate != nil {
		b.WriteString(meta.Render("  ·  Target " + goal.TargetDate.Format("2006-01-02")))
	}
	if goal.TopicID != "" {
		if topic, ok := m.tracker.Topics().Topic(goal.TopicID); ok {
			b.WriteString(meta.Render("  ·  Topic " + topic.Name))
		}
	}
	b.WriteString("\n")

	if goal.Description != "" {
		b.WriteString("\n" + goal.Description + "\n")
	}

	b.WriteString("\n" + m.renderResearch())
	b.WriteString("\n" + m.renderChecks())

	return b.String()
}

func (m Model) renderResearch() string {
	rec := m.tracker.Research().Get(m.goalID)

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	var b strings.Builder
	b.WriteString(header.Render("Research") + "\n")

	if rec.LastSaved == nil {
		b.WriteString(theme.HelpStyle.Render("No research notes yet. Press r to add some.") + "\n")
		return b.String()
	}

	fields := []struct {
		label, value string
	}{
		{"Link", rec.Fields.Link},
		{"Keywords", rec.Fields.Keywords},
		{"Notes", rec.Fields.Notes},
		{"Summary", rec.Fields.Summary},
	}
	label := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(10)
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		b.WriteString(label.Render(f.label) + f.value + "\n")
	}
	b.WriteString(theme.HelpStyle.Render(fmt.Sprintf(
		"saved %s · %d field(s) rewarded",
		rec.LastSaved.Format("2006-01-02 15:04"), rec.AwardedCount,
	)) + "\n")

	return b.String()
}

func (m Model) renderChecks() string {
	checks := m.tracker.Goals().ChecksForGoal(m.goalID)

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("Check-ins (%d)", len(checks))) + "\n")

	if len(checks) == 0 {
		b.WriteString(theme.HelpStyle.Render("No check-ins yet. Press c to record one.") + "\n")
		return b.String()
	}

	date := lipgloss.NewStyle().Foreground(theme.ColorGray)
	points := lipgloss.NewStyle().Foreground(theme.ColorYellow)
	for _, check := range checks {
		b.WriteString(fmt.Sprintf(
			"%s %s %s\n",
			date.Render(check.CheckDate.Format("Jan 02 15:04")),
			theme.RatingStyle(check.Rating).Render(ratingStars(check.Rating)),
			points.Render(fmt.Sprintf("+%d", check.PointsEarned)),
		))
		if check.Content != "" {
			b.WriteString("  " + check.Content + "\n")
		}
	}

	return b.String()
}

// ratingStars renders a 1-5 rating as filled and empty stars.
func ratingStars(rating int) string {
	if rating < 1 {
		rating = 1
	}
	if rating > model.MaxRating {
		rating = model.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxRating-rating)
}
