package goallist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// Row is a goal enriched with the derived fields the list renders.
type Row struct {
	Goal       model.Goal
	CheckCount int
	TopicName  string
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Goal.Title }

// GoalDelegate implements list.ItemDelegate for rendering goal rows.
type GoalDelegate struct{}

// Height returns the number of lines each item takes.
func (d GoalDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d GoalDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d GoalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single goal line.
func (d GoalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}

	goal := row.Goal
	statusBadge := theme.StatusStyle(goal.Status).Render(goal.Status)

	checksStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("%d check-ins", row.CheckCount))

	topicStr := ""
	if row.TopicName != "" {
		topicStr = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" @" + row.TopicName)
	}

	dueStr := ""
	if goal.TargetDate != nil {
		style := lipgloss.NewStyle().Foreground(theme.ColorGray)
		if goal.Status == model.GoalStatusActive && goal.TargetDate.Before(time.Now()) {
			style = lipgloss.NewStyle().Foreground(theme.ColorRed).Bold(true)
		}
		dueStr = style.Render(" due " + goal.TargetDate.Format("Jan 02"))
	}

	line := fmt.Sprintf("%s %s%s%s  %s", statusBadge, goal.Title, topicStr, dueStr, checksStr)

	if goal.Status == model.GoalStatusArchived {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
