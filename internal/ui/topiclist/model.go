package topiclist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jyoon/topic-tracker/internal/keys"
	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/service"
	"github.com/jyoon/topic-tracker/internal/theme"
)

// TopicsLoadedMsg is sent when topics have been loaded from the tracker.
type TopicsLoadedMsg struct {
	Rows []Row
}

// SearchTopicMsg is sent when the user triggers a search on a topic.
type SearchTopicMsg struct {
	TopicID string
}

// Row is a topic enriched with the title of its linked goal, if any.
type Row struct {
	Topic     model.Topic
	GoalTitle string
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Topic.Name }

// TopicDelegate implements list.ItemDelegate for rendering topic rows.
type TopicDelegate struct{}

// Height returns the number of lines each item takes.
func (d TopicDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TopicDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d TopicDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single topic line.
func (d TopicDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}

	topic := row.Topic
	kindBadge := theme.KindLabelStyle(topic.Kind).Render(topic.Kind)

	keywordsStr := ""
	if topic.Keywords != "" {
		keywordsStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render("  " + topic.Keywords)
	}

	goalStr := ""
	if row.GoalTitle != "" {
		goalStr = lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render("  ⚑ " + row.GoalTitle)
	}

	line := fmt.Sprintf("%s %s %s%s%s", kindBadge, topic.Icon, topic.Name, keywordsStr, goalStr)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// Model is the topic list view component.
type Model struct {
	list    list.Model
	tracker *service.Tracker
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates a new topic list model.
func New(tr *service.Tracker, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, TopicDelegate{}, width, height-2)
	l.Title = "Topics"
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

// Init returns a command that loads the topics.
func (m Model) Init() tea.Cmd {
	return m.LoadTopics()
}

// Update handles messages for the topic list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TopicsLoadedMsg:
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
				return SearchTopicMsg{TopicID: row.Topic.ID}
			}
		}
	}

	// Delegate to list model for navigation and other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the topic list view.
func (m Model) View() string {
	return m.list.View()
}

// SelectedTopic returns the currently highlighted topic.
func (m Model) SelectedTopic() (model.Topic, bool) {
	row, ok := m.list.SelectedItem().(Row)
	if !ok {
		return model.Topic{}, false
	}
	return row.Topic, true
}

// LoadTopics returns a tea.Cmd that reads the merged catalog and user
// topics, annotating each with the title of its linked goal.
func (m Model) LoadTopics() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		topics := tr.Topics().All()
		rows := make([]Row, len(topics))
		for i, topic := range topics {
			rows[i] = Row{Topic: topic}
			if goal, ok := tr.Goals().GoalForTopic(topic.ID); ok {
				rows[i].GoalTitle = goal.Title
			}
		}
		return TopicsLoadedMsg{Rows: rows}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
