package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jyoon/topic-tracker/internal/keys"
	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/service"
	"github.com/jyoon/topic-tracker/internal/store"
	"github.com/jyoon/topic-tracker/internal/ui"
	"github.com/jyoon/topic-tracker/internal/ui/checkform"
	"github.com/jyoon/topic-tracker/internal/ui/command"
	"github.com/jyoon/topic-tracker/internal/ui/goaldetail"
	"github.com/jyoon/topic-tracker/internal/ui/goalform"
	"github.com/jyoon/topic-tracker/internal/ui/goallist"
	helpview "github.com/jyoon/topic-tracker/internal/ui/help"
	"github.com/jyoon/topic-tracker/internal/ui/pointsview"
	"github.com/jyoon/topic-tracker/internal/ui/researchform"
	"github.com/jyoon/topic-tracker/internal/ui/shopview"
	"github.com/jyoon/topic-tracker/internal/ui/topicform"
	"github.com/jyoon/topic-tracker/internal/ui/topiclist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewGoals ViewState = iota
	ViewGoalDetail
	ViewTopics
	ViewPoints
	ViewShop
	ViewHelp
	ViewCommand
	ViewGoalForm
	ViewCheckForm
	ViewResearchForm
	ViewTopicForm
)

// tabOrder is the cycle the tab key walks through.
var tabOrder = []ViewState{ViewGoals, ViewTopics, ViewPoints, ViewShop}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the tracker.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	tracker      *service.Tracker
	keys         *keys.KeyMap

	goalList     goallist.Model
	goalDetail   goaldetail.Model
	topicList    topiclist.Model
	pointsView   pointsview.Model
	shopView     shopview.Model
	helpView     helpview.Model
	commandView  command.Model
	goalForm     goalform.Model
	checkForm    checkform.Model
	researchForm researchform.Model
	topicForm    topicform.Model

	ready         bool
	statusMessage string
}

// New creates a new root application model over the given tracker.
func New(tr *service.Tracker) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewGoals,
		tracker:      tr,
		keys:         k,
		goalList:     goallist.New(tr, k, 80, 24),
		goalDetail:   goaldetail.New(tr, k, 80, 24),
		topicList:    topiclist.New(tr, k, 80, 24),
		pointsView:   pointsview.New(tr, k, 80, 24),
		shopView:     shopview.New(tr, k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
		goalForm:     goalform.New(80, 24),
		checkForm:    checkform.New(80, 24),
		researchForm: researchform.New(80, 24),
		topicForm:    topicform.New(80, 24),
	}
}

// Init returns the initial commands that load every tab.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.goalList.Init(),
		m.topicList.Init(),
		m.shopView.Init(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.goalList.SetSize(contentWidth, contentHeight)
		m.goalDetail.SetSize(contentWidth, contentHeight)
		m.topicList.SetSize(contentWidth, contentHeight)
		m.pointsView.SetSize(contentWidth, contentHeight)
		m.shopView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.goalForm.SetSize(contentWidth, contentHeight)
		m.checkForm.SetSize(contentWidth, contentHeight)
		m.researchForm.SetSize(contentWidth, contentHeight)
		m.topicForm.SetSize(contentWidth, contentHeight)
		m.pointsView.Refresh()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case goallist.SelectedGoalMsg:
		m.previousView = m.currentView
		m.currentView = ViewGoalDetail
		m.goalDetail.SetGoal(msg.GoalID)
		return m, nil

	case goaldetail.BackMsg:
		m.currentView = ViewGoals
		return m, m.goalList.LoadGoals()

	case goalform.GoalCreatedMsg:
		return m.handleGoalCreated(msg)

	case goalform.GoalUpdatedMsg:
		return m.handleGoalUpdated(msg)

	case goalform.GoalFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case checkform.CheckSubmittedMsg:
		return m.handleCheckSubmitted(msg)

	case checkform.CheckFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case researchform.ResearchSubmittedMsg:
		return m.handleResearchSubmitted(msg)

	case researchform.ResearchFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case topicform.TopicCreatedMsg:
		topic := m.tracker.Topics().Create(msg.Params)
		m.statusMessage = fmt.Sprintf("Topic %q created", topic.Name)
		m.currentView = ViewTopics
		return m, m.topicList.LoadTopics()

	case topicform.TopicUpdatedMsg:
		m.tracker.Topics().Update(msg.TopicID, store.TopicUpdate{
			Name:     &msg.Params.Name,
			Icon:     &msg.Params.Icon,
			Link:     &msg.Params.Link,
			Keywords: &msg.Params.Keywords,
		})
		m.currentView = ViewTopics
		return m, m.topicList.LoadTopics()

	case topicform.TopicFormCancelMsg:
		m.currentView = ViewTopics
		return m, nil

	case topiclist.SearchTopicMsg:
		return m.handleSearchTopic(msg)

	case shopview.BuyItemMsg:
		return m.handleBuyItem(msg)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.inBrowseView() {
			m.statusMessage = ""
			if handled, next, cmd := m.handleBrowseKey(msg); handled {
				return next, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// inBrowseView reports whether the current view is a read-only browsing
// view where single-letter action keys are safe to intercept.
func (m Model) inBrowseView() bool {
	switch m.currentView {
	case ViewGoals, ViewGoalDetail, ViewTopics, ViewPoints, ViewShop, ViewHelp:
		return true
	default:
		return false
	}
}

// handleBrowseKey processes global action keys in browsing views.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return true, m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case "tab", "shift+tab":
		if m.currentView == ViewHelp || m.currentView == ViewGoalDetail {
			return false, m, nil
		}
		return true, m.switchTab(msg.String() == "tab"), nil

	case "n":
		switch m.currentView {
		case ViewGoals:
			m.previousView = m.currentView
			m.currentView = ViewGoalForm
			m.goalForm.SetTopics(m.tracker.Topics().All())
			return true, m, m.goalForm.StartCreate("")
		case ViewTopics:
			m.previousView = m.currentView
			m.currentView = ViewTopicForm
			return true, m, m.topicForm.StartCreate()
		}

	case "e":
		return m.handleEditKey()

	case "d":
		return m.handleDeleteKey()

	case "c":
		if goalID, ok := m.actionableGoal(); ok {
			goal, found := m.tracker.Goals().Goal(goalID)
			if !found {
				return true, m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewCheckForm
			return true, m, m.checkForm.Start(goal.ID, goal.Title)
		}

	case "r":
		if goalID, ok := m.actionableGoal(); ok {
			goal, found := m.tracker.Goals().Goal(goalID)
			if !found {
				return true, m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewResearchForm
			rec := m.tracker.Research().Get(goal.ID)
			return true, m, m.researchForm.Start(goal.ID, goal.Title, rec.Fields)
		}

	case "g":
		if m.currentView == ViewTopics {
			topic, ok := m.topicList.SelectedTopic()
			if !ok {
				return true, m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewGoalForm
			m.goalForm.SetTopics(m.tracker.Topics().All())
			if goal, ok := m.tracker.Goals().GoalForTopic(topic.ID); ok {
				return true, m, m.goalForm.StartEdit(goal)
			}
			return true, m, m.goalForm.StartCreate(topic.ID)
		}
	}

	return false, m, nil
}

// actionableGoal returns the goal the check-in and research actions
// apply to: the open detail goal or the highlighted list row.
func (m Model) actionableGoal() (string, bool) {
	switch m.currentView {
	case ViewGoalDetail:
		return m.goalDetail.GoalID(), true
	case ViewGoals:
		return m.goalList.SelectedGoal()
	}
	return "", false
}

func (m Model) handleEditKey() (bool, tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewGoals, ViewGoalDetail:
		goalID, ok := m.actionableGoal()
		if !ok {
			return true, m, nil
		}
		goal, found := m.tracker.Goals().Goal(goalID)
		if !found {
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewGoalForm
		m.goalForm.SetTopics(m.tracker.Topics().All())
		return true, m, m.goalForm.StartEdit(goal)

	case ViewTopics:
		topic, ok := m.topicList.SelectedTopic()
		if !ok || !topic.IsUserCreated() {
			m.statusMessage = "Catalog topics cannot be edited"
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewTopicForm
		return true, m, m.topicForm.StartEdit(topic)
	}
	return false, m, nil
}

func (m Model) handleDeleteKey() (bool, tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewGoals, ViewGoalDetail:
		goalID, ok := m.actionableGoal()
		if !ok {
			return true, m, nil
		}
		m.tracker.DeleteGoal(goalID)
		m.statusMessage = "Goal deleted"
		m.currentView = ViewGoals
		return true, m, tea.Batch(m.goalList.LoadGoals(), m.topicList.LoadTopics())

	case ViewTopics:
		topic, ok := m.topicList.SelectedTopic()
		if !ok || !topic.IsUserCreated() {
			m.statusMessage = "Catalog topics cannot be deleted"
			return true, m, nil
		}
		m.tracker.Topics().Delete(topic.ID)
		m.statusMessage = fmt.Sprintf("Topic %q deleted", topic.Name)
		return true, m, m.topicList.LoadTopics()
	}
	return false, m, nil
}

// switchTab moves to the next or previous tab in the cycle.
func (m Model) switchTab(forward bool) Model {
	idx := 0
	for i, v := range tabOrder {
		if v == m.currentView {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(tabOrder)
	} else {
		idx = (idx - 1 + len(tabOrder)) % len(tabOrder)
	}
	m.previousView = m.currentView
	m.currentView = tabOrder[idx]
	if m.currentView == ViewPoints {
		m.pointsView.Refresh()
	}
	return m
}

func (m Model) handleGoalCreated(msg goalform.GoalCreatedMsg) (tea.Model, tea.Cmd) {
	goal, err := m.tracker.CreateGoal(store.GoalParams{
		Title:       msg.Title,
		Description: msg.Description,
		TopicID:     msg.TopicID,
		TargetDate:  msg.TargetDate,
	})
	if err != nil {
		m.statusMessage = err.Error()
	} else {
		m.statusMessage = fmt.Sprintf("Goal %q created", goal.Title)
	}
	m.currentView = ViewGoals
	return m, tea.Batch(m.goalList.LoadGoals(), m.topicList.LoadTopics())
}

func (m Model) handleGoalUpdated(msg goalform.GoalUpdatedMsg) (tea.Model, tea.Cmd) {
	m.tracker.Goals().Update(msg.GoalID, model.GoalUpdate{
		Title:       &msg.Title,
		Description: &msg.Description,
		TopicID:     &msg.TopicID,
		TargetDate:  msg.TargetDate,
		Status:      &msg.Status,
	})
	m.statusMessage = fmt.Sprintf("Goal %q updated", msg.Title)
	if m.previousView == ViewGoalDetail {
		m.currentView = ViewGoalDetail
		m.goalDetail.Refresh()
	} else if m.previousView == ViewTopics {
		m.currentView = ViewTopics
	} else {
		m.currentView = ViewGoals
	}
	return m, tea.Batch(m.goalList.LoadGoals(), m.topicList.LoadTopics())
}

func (m Model) handleCheckSubmitted(msg checkform.CheckSubmittedMsg) (tea.Model, tea.Cmd) {
	check, err := m.tracker.CheckIn(msg.GoalID, msg.Content, msg.Rating)
	if err != nil {
		m.statusMessage = err.Error()
	} else {
		m.statusMessage = fmt.Sprintf("Check-in recorded, +%d points", check.PointsEarned)
	}
	m.currentView = m.previousView
	if m.currentView == ViewGoalDetail {
		m.goalDetail.Refresh()
	}
	return m, m.goalList.LoadGoals()
}

func (m Model) handleResearchSubmitted(msg researchform.ResearchSubmittedMsg) (tea.Model, tea.Cmd) {
	_, earned, err := m.tracker.SaveResearch(msg.GoalID, msg.Fields)
	switch {
	case err != nil:
		m.statusMessage = err.Error()
	case earned > 0:
		m.statusMessage = fmt.Sprintf("Research saved, +%d points", earned)
	default:
		m.statusMessage = "Research saved"
	}
	m.currentView = m.previousView
	if m.currentView == ViewGoalDetail {
		m.goalDetail.Refresh()
	}
	return m, nil
}

func (m Model) handleSearchTopic(msg topiclist.SearchTopicMsg) (tea.Model, tea.Cmd) {
	topic, err := m.tracker.SearchTopic(msg.TopicID)
	if err != nil {
		m.statusMessage = err.Error()
		return m, nil
	}
	m.statusMessage = fmt.Sprintf("Searched %q, +%d points · %s",
		topic.Name, m.tracker.Rewards().SearchPoints, topic.Link)
	return m, nil
}

func (m Model) handleBuyItem(msg shopview.BuyItemMsg) (tea.Model, tea.Cmd) {
	item, err := m.tracker.Purchase(msg.ItemID)
	switch {
	case errors.Is(err, store.ErrInsufficientPoints):
		m.statusMessage = "Not enough points"
	case err != nil:
		m.statusMessage = err.Error()
	default:
		m.statusMessage = fmt.Sprintf("Purchased %s for %d points", item.Name, item.Price)
	}
	return m, m.shopView.LoadItems()
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "goals":
		m.currentView = ViewGoals
		return m, m.goalList.LoadGoals()
	case "topics":
		m.currentView = ViewTopics
		return m, m.topicList.LoadTopics()
	case "points", "ledger":
		m.currentView = ViewPoints
		m.pointsView.Refresh()
		return m, nil
	case "shop":
		m.currentView = ViewShop
		return m, m.shopView.LoadItems()
	case "new goal", "goal":
		m.previousView = m.currentView
		m.currentView = ViewGoalForm
		m.goalForm.SetTopics(m.tracker.Topics().All())
		return m, m.goalForm.StartCreate("")
	case "new topic", "topic":
		m.previousView = m.currentView
		m.currentView = ViewTopicForm
		return m, m.topicForm.StartCreate()
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil
	case "quit", "q":
		return m, tea.Quit
	default:
		m.statusMessage = fmt.Sprintf("Unknown command %q", cmd)
		return m, nil
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case ViewGoalDetail:
		m.goalDetail, cmd = m.goalDetail.Update(msg)
	case ViewTopics:
		m.topicList, cmd = m.topicList.Update(msg)
	case ViewPoints:
		m.pointsView, cmd = m.pointsView.Update(msg)
	case ViewShop:
		m.shopView, cmd = m.shopView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewGoalForm:
		m.goalForm, cmd = m.goalForm.Update(msg)
	case ViewCheckForm:
		m.checkForm, cmd = m.checkForm.Update(msg)
	case ViewResearchForm:
		m.researchForm, cmd = m.researchForm.Update(msg)
	case ViewTopicForm:
		m.topicForm, cmd = m.topicForm.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	balance := fmt.Sprintf("%d pts", m.tracker.Ledger().Stats().CurrentBalance)
	header := m.layout.RenderHeader("Topic Tracker", balance)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewGoals:
		return m.goalList.View()
	case ViewGoalDetail:
		return m.goalDetail.View()
	case ViewTopics:
		return m.topicList.View()
	case ViewPoints:
		return m.pointsView.View()
	case ViewShop:
		return m.shopView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewGoalForm:
		return m.goalForm.View()
	case ViewCheckForm:
		return m.checkForm.View()
	case ViewResearchForm:
		return m.researchForm.View()
	case ViewTopicForm:
		return m.topicForm.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// A transient status message takes precedence over the hints.
	if m.statusMessage != "" && m.inBrowseView() {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | esc back"
	case ViewGoalDetail:
		return "esc back | c check in | r research | e edit | d delete | j/k scroll"
	case ViewTopics:
		return "enter search | n new | g goal for topic | e edit | d delete | tab next"
	case ViewPoints:
		return "j/k scroll | tab next | q quit"
	case ViewShop:
		return "enter buy | tab next | q quit"
	case ViewGoalForm, ViewCheckForm, ViewResearchForm, ViewTopicForm:
		return "enter submit | esc cancel"
	default:
		return "q quit | ? help | n new | enter open | c check in | tab next"
	}
}
