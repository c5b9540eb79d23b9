package pointsview

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

// Model is the points view, showing ledger totals and the full
// transaction history in a scrollable viewport.
type Model struct {
	tracker  *service.Tracker
	keys     *keys.KeyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new points view model.
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

// Refresh re-reads the ledger and re-renders the content.
func (m *Model) Refresh() {
	m.viewport.SetContent(m.renderLedger())
	m.viewport.GotoTop()
}

// Update handles messages for the points view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		// Enter and tab keys belong to the root model.
		if key.Matches(msg, m.keys.Select) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the points panel.
func (m Model) View() string {
	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 2).
		Render(m.viewport.View())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 8
	m.viewport.Height = height - 4
}

func (m Model) renderLedger() string {
	stats := m.tracker.Ledger().Stats()

	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	label := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(10)

	b.WriteString(header.Render("Points") + "\n")
	b.WriteString(label.Render("Balance") +
		theme.BalanceStyle.Render(fmt.Sprintf("%d", stats.CurrentBalance)) + "\n")
	b.WriteString(label.Render("Earned") + fmt.Sprintf("%d", stats.TotalEarned) + "\n")
	b.WriteString(label.Render("Spent") + fmt.Sprintf("%d", stats.TotalSpent) + "\n")
	b.WriteString(label.Render("Searches") + fmt.Sprintf("%d", stats.SearchCount) + "\n")

	b.WriteString("\n" + header.Render("History") + "\n")

	txs := m.tracker.Ledger().Transactions()
	if len(txs) == 0 {
		b.WriteString(theme.HelpStyle.Render("No transactions yet.") + "\n")
		return b.String()
	}

	date := lipgloss.NewStyle().Foreground(theme.ColorGray)
	earn := lipgloss.NewStyle().Foreground(theme.ColorGreen).Width(6).Align(lipgloss.Right)
	spend := lipgloss.NewStyle().Foreground(theme.ColorRed).Width(6).Align(lipgloss.Right)

	for _, tx := range txs {
		amount := earn.Render(fmt.Sprintf("+%d", tx.Amount))
		if tx.Kind == model.TxKindSpend {
			amount = spend.Render(fmt.Sprintf("-%d", tx.Amount))
		}
		b.WriteString(fmt.Sprintf(
			"%s %s  %s\n",
			date.Render(tx.Timestamp.Format("Jan 02 15:04")),
			amount,
			tx.Description,
		))
	}

	return b.String()
}
