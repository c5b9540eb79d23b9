package shopview

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

// ItemsLoadedMsg is sent when the shop catalog has been annotated with
// ownership state.
type ItemsLoadedMsg struct {
	Rows []Row
}

// BuyItemMsg is sent when the user attempts a purchase.
type BuyItemMsg struct {
	ItemID string
}

// Row is a shop item plus whether the user already owns it.
type Row struct {
	Item  model.ShopItem
	Owned bool
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Item.Name }

// ItemDelegate implements list.ItemDelegate for rendering shop rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single shop item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}

	it := row.Item
	price := theme.BalanceStyle.Render(fmt.Sprintf("%4dp", it.Price))

	desc := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("  " + it.Description)

	ownedStr := ""
	if row.Owned {
		ownedStr = theme.OwnedBadgeStyle.Render("  ✓ owned")
	}

	line := fmt.Sprintf("%s %s %s%s%s", price, it.Icon, it.Name, desc, ownedStr)

	if row.Owned {
		line = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// Model is the shop view component.
type Model struct {
	list    list.Model
	tracker *service.Tracker
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates a new shop view model.
func New(tr *service.Tracker, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Shop"
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

// Init returns a command that loads the shop catalog.
func (m Model) Init() tea.Cmd {
	return m.LoadItems()
}

// Update handles messages for the shop view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		items := make([]list.Item, len(msg.Rows))
		for i, row := range msg.Rows {
			items[i] = row
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			row, ok := m.list.SelectedItem().(Row)
			if !ok || row.Owned {
				return m, nil
			}
			return m, func() tea.Msg {
				return BuyItemMsg{ItemID: row.Item.ID}
			}
		}
	}

	// Delegate to list model for navigation and other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the shop view.
func (m Model) View() string {
	return m.list.View()
}

// LoadItems returns a tea.Cmd that reads the catalog and marks owned items.
func (m Model) LoadItems() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		catalog := model.ShopCatalog()
		rows := make([]Row, len(catalog))
		for i, item := range catalog {
			rows[i] = Row{Item: item, Owned: tr.Purchases().Contains(item.ID)}
		}
		return ItemsLoadedMsg{Rows: rows}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
