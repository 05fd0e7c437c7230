package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/ledger"
	"github.com/amsaid/makhzan/internal/report"
)

type cardState int

const (
	cardStatePick cardState = iota
	cardStateView
)

// itemEntry wraps an item to implement list.Item.
type itemEntry struct {
	item inventory.Item
}

func (i itemEntry) Title() string { return i.item.Name }

func (i itemEntry) Description() string {
	if i.item.Group == "" {
		return i.item.Unit
	}

	return fmt.Sprintf("%s | %s", i.item.Unit, i.item.Group)
}

func (i itemEntry) FilterValue() string { return i.item.Name }

type CardModel struct {
	CommonModel
	inventoryService *inventory.Service
	reportService    *report.Service

	state    cardState
	itemList list.Model

	item  inventory.Item
	card  ledger.Card
	table table.Model
}

func NewCardModel(invSvc *inventory.Service, reportSvc *report.Service) CardModel {
	l := list.New(nil, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Select Item"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	columns := []table.Column{
		{Title: "Narrative", Width: 12},
		{Title: "In", Width: 8},
		{Title: "Out", Width: 8},
		{Title: "Balance", Width: 10},
		{Title: "Number", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return CardModel{
		inventoryService: invSvc,
		reportService:    reportSvc,
		itemList:         l,
		table:            t,
	}
}

func (m CardModel) Title() string { return "Item Card" }

func (m CardModel) ShortHelp() string {
	if m.state == cardStateView {
		return "Esc: choose another item | r: refresh"
	}

	return "Esc: back | /: filter | Enter: open card"
}

func (m CardModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m CardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardItemsMsg:
		entries := make([]list.Item, len(msg.items))
		for i, it := range msg.items {
			entries[i] = itemEntry{item: it}
		}

		m.itemList.SetItems(entries)

		return m, nil

	case cardLoadedMsg:
		m.state = cardStateView
		m.item = msg.item
		m.card = msg.card
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.itemList.SetSize(msg.Width-4, msg.Height-6)
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case cardStatePick:
		return m.updatePick(msg)
	case cardStateView:
		return m.updateView(msg)
	}

	return m, nil
}

func (m CardModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// While the fuzzy filter is open the list owns the keys.
		if m.itemList.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "enter":
				entry, ok := m.itemList.SelectedItem().(itemEntry)
				if !ok {
					return m, nil
				}

				return m, m.loadCardCmd(entry.item.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)

	return m, cmd
}

func (m CardModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = cardStatePick
			return m, m.loadItemsCmd()
		case "r":
			return m, m.loadCardCmd(m.item.ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CardModel) View() string {
	if m.state == cardStatePick {
		return lipgloss.NewStyle().Padding(1).Render(m.itemList.View())
	}

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s  |  %s  |  Balance: %s", m.item.Name, m.item.Unit, m.card.Balance.String()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			tableView,
		),
	)
}

func (m *CardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.card.Rows))

	for _, r := range m.card.Rows {
		rows = append(rows, table.Row{
			r.Narrative,
			FormatQty(r.In),
			FormatQty(r.Out),
			r.Balance.String(),
			r.Number,
			FormatDate(r.Date),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type cardItemsMsg struct {
	items []inventory.Item
}

func (m CardModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		return cardItemsMsg{items: m.inventoryService.Items()}
	}
}

type cardLoadedMsg struct {
	item inventory.Item
	card ledger.Card
}

func (m CardModel) loadCardCmd(itemID string) tea.Cmd {
	return func() tea.Msg {
		item, card := m.reportService.Card(itemID)
		return cardLoadedMsg{item: item, card: card}
	}
}
