package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/report"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateEdit
	stockStateTimeframe
)

// stockTypeFilters is the [t] cycle: everything, then one entry per
// document type.
var stockTypeFilters = []struct {
	label string
	value inventory.Type
}{
	{"All", ""},
	{string(inventory.TypeAddition), inventory.TypeAddition},
	{string(inventory.TypeReturn), inventory.TypeReturn},
	{string(inventory.TypeTransfer), inventory.TypeTransfer},
	{string(inventory.TypeDeduction), inventory.TypeDeduction},
	{string(inventory.TypeDisbursement), inventory.TypeDisbursement},
}

type StockModel struct {
	CommonModel
	reportService    *report.Service
	inventoryService *inventory.Service

	state stockState
	table table.Model
	rows  []report.StockRow
	form  *huh.Form

	typeFilterIdx int
	from          inventory.Date
	to            inventory.Date
	rangeLabel    string
	picker        TimeframePicker

	loading bool
	err     error
	status  string

	// Form bindings
	formName  string
	formUnit  string
	formType  string
	formGroup string
}

func NewStockModel(reportSvc *report.Service, invSvc *inventory.Service) StockModel {
	columns := []table.Column{
		{Title: "Item", Width: 28},
		{Title: "Unit", Width: 10},
		{Title: "Group", Width: 14},
		{Title: "Type", Width: 10},
		{Title: "Balance", Width: 10},
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

	return StockModel{
		reportService:    reportSvc,
		inventoryService: invSvc,
		table:            t,
		rangeLabel:       "All Time",
		picker:           NewTimeframePicker(TimeframeThisMonth),
	}
}

func (m StockModel) Title() string { return "Stock Report" }

func (m StockModel) ShortHelp() string {
	switch m.state {
	case stockStateEdit:
		return "Navigate form | Esc: cancel"
	case stockStateTimeframe:
		return "Enter: select | Esc: back"
	}

	return "Esc: back | e: edit item | t: type filter | d: date range | r: refresh"
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stockLoadedMsg:
		m.loading = false
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case stockSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.state = stockStateBrowse

		if msg.All {
			m.from = inventory.Date{}
			m.to = inventory.Date{}
			m.rangeLabel = "All Time"
		} else {
			m.from = msg.From
			m.to = msg.To
			m.rangeLabel = fmt.Sprintf("%s .. %s", msg.From.Raw(), msg.To.Raw())
		}

		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case stockStateBrowse:
		return m.updateBrowse(msg)
	case stockStateEdit:
		return m.updateEdit(msg)
	case stockStateTimeframe:
		return m.updateTimeframe(msg)
	}

	return m, nil
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(stockTypeFilters)
			m.loading = true

			return m, m.loadCmd()
		case "d":
			m.state = stockStateTimeframe
			m.picker.Reset()

			return m, m.picker.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	row := m.rows[idx]
	if row.Name == "" {
		m.status = "This id belongs to a removed item; nothing to edit."
		return m, nil
	}

	m.formName = row.Name
	m.formUnit = row.Unit
	m.formType = row.Type
	m.formGroup = row.Group

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("unit").
				Title("Unit").
				Value(&m.formUnit).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("unit cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("type").
				Title("Type").
				Value(&m.formType),

			huh.NewInput().
				Key("group").
				Title("Group").
				Value(&m.formGroup),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = stockStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m StockModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = stockStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m StockModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.state = stockStateBrowse
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stock report...")
	}

	if m.state == stockStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [d] Range: %s",
		activeStyle(stockTypeFilters[m.typeFilterIdx].label),
		activeStyle(m.rangeLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == stockStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(fmt.Sprintf("Edit Item\n\n%s", m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))

	for _, r := range m.rows {
		name := r.Name
		if name == "" {
			name = r.ItemID
		}

		rows = append(rows, table.Row{
			Truncate(name, 28),
			r.Unit,
			Truncate(r.Group, 14),
			r.Type,
			r.Balance.String(),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type stockLoadedMsg struct {
	rows []report.StockRow
}

func (m StockModel) loadCmd() tea.Cmd {
	params := report.StockParams{
		From: m.from,
		To:   m.to,
		Type: stockTypeFilters[m.typeFilterIdx].value,
	}

	return func() tea.Msg {
		return stockLoadedMsg{rows: m.reportService.Stock(params)}
	}
}

type stockSavedMsg struct {
	err error
}

func (m StockModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	id := m.rows[idx].ItemID
	name := m.formName
	unit := m.formUnit
	itemType := m.formType
	group := m.formGroup

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		err := m.inventoryService.EditItem(ctx, id, inventory.EditItemParams{
			Name:  &name,
			Unit:  &unit,
			Type:  &itemType,
			Group: &group,
		})

		return stockSavedMsg{err: err}
	}
}
