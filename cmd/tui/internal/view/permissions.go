package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaid/makhzan/internal/inventory"
)

type permsState int

const (
	permsStateBrowse permsState = iota
	permsStateCreate
)

type PermissionsModel struct {
	CommonModel
	inventoryService *inventory.Service

	state      permsState
	table      table.Model
	perms      []inventory.Permission
	items      []inventory.Item
	warehouses []inventory.Warehouse
	form       *huh.Form

	loading bool
	status  string

	// Form bindings
	formNumber string
	formType   inventory.Type
	formStore  string
	formDate   string
	formItemID string
	formQty    string
	formDesc   string
	formPosted bool
}

func NewPermissionsModel(invSvc *inventory.Service) PermissionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Number", Width: 10},
		{Title: "Type", Width: 10},
		{Title: "Store", Width: 18},
		{Title: "Lines", Width: 6},
		{Title: "Posted", Width: 8},
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

	return PermissionsModel{
		inventoryService: invSvc,
		table:            t,
	}
}

func (m PermissionsModel) Title() string { return "Permissions" }

func (m PermissionsModel) ShortHelp() string {
	if m.state == permsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | p: toggle posted | x: delete | r: refresh"
}

func (m PermissionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PermissionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case permsLoadedMsg:
		m.loading = false
		m.perms = msg.perms
		m.items = msg.items
		m.warehouses = msg.warehouses
		m.refreshTable()

		return m, nil

	case permsMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = permsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case permsStateBrowse:
		return m.updateBrowse(msg)
	case permsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m PermissionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "p":
			return m, m.togglePostedCmd()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PermissionsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		m.status = "No items yet; import or add items first."
		return m, nil
	}

	m.formNumber = ""
	m.formType = inventory.TypeAddition
	m.formStore = ""
	if len(m.warehouses) > 0 {
		m.formStore = m.warehouses[0].Name
	}
	m.formDate = inventory.Today().Raw()
	m.formItemID = m.items[0].ID
	m.formQty = ""
	m.formDesc = ""
	m.formPosted = true

	storeOptions := make([]huh.Option[string], len(m.warehouses))
	for i, wh := range m.warehouses {
		storeOptions[i] = huh.NewOption(wh.Name, wh.Name)
	}

	itemOptions := make([]huh.Option[string], len(m.items))
	for i, it := range m.items {
		itemOptions[i] = huh.NewOption(it.Name, it.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("number").
				Title("Number").
				Value(&m.formNumber),

			huh.NewSelect[inventory.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption(string(inventory.TypeAddition), inventory.TypeAddition),
					huh.NewOption(string(inventory.TypeReturn), inventory.TypeReturn),
					huh.NewOption(string(inventory.TypeTransfer), inventory.TypeTransfer),
					huh.NewOption(string(inventory.TypeDeduction), inventory.TypeDeduction),
					huh.NewOption(string(inventory.TypeDisbursement), inventory.TypeDisbursement),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("store").
				Title("Warehouse").
				Options(storeOptions...).
				Value(&m.formStore),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate),

			huh.NewSelect[string]().
				Key("item").
				Title("Item").
				Options(itemOptions...).
				Value(&m.formItemID),

			huh.NewInput().
				Key("qty").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					if !inventory.ParseQuantity(s).IsPositive() {
						return fmt.Errorf("quantity must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("desc").
				Title("Description").
				Value(&m.formDesc),

			huh.NewConfirm().
				Key("posted").
				Title("Post immediately?").
				Value(&m.formPosted),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = permsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m PermissionsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = permsStateBrowse
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

	return m, m.createCmd()
}

func (m PermissionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading permissions...")
	}

	if m.state == permsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(fmt.Sprintf("New Permission\n\n%s", m.form.View()))

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PermissionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.perms))

	for _, p := range m.perms {
		posted := "yes"
		if !p.Posted {
			posted = "draft"
		}

		rows = append(rows, table.Row{
			FormatDate(p.Date),
			p.Number,
			string(p.Type),
			Truncate(p.Store, 18),
			fmt.Sprint(len(p.Lines)),
			posted,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type permsLoadedMsg struct {
	perms      []inventory.Permission
	items      []inventory.Item
	warehouses []inventory.Warehouse
}

func (m PermissionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap := m.inventoryService.Snapshot()

		return permsLoadedMsg{
			perms:      snap.Permissions,
			items:      snap.Items,
			warehouses: snap.Warehouses,
		}
	}
}

type permsMutatedMsg struct {
	err error
}

func (m PermissionsModel) togglePostedCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.perms) {
		return nil
	}

	p := m.perms[idx]
	posted := !p.Posted

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.inventoryService.UpdatePermission(ctx, p.ID, inventory.UpdatePermissionParams{
			Posted: &posted,
		})

		return permsMutatedMsg{err: err}
	}
}

func (m PermissionsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.perms) {
		return nil
	}

	id := m.perms[idx].ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return permsMutatedMsg{err: m.inventoryService.DeletePermission(ctx, id)}
	}
}

func (m PermissionsModel) createCmd() tea.Cmd {
	var unit string
	for _, it := range m.items {
		if it.ID == m.formItemID {
			unit = it.Unit
			break
		}
	}

	params := inventory.AddPermissionParams{
		Number: m.formNumber,
		Type:   m.formType,
		Store:  m.formStore,
		Date:   inventory.ParseDate(strings.TrimSpace(m.formDate)),
		Posted: m.formPosted,
		Lines: []inventory.LineParams{{
			ItemID: m.formItemID,
			Unit:   unit,
			Qty:    inventory.ParseQuantity(m.formQty),
			Desc:   m.formDesc,
		}},
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.inventoryService.AddPermission(ctx, params)

		return permsMutatedMsg{err: err}
	}
}
