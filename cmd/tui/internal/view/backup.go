package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaid/makhzan/internal/backup"
)

type backupState int

const (
	backupStateMenu backupState = iota
	backupStatePath
	backupStateFilePick
	backupStateConfirm
	backupStateWorking
	backupStateResult
)

type backupAction int

const (
	backupActionSave backupAction = iota
	backupActionRestore
)

type BackupModel struct {
	CommonModel
	backupService *backup.Service

	state  backupState
	cursor int

	form        *huh.Form
	path        string
	filePicker  filepicker.Model
	restoreFile string
	confirmed   bool

	status string
	err    error
}

func NewBackupModel(svc *backup.Service) BackupModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".json"}
	fp.Height = 15

	return BackupModel{
		backupService: svc,
		path:          "./backups",
		filePicker:    fp,
	}
}

func (m BackupModel) Title() string { return "Backup" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateMenu:
		return "Esc: back | Enter: select"
	case backupStateWorking:
		return "Working..."
	}

	return "Esc: back | Enter: confirm"
}

func (m BackupModel) Init() tea.Cmd {
	return nil
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(backupResultMsg); ok {
		m.state = backupStateResult
		m.err = result.err
		m.status = result.body
		if result.err != nil {
			m.status = fmt.Sprintf("Error: %v", result.err)
		}

		return m, nil
	}

	switch m.state {
	case backupStateMenu:
		return m.updateMenu(msg)
	case backupStatePath:
		return m.updatePath(msg)
	case backupStateFilePick:
		return m.updateFilePick(msg)
	case backupStateConfirm:
		return m.updateConfirm(msg)
	case backupStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = backupStateMenu
			m.err = nil
			m.status = ""
		}

		return m, nil
	}

	return m, nil
}

func (m BackupModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < 1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if backupAction(m.cursor) == backupActionSave {
			m.form = m.buildPathForm()
			m.state = backupStatePath

			return m, m.form.Init()
		}

		m.state = backupStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m BackupModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = backupStateMenu
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

	m.state = backupStateWorking
	m.status = "Writing backup..."

	return m, m.runSaveCmd()
}

func (m BackupModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = backupStateMenu
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.restoreFile = path
		m.confirmed = false
		m.form = m.buildConfirmForm()
		m.state = backupStateConfirm

		return m, m.form.Init()
	}

	return m, cmd
}

func (m BackupModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = backupStateMenu
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

	if !m.confirmed {
		m.state = backupStateMenu
		return m, nil
	}

	m.state = backupStateWorking
	m.status = "Restoring..."

	return m, m.runRestoreCmd()
}

func (m BackupModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Backup Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./backups").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BackupModel) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Replace ALL data with %s?", filepath.Base(m.restoreFile))).
				Description("Current items, warehouses and permissions are overwritten.").
				Value(&m.confirmed),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateMenu:
		return m.viewMenu()
	case backupStatePath, backupStateConfirm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case backupStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a backup file:\n\n%s", m.filePicker.View()),
		)
	case backupStateWorking:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case backupStateResult:
		return m.viewResult()
	}

	return ""
}

func (m BackupModel) viewMenu() string {
	options := []string{"Save a backup", "Restore from a file"}
	s := "Backup:\n\n"

	for i, opt := range options {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, opt)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m BackupModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type backupResultMsg struct {
	body string
	err  error
}

func (m BackupModel) runSaveCmd() tea.Cmd {
	path := m.path

	return func() tea.Msg {
		data, err := m.backupService.Export()
		if err != nil {
			return backupResultMsg{err: err}
		}

		if err := os.MkdirAll(path, 0o755); err != nil {
			return backupResultMsg{err: err}
		}

		full := filepath.Join(path, backup.Filename(time.Now()))
		if err := os.WriteFile(full, data, 0o644); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{body: fmt.Sprintf("Backup written to %s", full)}
	}
}

func (m BackupModel) runRestoreCmd() tea.Cmd {
	file := m.restoreFile

	return func() tea.Msg {
		f, err := os.Open(file)
		if err != nil {
			return backupResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.backupService.Restore(ctx, f); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{body: fmt.Sprintf("Restored from %s", filepath.Base(file))}
	}
}
