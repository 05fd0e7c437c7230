package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amsaid/makhzan/cmd/tui/internal/view"
	"github.com/amsaid/makhzan/internal/backup"
	"github.com/amsaid/makhzan/internal/config"
	"github.com/amsaid/makhzan/internal/importer"
	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/inventory/store"
	"github.com/amsaid/makhzan/internal/report"
	"github.com/amsaid/makhzan/internal/storage"
)

type model struct {
	inventoryService *inventory.Service
	reportService    *report.Service
	importService    *importer.Service
	backupService    *backup.Service

	currentView View

	stockView  view.StockModel
	cardView   view.CardModel
	permsView  view.PermissionsModel
	importView view.ImportModel
	exportView view.ExportModel
	backupView view.BackupModel
}

type View int

const (
	ViewMenu   View = 0
	ViewStock  View = 1
	ViewCard   View = 2
	ViewPerms  View = 3
	ViewImport View = 4
	ViewExport View = 5
	ViewBackup View = 6
)

func initialModel() model {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	blob, err := storage.Open(ctx, cfg.Storage.Driver, cfg.StoragePath(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	snapshots, err := store.New(ctx, blob)
	if err != nil {
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	invSvc := inventory.NewService(snapshots)
	repSvc := report.NewService(snapshots, cfg.Ledger.StrictDates)
	impSvc := importer.NewService(invSvc)
	bakSvc := backup.NewService(snapshots)

	return model{
		inventoryService: invSvc,
		reportService:    repSvc,
		importService:    impSvc,
		backupService:    bakSvc,
		currentView:      ViewMenu,
		stockView:        view.NewStockModel(repSvc, invSvc),
		cardView:         view.NewCardModel(invSvc, repSvc),
		permsView:        view.NewPermissionsModel(invSvc),
		importView:       view.NewImportModel(impSvc),
		exportView:       view.NewExportModel(repSvc),
		backupView:       view.NewBackupModel(bakSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.reportService, m.inventoryService)

				return m, m.stockView.Init()
			case "2":
				m.currentView = ViewCard
				m.cardView = view.NewCardModel(m.inventoryService, m.reportService)

				return m, m.cardView.Init()
			case "3":
				m.currentView = ViewPerms
				m.permsView = view.NewPermissionsModel(m.inventoryService)

				return m, m.permsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.reportService)

				return m, m.exportView.Init()
			case "6":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.backupService)

				return m, m.backupView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	case ViewCard:
		var newModel tea.Model
		newModel, cmd = m.cardView.Update(msg)
		m.cardView = newModel.(view.CardModel)
	case ViewPerms:
		var newModel tea.Model
		newModel, cmd = m.permsView.Update(msg)
		m.permsView = newModel.(view.PermissionsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Makhzan TUI\n\n" +
				"1. Stock Report\n" +
				"2. Item Card\n" +
				"3. Permissions\n" +
				"4. Import Items\n" +
				"5. Export Report\n" +
				"6. Backup\n\n" +
				"q. Quit",
		)
	case ViewStock:
		return m.stockView.View()
	case ViewCard:
		return m.cardView.View()
	case ViewPerms:
		return m.permsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewBackup:
		return m.backupView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
