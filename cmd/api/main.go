package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/amsaid/makhzan/internal/backup"
	"github.com/amsaid/makhzan/internal/config"
	makhzanHttp "github.com/amsaid/makhzan/internal/http"
	backupHandler "github.com/amsaid/makhzan/internal/http/backup"
	importHandler "github.com/amsaid/makhzan/internal/http/importcsv"
	itemsHandler "github.com/amsaid/makhzan/internal/http/items"
	permissionsHandler "github.com/amsaid/makhzan/internal/http/permissions"
	reportsHandler "github.com/amsaid/makhzan/internal/http/reports"
	warehousesHandler "github.com/amsaid/makhzan/internal/http/warehouses"
	"github.com/amsaid/makhzan/internal/importer"
	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/inventory/store"
	"github.com/amsaid/makhzan/internal/report"
	"github.com/amsaid/makhzan/internal/storage"
)

func main() {
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
	defer blob.Close()

	snapshots, err := store.New(ctx, blob)
	if err != nil {
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	var (
		inventoryService = inventory.NewService(snapshots)
		reportService    = report.NewService(snapshots, cfg.Ledger.StrictDates)
		importService    = importer.NewService(inventoryService)
		backupService    = backup.NewService(snapshots)
	)

	var (
		itemsH       = itemsHandler.NewHandler(inventoryService)
		warehousesH  = warehousesHandler.NewHandler(inventoryService)
		permissionsH = permissionsHandler.NewHandler(inventoryService)
		reportsH     = reportsHandler.NewHandler(reportService)
		importH      = importHandler.NewHandler(importService)
		backupH      = backupHandler.NewHandler(backupService)
	)

	router := makhzanHttp.New(itemsH, warehousesH, permissionsH, reportsH, importH, backupH,
		cfg.CORS.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server",
		"app", cfg.App.Name,
		"addr", addr,
		"storage", cfg.Storage.Driver)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
