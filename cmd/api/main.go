package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/nkhandelwal/hisab/internal/account"
	accountStore "github.com/nkhandelwal/hisab/internal/account/store"
	"github.com/nkhandelwal/hisab/internal/config"
	"github.com/nkhandelwal/hisab/internal/database"
	"github.com/nkhandelwal/hisab/internal/export"
	hisabHttp "github.com/nkhandelwal/hisab/internal/http"
	accountHandler "github.com/nkhandelwal/hisab/internal/http/account"
	exportHandler "github.com/nkhandelwal/hisab/internal/http/export"
	importHandler "github.com/nkhandelwal/hisab/internal/http/importcsv"
	txHandler "github.com/nkhandelwal/hisab/internal/http/transaction"
	"github.com/nkhandelwal/hisab/internal/importer"
	"github.com/nkhandelwal/hisab/internal/ledger"
	ledgerStore "github.com/nkhandelwal/hisab/internal/ledger/store"
	"github.com/nkhandelwal/hisab/internal/watch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	hub := watch.NewHub()

	var (
		accounts       = accountStore.New(db)
		accountService = account.NewService(accounts)
		ledgerService  = ledger.NewService(ledgerStore.New(db), accounts, hub)
		importService  = importer.NewService(accountService, ledgerService)
		exportService  = export.NewService(ledgerService, accountService)
	)

	var (
		accountH = accountHandler.NewHandler(accountService, hub)
		txH      = txHandler.NewHandler(ledgerService, hub)
		importH  = importHandler.NewHandler(importService, hub)
		exportH  = exportHandler.NewHandler(exportService)
	)

	router := hisabHttp.New(cfg.Auth.JWTSecret, accountH, txH, importH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
