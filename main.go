package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/tally-board/auth"
	"github.com/danielhkuo/tally-board/catalog"
	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/ledger"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/router"
	"github.com/danielhkuo/tally-board/voting"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load candidates
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			slog.Error("catalog load failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Catalog ready", "candidates", cat.Names())

	// Contract: in-process ledger or remote
	var client contract.Client
	var backend contract.Backend
	if cfg.HostsLedger() {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database open failed", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		l := ledger.New(dbConn, cfg.VoterSalt, slog.Default().With("component", "ledger"))
		backend = l
		client = contract.NewLocalClient(l)
	} else {
		opts := []contract.HTTPOption{contract.WithTimeout(cfg.ContractTimeout)}
		if cfg.OwnerSalt != "" {
			opts = append(opts, contract.WithOwnerKey(auth.GenerateOwnerKey(cfg.ContractID, cfg.OwnerSalt)))
		}
		client = contract.NewHTTPClient(cfg.ContractURL, opts...)
		slog.Info("Using remote contract", "url", cfg.ContractURL)
	}

	svc := voting.NewService(voting.Dependencies{
		Catalog:          cat,
		Contract:         client,
		FetchConcurrency: cfg.FetchConcurrency,
		Logger:           slog.Default(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First reconciliation so the dashboard starts from remote state
	svc.Refresh(ctx)
	go svc.Sync.Run(ctx, cfg.RefreshInterval)

	// Create router
	mux := router.NewRouter(svc, backend, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "serve_contract", cfg.ServeContract)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
