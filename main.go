package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/db"
	"github.com/danielhkuo/livepoll/live"
	"github.com/danielhkuo/livepoll/router"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/store/memstore"
	"github.com/danielhkuo/livepoll/store/sqlstore"
	"github.com/danielhkuo/livepoll/voting"
)

func main() {
	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the vote ledger
	var ledger store.Store
	switch cfg.DatabaseType {
	case "memory":
		ledger = memstore.New()
		slog.Warn("Using in-memory store; polls will not survive a restart")
	default:
		dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Verify connection
		if err := dbConn.Ping(); err != nil {
			slog.Error("database ping failed", "error", err)
			os.Exit(1)
		}

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		ledger = sqlstore.New(dbConn)
	}

	// Wire the core: admission/aggregation, registry, broadcast engine
	svc := voting.NewService(ledger, cfg.VoteCooldown)
	registry := live.NewRegistry()
	engine := live.NewEngine(registry, svc, cfg.KeepAliveInterval)

	// Create router
	mux := router.NewRouter(svc, engine, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "cooldown", cfg.VoteCooldown, "keepalive", cfg.KeepAliveInterval)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
