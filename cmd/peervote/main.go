package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mkowalik/peervote/internal/app"
	"github.com/mkowalik/peervote/internal/auth"
	"github.com/mkowalik/peervote/internal/config"
	"github.com/mkowalik/peervote/internal/logger"
)

var version = "dev"

func main() {
	addr := flag.String("addr", "", "Listen address (overrides APP_ADDR)")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	adminPw := flag.String("adminpw", "", "Admin password (overrides ADMIN_PASSWORD, auto-generated if not set)")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `PeerVote - Peer Nomination and Recognition Voting

Usage:
  peervote [options]

Options:
  -addr string   Listen address, e.g. :8080 (default from APP_ADDR)
  -db string     SQLite database path (default from DB_PATH)
  -adminpw str   Admin password (auto-generated if not set)
  -loglevel str  Log level: debug, info, warn, error
  -version       Show version and exit
  -help          Show this help message

Configuration is read from the environment first; flags override it.
See APP_ADDR, DB_PATH, APP_ENV, ADMIN_PASSWORD, BASE_URL, LOG_LEVEL,
HTTP_LOGGING, RESULT_CACHE_TTL and the EMAIL_*/SMTP_* variables.

Examples:
  peervote                         # Run on :8080 with peervote.db
  peervote -addr :9000             # Run on port 9000
  peervote -db /data/votes.db      # Use custom database path
  APP_ENV=production peervote      # Enforce production policies

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("peervote %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *adminPw != "" {
		cfg.AdminPassword = *adminPw
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	password := cfg.AdminPassword
	if password == "" {
		password = auth.GeneratePassword()
		appLog.Info("Generated admin password", "password", password)
	}
	adminAuth := auth.New(password)

	a, err := app.New(appLog, &cfg, adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
