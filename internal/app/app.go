package app

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/auth"
	"github.com/mkowalik/peervote/internal/config"
	"github.com/mkowalik/peervote/internal/handlers"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/notify"
	"github.com/mkowalik/peervote/internal/repository"
	"github.com/mkowalik/peervote/internal/services"
	"github.com/mkowalik/peervote/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	cfg      *config.Config
	handlers *handlers.Handlers
	repo     *repository.Repository
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config, adminAuth *auth.Auth) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	auditLog, err := audit.NewService(repo.DB())
	if err != nil {
		return nil, fmt.Errorf("initializing audit trail: %w", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.EmailEnabled {
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
			UseTLS:   cfg.SMTPUseTLS,
		})
	}

	// Initialize services
	cache := services.NewResultCache(cfg.CacheTTL)
	eligibilityService := services.NewEligibilityService(log, repo)
	groupService := services.NewGroupService(log, repo)
	if err := groupService.Reload(context.Background()); err != nil {
		log.Warn("Loading voting group config failed, using defaults", "error", err)
	}
	validationService := services.NewValidationService(log, repo, cfg.Development())
	resultsService := services.NewResultsService(log, repo, groupService, cache)
	periodService := services.NewPeriodService(log, repo, cache, auditLog)
	winnersService := services.NewWinnersService(log, repo, resultsService, groupService,
		periodService, auditLog, notifier, rand.Float64)
	nominationService := services.NewNominationService(log, repo, validationService,
		eligibilityService, cache, auditLog, notifier)
	historyService := services.NewHistoryService(log, repo, auditLog)
	employeeService := services.NewEmployeeService(log, repo, auditLog)

	// Initialize WebSocket hub; it greets clients with the active period
	hub := websocket.New(log, periodService)
	hub.Start()
	periodService.SetBroadcaster(hub)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s%s", preferredIP(), cfg.Addr)
	}

	h := handlers.New(
		periodService,
		nominationService,
		resultsService,
		winnersService,
		historyService,
		employeeService,
		eligibilityService,
		groupService,
		adminAuth,
		hub,
		auditLog,
		log,
		baseURL,
		cfg.HTTPLogging,
	)

	return &App{
		log:      log,
		cfg:      cfg,
		handlers: h,
		repo:     repo,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases app resources
func (a *App) Close() {
	if a.repo != nil {
		a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run() error {
	a.log.Info("Server starting", "addr", a.cfg.Addr, "base_url", a.handlers.BaseURL)
	return http.ListenAndServe(a.cfg.Addr, a.Router())
}

// preferredIP returns the best IPv4 address for LAN access, preferring
// private ranges so QR links work from phones on the same network.
func preferredIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}

	var fallback string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil || ipNet.IP.IsLoopback() {
				continue
			}
			ip := ipNet.IP.String()
			if ipNet.IP.IsPrivate() {
				return ip
			}
			if fallback == "" {
				fallback = ip
			}
		}
	}

	if fallback != "" {
		return fallback
	}
	return "localhost"
}
