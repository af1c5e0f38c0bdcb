package handlers

import (
	"context"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/auth"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/services"
	"github.com/mkowalik/peervote/internal/websocket"
)

// AuditReader lists recorded audit events for the admin API.
type AuditReader interface {
	List(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Periods     services.PeriodServicer
	Nominations services.NominationServicer
	Results     services.ResultsServicer
	Winners     services.WinnersServicer
	History     services.HistoryServicer
	Employees   services.EmployeeServicer
	Eligibility services.EligibilityServicer
	Groups      services.GroupServicer
	Auth        *auth.Auth
	Hub         *websocket.Hub
	AuditLog    AuditReader
	Log         logger.Logger

	// BaseURL is the externally reachable address, used for QR links.
	BaseURL string
	// LogRequests enables per-request HTTP logging.
	LogRequests bool
}

// New creates a new Handlers instance with all dependencies
func New(
	periods services.PeriodServicer,
	nominations services.NominationServicer,
	results services.ResultsServicer,
	winners services.WinnersServicer,
	history services.HistoryServicer,
	employees services.EmployeeServicer,
	eligibility services.EligibilityServicer,
	groups services.GroupServicer,
	adminAuth *auth.Auth,
	hub *websocket.Hub,
	auditLog AuditReader,
	log logger.Logger,
	baseURL string,
	logRequests bool,
) *Handlers {
	return &Handlers{
		Periods:     periods,
		Nominations: nominations,
		Results:     results,
		Winners:     winners,
		History:     history,
		Employees:   employees,
		Eligibility: eligibility,
		Groups:      groups,
		Auth:        adminAuth,
		Hub:         hub,
		AuditLog:    auditLog,
		Log:         log,
		BaseURL:     baseURL,
		LogRequests: logRequests,
	}
}

// NewForTesting creates a Handlers instance with a known admin password and
// no websocket hub. Tests wire only the services they exercise.
func NewForTesting(
	periods services.PeriodServicer,
	nominations services.NominationServicer,
	results services.ResultsServicer,
	winners services.WinnersServicer,
	history services.HistoryServicer,
	employees services.EmployeeServicer,
	eligibility services.EligibilityServicer,
	groups services.GroupServicer,
) *Handlers {
	return &Handlers{
		Periods:     periods,
		Nominations: nominations,
		Results:     results,
		Winners:     winners,
		History:     history,
		Employees:   employees,
		Eligibility: eligibility,
		Groups:      groups,
		Auth:        auth.New("test-password"),
		Log:         logger.New(),
		BaseURL:     "http://localhost:8080",
	}
}
