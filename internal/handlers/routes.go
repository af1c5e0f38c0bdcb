package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if h.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.handleHealth)

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Auth routes (public)
	r.Post("/api/admin/login", h.handleLogin)
	r.Post("/api/admin/logout", h.handleLogout)

	// Voting API (public)
	r.Get("/api/periods", h.handleListPeriods)
	r.Get("/api/periods/current", h.handleGetCurrentPeriod)
	r.Get("/api/periods/{id}", h.handleGetPeriod)
	r.Get("/api/periods/{id}/qr", h.handlePeriodQR)
	r.Get("/api/periods/{id}/results", h.handleGetResults)
	r.Post("/api/periods/{id}/nominations", h.handleCreateNomination)
	r.Get("/api/periods/{id}/nominations/mine", h.handleGetOwnNomination)

	// Winner history (public)
	r.Get("/api/winners", h.handleListWinners)
	r.Get("/api/winners/yearly", h.handleGetYearlyWinner)
	r.Get("/api/winners/{id}", h.handleGetWinner)
	r.Get("/api/winners/{id}/reactions", h.handleListReactions)
	r.Post("/api/winners/{id}/reactions", h.handleAddReaction)
	r.Delete("/api/winners/{id}/reactions", h.handleRemoveReaction)
	r.Get("/api/periods/{id}/winners", h.handleGetPeriodWinners)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		// Voting periods
		r.Post("/api/admin/periods", h.handleCreatePeriod)
		r.Put("/api/admin/periods/{id}", h.handleUpdatePeriod)
		r.Post("/api/admin/periods/{id}/close", h.handleClosePeriod)
		r.Post("/api/admin/periods/{id}/activate", h.handleActivatePeriod)
		r.Post("/api/admin/periods/{id}/reset", h.handleResetPeriod)
		r.Delete("/api/admin/periods/{id}", h.handleDeletePeriod)

		// Nominations
		r.Get("/api/admin/periods/{id}/nominations", h.handleListNominations)
		r.Put("/api/admin/nominations/{id}", h.handleUpdateNomination)
		r.Delete("/api/admin/nominations/{id}", h.handleDeleteNomination)

		// Results & winners
		r.Post("/api/admin/periods/{id}/results/recompute", h.handleRecomputeResults)
		r.Post("/api/admin/periods/{id}/winners", h.handleRecordWinners)
		r.Post("/api/admin/winners/{id}/yearly", h.handleMarkYearlyWinner)
		r.Delete("/api/admin/winners/{id}/yearly", h.handleUnmarkYearlyWinner)

		// Employees
		r.Get("/api/admin/employees", h.handleListEmployees)
		r.Get("/api/admin/employees/count", h.handleCountEmployees)
		r.Post("/api/admin/employees/import", h.handleImportEmployees)

		// Configuration
		r.Get("/api/admin/config/eligibility", h.handleGetEligibilityConfig)
		r.Put("/api/admin/config/eligibility", h.handleUpdateEligibilityConfig)
		r.Get("/api/admin/config/groups", h.handleGetGroupConfig)
		r.Put("/api/admin/config/groups", h.handleUpdateGroupConfig)

		// Audit trail
		r.Get("/api/admin/audit", h.handleListAuditEvents)
	})

	return r
}

// handleHealth reports liveness
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, HealthResponse{Status: "ok"})
}
