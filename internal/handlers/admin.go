package handlers

import (
	"net/http"

	"github.com/mkowalik/peervote/internal/models"
)

// handleListEmployees returns all active employees
func (h *Handlers) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, employees)
}

// handleCountEmployees returns the active employee count
func (h *Handlers) handleCountEmployees(w http.ResponseWriter, r *http.Request) {
	count, err := h.Employees.CountActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, CountResponse{Count: count})
}

// handleImportEmployees upserts employees from an uploaded CSV file. The
// file may be multipart under "file" or the raw request body.
func (h *Handlers) handleImportEmployees(w http.ResponseWriter, r *http.Request) {
	reader := r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	}

	result, err := h.Employees.ImportCSV(r.Context(), reader, adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleGetEligibilityConfig returns the eligibility policy
func (h *Handlers) handleGetEligibilityConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Eligibility.Config(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, cfg)
}

// handleUpdateEligibilityConfig replaces the eligibility policy
func (h *Handlers) handleUpdateEligibilityConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.EligibilityConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Eligibility.UpdateConfig(r.Context(), cfg); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, cfg)
}

// handleGetGroupConfig returns the voting group configuration
func (h *Handlers) handleGetGroupConfig(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Groups.Config())
}

// handleUpdateGroupConfig replaces the voting group configuration and
// rebuilds the assignment tables
func (h *Handlers) handleUpdateGroupConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.VotingGroupConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Groups.UpdateConfig(r.Context(), cfg); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Groups.Config())
}

// handleListAuditEvents returns recent audit events, newest first
func (h *Handlers) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	if h.AuditLog == nil {
		respondOK(w, []struct{}{})
		return
	}
	limit, err := parseIntQuery(r, "limit", 100)
	if err != nil {
		respondError(w, err)
		return
	}

	events, err := h.AuditLog.List(r.Context(), limit)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}
	respondOK(w, events)
}
