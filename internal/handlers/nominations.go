package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mkowalik/peervote/internal/services"
)

// handleCreateNomination submits a nomination in a voting period
func (h *Handlers) handleCreateNomination(w http.ResponseWriter, r *http.Request) {
	var req NominationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	input := services.NominationInput{
		EmployeeID:     req.EmployeeID,
		NominatorEmail: req.NominatorEmail,
		NominatorName:  req.NominatorName,
		Reason:         req.Reason,
		Criteria:       req.Criteria,
	}
	nomination, err := h.Nominations.Create(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, nomination)
}

// handleGetOwnNomination returns the caller's nomination in a period,
// looked up by the nominator query parameter.
func (h *Handlers) handleGetOwnNomination(w http.ResponseWriter, r *http.Request) {
	nominator := strings.TrimSpace(r.URL.Query().Get("nominator"))
	if nominator == "" {
		respondError(w, BadRequest("Missing nominator parameter"))
		return
	}

	nomination, err := h.Nominations.GetByNominator(r.Context(), chi.URLParam(r, "id"), nominator)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nomination)
}

// handleListNominations returns all nominations of a period
func (h *Handlers) handleListNominations(w http.ResponseWriter, r *http.Request) {
	nominations, err := h.Nominations.ListForPeriod(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nominations)
}

// handleUpdateNomination amends a nomination's reason or criteria
func (h *Handlers) handleUpdateNomination(w http.ResponseWriter, r *http.Request) {
	var req NominationUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	input := services.UpdateNominationInput{Reason: req.Reason, Criteria: req.Criteria}
	nomination, err := h.Nominations.Update(r.Context(), chi.URLParam(r, "id"), input, adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nomination)
}

// handleDeleteNomination removes a nomination
func (h *Handlers) handleDeleteNomination(w http.ResponseWriter, r *http.Request) {
	if err := h.Nominations.Delete(r.Context(), chi.URLParam(r, "id"), adminActor); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}
