package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleGetResults returns the aggregated results of a period, served from
// the short-lived cache when fresh.
func (h *Handlers) handleGetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.Results.ComputeResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

// handleRecomputeResults recomputes a period's results, bypassing the cache
func (h *Handlers) handleRecomputeResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.Results.RecomputeResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

// handleRecordWinners selects and persists the period's winners, closing it
func (h *Handlers) handleRecordWinners(w http.ResponseWriter, r *http.Request) {
	recorded, err := h.Winners.RecordWinners(r.Context(), chi.URLParam(r, "id"), adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, recorded)
}
