package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// handleListWinners returns winner history filtered by year and optionally
// month. Without a year the current year is used.
func (h *Handlers) handleListWinners(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntQuery(r, "year", time.Now().Year())
	if err != nil {
		respondError(w, err)
		return
	}
	month, err := parseIntQuery(r, "month", 0)
	if err != nil {
		respondError(w, err)
		return
	}

	if month > 0 {
		winners, err := h.History.ByYearMonth(r.Context(), year, month)
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, winners)
		return
	}

	winners, err := h.History.ByYear(r.Context(), year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, winners)
}

// handleGetWinner returns one winner record
func (h *Handlers) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.History.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, winner)
}

// handleGetPeriodWinners returns all winner records of a period
func (h *Handlers) handleGetPeriodWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.History.ForPeriod(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, winners)
}

// handleGetYearlyWinner returns the record flagged as the year's winner
func (h *Handlers) handleGetYearlyWinner(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntQuery(r, "year", time.Now().Year())
	if err != nil {
		respondError(w, err)
		return
	}

	winner, err := h.History.YearlyWinner(r.Context(), year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, winner)
}

// handleMarkYearlyWinner flags a winner record as its year's winner
func (h *Handlers) handleMarkYearlyWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.History.MarkYearlyWinner(r.Context(), chi.URLParam(r, "id"), adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, winner)
}

// handleUnmarkYearlyWinner removes the yearly flag
func (h *Handlers) handleUnmarkYearlyWinner(w http.ResponseWriter, r *http.Request) {
	if err := h.History.UnmarkYearlyWinner(r.Context(), chi.URLParam(r, "id"), adminActor); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleListReactions returns a winner record's reactions
func (h *Handlers) handleListReactions(w http.ResponseWriter, r *http.Request) {
	reactions, err := h.History.Reactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, reactions)
}

// handleAddReaction records an emoji reaction; repeats are no-ops
func (h *Handlers) handleAddReaction(w http.ResponseWriter, r *http.Request) {
	var req ReactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.History.AddReaction(r.Context(), chi.URLParam(r, "id"), req.UserID, req.UserName, req.Emoji); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Reaction added")
}

// handleRemoveReaction removes an emoji reaction; absent reactions are no-ops
func (h *Handlers) handleRemoveReaction(w http.ResponseWriter, r *http.Request) {
	var req ReactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.History.RemoveReaction(r.Context(), chi.URLParam(r, "id"), req.UserID, req.Emoji); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Reaction removed")
}
