package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"github.com/mkowalik/peervote/internal/services"
)

// adminActor labels authenticated admin actions in the audit trail. The
// session carries no identity beyond the shared password.
const adminActor = "admin"

// handleCreatePeriod opens a new voting period
func (h *Handlers) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req PeriodCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	input := services.CreatePeriodInput{
		Year:        req.Year,
		Month:       req.Month,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		input.EndDate = *req.EndDate
	}

	period, err := h.Periods.Create(r.Context(), input, adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, period)
}

// handleListPeriods returns all voting periods
func (h *Handlers) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Periods.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, periods)
}

// handleGetPeriod returns one voting period
func (h *Handlers) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Periods.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, period)
}

// handleGetCurrentPeriod returns the active voting period
func (h *Handlers) handleGetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Periods.GetCurrent(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, period)
}

// handleUpdatePeriod updates a voting period's fields
func (h *Handlers) handleUpdatePeriod(w http.ResponseWriter, r *http.Request) {
	var req PeriodUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	input := services.UpdatePeriodInput{
		Year:        req.Year,
		Month:       req.Month,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	period, err := h.Periods.Update(r.Context(), chi.URLParam(r, "id"), input, adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, period)
}

// handleClosePeriod transitions a period to CLOSED
func (h *Handlers) handleClosePeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Periods.Close(r.Context(), chi.URLParam(r, "id"), adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, period)
}

// handleActivatePeriod opens a PENDING period for voting
func (h *Handlers) handleActivatePeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Periods.Activate(r.Context(), chi.URLParam(r, "id"), adminActor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, period)
}

// handleResetPeriod wipes a period's nominations and winners. The outcome
// is always 200 with a structured result.
func (h *Handlers) handleResetPeriod(w http.ResponseWriter, r *http.Request) {
	result := h.Periods.Reset(r.Context(), chi.URLParam(r, "id"), adminActor)
	respondOK(w, result)
}

// handleDeletePeriod removes a period and its voting data
func (h *Handlers) handleDeletePeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.Periods.Delete(r.Context(), chi.URLParam(r, "id"), adminActor); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handlePeriodQR serves a QR code image linking to the period's voting page
func (h *Handlers) handlePeriodQR(w http.ResponseWriter, r *http.Request) {
	period, err := h.Periods.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	url := h.BaseURL + "/vote/" + period.ID
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
