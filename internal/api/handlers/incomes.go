package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/store"
)

// IncomeHandler handles CRUD for income sources and their payout schedules
type IncomeHandler struct {
	repo   *store.IncomeRepository
	engine *calculation.Engine
	clock  Clock
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(repo *store.IncomeRepository, engine *calculation.Engine, clock Clock) *IncomeHandler {
	return &IncomeHandler{repo: repo, engine: engine, clock: clock}
}

// IncomeRequest is the create/update body: the form fields plus an optional payout schedule.
// On update, omitted fields keep their stored values and a nil payouts list leaves the schedule alone.
type IncomeRequest struct {
	domain.IncomeDraft
	Payouts []domain.PayoutSchedule `json:"payouts,omitempty"`
}

// ReorderRequest lists source IDs in their new display order
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// List returns the owner's sources with metrics, in display order.
//
// Endpoint: GET /api/incomes
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	now, err := asOf(r, h.clock)
	if err != nil {
		respondServiceError(w, "invalid as_of", err)
		return
	}

	sources, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveSources.Error(), err)
		return
	}
	response.RespondJSON(w, http.StatusOK, h.engine.ComputeAll(sources, now))
}

// Get returns one source with its metrics.
//
// Endpoint: GET /api/incomes/{id}
func (h *IncomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	now, err := asOf(r, h.clock)
	if err != nil {
		respondServiceError(w, "invalid as_of", err)
		return
	}

	src, err := h.repo.Get(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, "failed to get income source", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, domain.SourceMetrics{Source: src, Metrics: h.engine.ComputeMetrics(src, now)})
}

// Create stores a new source at the end of the owner's list.
//
// Endpoint: POST /api/incomes
// Response: 201 Created with the source and its metrics
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	req := IncomeRequest{IncomeDraft: domain.NewIncomeDraft()}
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}
	if err := validatePayouts(req.Payouts); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	src := req.ToIncomeSource(ownerID)
	src.Payouts = req.Payouts
	created, err := h.repo.Create(r.Context(), src)
	if err != nil {
		respondServiceError(w, "failed to create income source", err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, domain.SourceMetrics{Source: created, Metrics: h.engine.ComputeMetrics(created, h.clock.now())})
}

// Update applies a partial update to a source.
//
// Endpoint: PUT /api/incomes/{id}
func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.Get(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, "failed to get income source", err)
		return
	}

	req := IncomeRequest{IncomeDraft: domain.DraftFromSource(existing)}
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}
	if err := validatePayouts(req.Payouts); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	src := req.ToIncomeSource(ownerID)
	src.ID = existing.ID
	src.CreatedAt = existing.CreatedAt
	src.SortOrder = existing.SortOrder
	src.Payouts = existing.Payouts

	if err := h.repo.Update(r.Context(), src); err != nil {
		respondServiceError(w, "failed to update income source", err)
		return
	}
	if req.Payouts != nil {
		if src.Payouts, err = h.repo.ReplacePayouts(r.Context(), ownerID, id, req.Payouts); err != nil {
			respondServiceError(w, "failed to replace payouts", err)
			return
		}
	}
	response.RespondJSON(w, http.StatusOK, domain.SourceMetrics{Source: src, Metrics: h.engine.ComputeMetrics(src, h.clock.now())})
}

// Delete removes a source and its payouts.
//
// Endpoint: DELETE /api/incomes/{id}
// Response: 204 No Content
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), ownerID, id); err != nil {
		respondServiceError(w, "failed to delete income source", err)
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Reorder sets the display order of the owner's sources.
//
// Endpoint: POST /api/incomes/reorder
// Response: 204 No Content
func (h *IncomeHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if len(req.IDs) == 0 {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", "ids is required")
		return
	}
	for _, id := range req.IDs {
		if err := uuid.Validate(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), id)
			return
		}
	}

	if err := h.repo.Reorder(r.Context(), ownerID, req.IDs); err != nil {
		respondServiceError(w, "failed to reorder income sources", err)
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ReplacePayouts swaps the payout schedule of a source.
//
// Endpoint: PUT /api/incomes/{id}/payouts
func (h *IncomeHandler) ReplacePayouts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payouts []domain.PayoutSchedule
	if err := decodeJSON(r, &payouts); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if err := validatePayouts(payouts); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	stored, err := h.repo.ReplacePayouts(r.Context(), ownerID, id, payouts)
	if err != nil {
		respondServiceError(w, "failed to replace payouts", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, stored)
}

func validatePayouts(payouts []domain.PayoutSchedule) error {
	for i, p := range payouts {
		field := fmt.Sprintf("payouts[%d]", i)
		if p.Date.IsZero() {
			return &domain.ValidationError{Field: field + ".date", Message: "is required"}
		}
		if p.Amount.IsNegative() {
			return &domain.ValidationError{Field: field + ".amount", Message: "cannot be negative"}
		}
	}
	return nil
}
