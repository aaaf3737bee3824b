package handlers

import (
	"net/http"
	"time"

	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/store"
)

// ExpenseHandler handles the owner's expense records
type ExpenseHandler struct {
	repo  *store.ExpenseRepository
	clock Clock
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(repo *store.ExpenseRepository, clock Clock) *ExpenseHandler {
	return &ExpenseHandler{repo: repo, clock: clock}
}

// List returns expenses newest first. ?since=YYYY-MM-DD limits the range.
//
// Endpoint: GET /api/expenses
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var (
		expenses []domain.Expense
		err      error
	)
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, perr := time.Parse(dateLayout, raw)
		if perr != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid since", "since must be YYYY-MM-DD")
			return
		}
		expenses, err = h.repo.ListSince(r.Context(), ownerID, since)
	} else {
		expenses, err = h.repo.List(r.Context(), ownerID)
	}
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveExpenses.Error(), err)
		return
	}
	response.RespondJSON(w, http.StatusOK, expenses)
}

// Create records an expense. A missing date means today.
//
// Endpoint: POST /api/expenses
// Response: 201 Created
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var e domain.Expense
	if err := decodeJSON(r, &e); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if err := validateExpense(e); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	e.ID = ""
	e.OwnerID = ownerID
	if e.Date.IsZero() {
		e.Date = h.clock.now()
	}

	created, err := h.repo.Create(r.Context(), e)
	if err != nil {
		respondServiceError(w, "failed to create expense", err)
		return
	}
	response.RespondJSON(w, http.StatusCreated, created)
}

// Delete removes an expense.
//
// Endpoint: DELETE /api/expenses/{id}
// Response: 204 No Content
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), ownerID, id); err != nil {
		respondServiceError(w, "failed to delete expense", err)
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

func validateExpense(e domain.Expense) error {
	switch {
	case !e.Amount.IsPositive():
		return &domain.ValidationError{Field: "amount", Message: "must be positive"}
	case e.RecurringDay < 0 || e.RecurringDay > 31:
		return &domain.ValidationError{Field: "recurring_day", Message: "must be between 1 and 31"}
	case e.IsLoan && e.LoanPrincipal.IsNegative():
		return &domain.ValidationError{Field: "loan_principal", Message: "cannot be negative"}
	case e.IsLoan && e.LoanTenureMonths < 0:
		return &domain.ValidationError{Field: "loan_tenure_months", Message: "cannot be negative"}
	}
	return nil
}
