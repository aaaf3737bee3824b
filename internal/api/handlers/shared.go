// Package handlers adapts HTTP requests onto the store, service and calculation packages
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rgehrsitz/gravityless/internal/api/middleware"
	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/domain"
)

const dateLayout = "2006-01-02"

// Clock returns the current time; handlers take one so tests can pin "now"
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// asOf honours an optional ?as_of=YYYY-MM-DD override
func asOf(r *http.Request, clock Clock) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return clock.now(), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: as_of must be YYYY-MM-DD", apperrors.ErrInvalidInput)
		}
	}
	return t, nil
}

// owner returns the authenticated owner or writes a 401
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), nil)
		return "", false
	}
	return id, true
}

// pathID reads and validates the {id} URL parameter
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), id)
		return "", false
	}
	return id, true
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	return nil
}

// respondServiceError maps sentinel and validation errors onto status codes
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Error())
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidUUID):
		response.RespondError(w, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, apperrors.ErrIncomeSourceNotFound),
		errors.Is(err, apperrors.ErrExpenseNotFound),
		errors.Is(err, apperrors.ErrGoalNotFound):
		response.RespondError(w, http.StatusNotFound, message, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.RespondError(w, http.StatusForbidden, message, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		response.RespondError(w, http.StatusUnauthorized, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
