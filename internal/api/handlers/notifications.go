package handlers

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/store"
)

// NotificationHandler manages payout reminder preferences
type NotificationHandler struct {
	repo          *store.NotificationRepository
	defaultWindow int
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(repo *store.NotificationRepository, defaultWindow int) *NotificationHandler {
	return &NotificationHandler{repo: repo, defaultWindow: defaultWindow}
}

// NotificationRequest is the body of PUT /api/notifications
type NotificationRequest struct {
	Email      string `json:"email"`
	Enabled    bool   `json:"enabled"`
	WindowDays int    `json:"window_days"`
}

// Get returns the owner's settings, or disabled defaults when none were saved.
//
// Endpoint: GET /api/notifications
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	ns, err := h.repo.Get(r.Context(), ownerID)
	if errors.Is(err, store.ErrNotificationSettingsNotFound) {
		response.RespondJSON(w, http.StatusOK, store.NotificationSettings{OwnerID: ownerID, WindowDays: h.defaultWindow})
		return
	}
	if err != nil {
		respondServiceError(w, "failed to get notification settings", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, ns)
}

// Put saves the owner's settings.
//
// Endpoint: PUT /api/notifications
func (h *NotificationHandler) Put(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req NotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "email: invalid address")
		return
	}
	if req.WindowDays < 0 || req.WindowDays > 365 {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "window_days: must be between 0 and 365")
		return
	}
	if req.WindowDays == 0 {
		req.WindowDays = h.defaultWindow
	}

	saved, err := h.repo.Upsert(r.Context(), store.NotificationSettings{
		OwnerID:    ownerID,
		Email:      req.Email,
		Enabled:    req.Enabled,
		WindowDays: req.WindowDays,
	})
	if err != nil {
		respondServiceError(w, "failed to save notification settings", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, saved)
}
