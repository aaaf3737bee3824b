package handlers

import (
	"context"
	"net/http"

	"github.com/rgehrsitz/gravityless/internal/api/response"
)

// HealthChecker is satisfied by *store.Store
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	db      HealthChecker
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db HealthChecker, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Health checks database connectivity.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable when the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Version:  h.version,
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Version:  h.version,
	})
}
