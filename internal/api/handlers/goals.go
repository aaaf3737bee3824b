package handlers

import (
	"net/http"
	"time"

	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/goal"
	"github.com/shopspring/decimal"
)

// GoalHandler solves savings goals. It is stateless.
type GoalHandler struct {
	clock Clock
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(clock Clock) *GoalHandler {
	return &GoalHandler{clock: clock}
}

// SIPRequest asks for the monthly contribution that reaches Target by TargetDate
type SIPRequest struct {
	Name         string          `json:"name"`
	Target       decimal.Decimal `json:"target"`
	Current      decimal.Decimal `json:"current"`
	TargetDate   time.Time       `json:"target_date"`
	AnnualReturn decimal.Decimal `json:"annual_return"`
}

// TimeRequest asks how long a fixed monthly contribution takes to reach Target
type TimeRequest struct {
	Current      decimal.Decimal `json:"current"`
	Monthly      decimal.Decimal `json:"monthly"`
	Target       decimal.Decimal `json:"target"`
	AnnualReturn decimal.Decimal `json:"annual_return"`
}

// TimeResponse wraps a projection with its length in years
type TimeResponse struct {
	goal.Projection
	Years decimal.Decimal `json:"years"`
}

// SIP solves for the required monthly contribution.
//
// Endpoint: POST /api/goals/sip
func (h *GoalHandler) SIP(w http.ResponseWriter, r *http.Request) {
	var req SIPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if !req.Target.IsPositive() {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "target: must be positive")
		return
	}
	if req.TargetDate.IsZero() {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "target_date: is required")
		return
	}

	plan := goal.Evaluate(domain.Goal{
		Name:         req.Name,
		Target:       req.Target,
		Current:      req.Current,
		TargetDate:   req.TargetDate,
		AnnualReturn: req.AnnualReturn,
	}, h.clock.now())
	response.RespondJSON(w, http.StatusOK, plan)
}

// Time solves for the months needed to reach the target.
//
// Endpoint: POST /api/goals/time
func (h *GoalHandler) Time(w http.ResponseWriter, r *http.Request) {
	var req TimeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, "invalid request body", err)
		return
	}
	if req.Current.IsNegative() || req.Monthly.IsNegative() || req.Target.IsNegative() {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "amounts cannot be negative")
		return
	}

	rate := req.AnnualReturn
	if rate.IsZero() {
		rate = goal.DefaultAnnualReturn
	}
	p := goal.TimeToTarget(req.Current, req.Monthly, req.Target, rate)
	response.RespondJSON(w, http.StatusOK, TimeResponse{Projection: p, Years: p.Years()})
}
