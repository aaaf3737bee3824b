package handlers

import (
	"net/http"
	"strconv"

	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/store"
	"github.com/shopspring/decimal"
)

// InsightHandler serves the read-only analyses over the owner's sources
type InsightHandler struct {
	repo   *store.IncomeRepository
	scorer *optimize.Scorer
	clock  Clock
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(repo *store.IncomeRepository, scorer *optimize.Scorer, clock Clock) *InsightHandler {
	if scorer == nil {
		scorer = optimize.NewScorer()
	}
	return &InsightHandler{repo: repo, scorer: scorer, clock: clock}
}

// OptimizeResponse is the ranked efficiency table plus the warnings
type OptimizeResponse struct {
	Scores     []optimize.Score    `json:"scores"`
	Suggestion optimize.Suggestion `json:"suggestion"`
}

// StrategyResponse describes one allocation preset
type StrategyResponse struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Theory      string         `json:"theory"`
	Split       optimize.Split `json:"split"`
}

// Events lists upcoming payouts and maturities.
//
// Endpoint: GET /api/events?window=60&limit=5
func (h *InsightHandler) Events(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	now, err := asOf(r, h.clock)
	if err != nil {
		respondServiceError(w, "invalid as_of", err)
		return
	}
	window, ok := intParam(w, r, "window", events.DefaultWindowDays)
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", 0)
	if !ok {
		return
	}

	sources, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveSources.Error(), err)
		return
	}

	list := events.Extract(sources, now, window)
	if limit > 0 {
		list = events.Top(list, limit)
	}
	response.RespondJSON(w, http.StatusOK, list)
}

// Optimize ranks sources by efficiency and flags time leaks and risk bombs.
//
// Endpoint: GET /api/optimize
func (h *InsightHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	sources, err := h.repo.List(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveSources.Error(), err)
		return
	}

	scores := h.scorer.ScoreAll(sources)
	response.RespondJSON(w, http.StatusOK, OptimizeResponse{
		Scores:     optimize.RankByEfficiency(scores),
		Suggestion: optimize.Suggest(scores),
	})
}

// Strategies lists the allocation presets.
//
// Endpoint: GET /api/allocation/strategies
func (h *InsightHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	all := optimize.AllStrategies()
	out := make([]StrategyResponse, len(all))
	for i, s := range all {
		out[i] = StrategyResponse{
			Key:         s.Key(),
			Name:        s.Name(),
			Description: s.Description(),
			Theory:      s.Theory(),
			Split:       s.Split(),
		}
	}
	response.RespondJSON(w, http.StatusOK, out)
}

// Allocate splits an amount with a preset. Unknown strategies fall back to emergency_first.
//
// Endpoint: GET /api/allocation?amount=100000&strategy=max_return
func (h *InsightHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil || amount.IsNegative() {
		response.RespondError(w, http.StatusBadRequest, "invalid amount", "amount must be a non-negative number")
		return
	}
	strategy := optimize.CreateAllocationStrategy(r.URL.Query().Get("strategy"))
	response.RespondJSON(w, http.StatusOK, strategy.Allocate(amount))
}

func intParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		response.RespondError(w, http.StatusBadRequest, "invalid "+name, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
