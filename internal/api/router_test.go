package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/gravityless/internal/api/handlers"
	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/goal"
	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/service"
	"github.com/rgehrsitz/gravityless/internal/store"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	ctx := context.Background()
	s, err := store.Open(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(ctx))

	log := logrus.New()
	log.SetOutput(io.Discard)

	engine := calculation.NewEngine()
	incomes := store.NewIncomeRepository(s)
	expenses := store.NewExpenseRepository(s)

	deps := Dependencies{
		Store:         s,
		Incomes:       incomes,
		Expenses:      expenses,
		Notifications: store.NewNotificationRepository(s),
		Dashboard:     service.NewDashboardService(engine, incomes, expenses, service.DefaultOptions(), log),
		Engine:        engine,
		Scorer:        optimize.NewScorer(),
		Clock:         handlers.Clock(func() time.Time { return testNow }),
		Version:       "test",
	}
	cfg := &config.ServerConfig{
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Auth:     config.AuthConfig{JWTSecret: testSecret},
		Reminder: config.ReminderConfig{WindowDays: 7},
	}
	return NewRouter(deps, cfg, log)
}

func token(t *testing.T, owner string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   owner,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, h http.Handler, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if owner != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, owner))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func TestHealthAndDemo(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/system/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[handlers.HealthResponse](t, w)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)

	w = do(t, h, http.MethodGet, "/api/demo/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[service.Dashboard](t, w)
	assert.Len(t, d.Sources, 4)
	assert.True(t, d.Totals.TotalMonthlyExpense.Equal(decimal.NewFromInt(65000)))

	w = do(t, h, http.MethodGet, "/api/demo/dashboard?as_of=june", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnerRoutesRequireToken(t *testing.T) {
	h := setupRouter(t)

	for _, path := range []string{"/api/dashboard", "/api/incomes", "/api/expenses", "/api/events", "/api/optimize", "/api/notifications"} {
		w := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestIncomeLifecycle(t *testing.T) {
	h := setupRouter(t)

	body := map[string]any{
		"name":            "Corporate bond",
		"category":        "Bonds",
		"type":            "Passive",
		"amount_invested": "100000",
		"growth_rate":     9,
		"risk_factor":     3,
		"investment_date": "2025-01-01T00:00:00Z",
		"invested_until":  "2026-01-01T00:00:00Z",
		"payouts": []map[string]any{
			{"date": "2025-07-01T00:00:00Z", "amount": "4500", "type": "Interest"},
			{"date": "2026-01-01T00:00:00Z", "amount": "4500", "type": "Interest"},
			{"date": "2026-01-01T00:00:00Z", "amount": "100000", "type": "Principal"},
		},
	}
	w := do(t, h, http.MethodPost, "/api/incomes", "alice", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.SourceMetrics](t, w)
	id := created.Source.ID
	require.NotEmpty(t, id)
	assert.Equal(t, domain.CategoryBonds, created.Source.Category)
	assert.Len(t, created.Source.Payouts, 3)
	assert.True(t, created.Metrics.Invested.Equal(decimal.NewFromInt(100000)))

	w = do(t, h, http.MethodGet, "/api/incomes", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.SourceMetrics](t, w)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Source.Payouts, 3)

	w = do(t, h, http.MethodGet, "/api/incomes/"+id, "bob", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, h, http.MethodGet, "/api/incomes/not-a-uuid", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/incomes/"+id, "alice", map[string]any{"name": "Renamed bond", "risk_factor": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.SourceMetrics](t, w)
	assert.Equal(t, "Renamed bond", updated.Source.Name)
	assert.Equal(t, domain.CategoryBonds, updated.Source.Category, "omitted fields are kept")
	assert.Len(t, updated.Source.Payouts, 3)

	w = do(t, h, http.MethodPut, "/api/incomes/"+id, "alice", map[string]any{"risk_factor": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode[response.ErrorResponse](t, w)
	assert.Equal(t, "validation failed", errBody.Error)

	w = do(t, h, http.MethodPut, "/api/incomes/"+id+"/payouts", "alice", []map[string]any{
		{"date": "2025-12-01T00:00:00Z", "amount": "9000", "type": "Interest"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	payouts := decode[[]domain.PayoutSchedule](t, w)
	require.Len(t, payouts, 1)
	assert.Equal(t, domain.PayoutScheduled, payouts[0].Status)

	w = do(t, h, http.MethodPost, "/api/incomes/reorder", "alice", handlers.ReorderRequest{IDs: []string{id}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodDelete, "/api/incomes/"+id, "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/incomes/"+id, "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIncomeCreate_Rejects(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"risk_factor": 3}},
		{"negative invested", map[string]any{"name": "x", "amount_invested": "-1"}},
		{"unknown field", map[string]any{"name": "x", "colour": "red"}},
		{"payout without date", map[string]any{"name": "x", "payouts": []map[string]any{{"amount": "10"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/incomes", "alice", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestExpensesAndDashboard(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodPost, "/api/incomes", "alice", map[string]any{
		"name": "Salary", "type": "Active", "category": "Job", "monthly_income": "100000", "risk_factor": 2, "weekly_hours": 40,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/expenses", "alice", map[string]any{
		"category": "Needs", "amount": "30000", "description": "rent", "date": "2025-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rent := decode[domain.Expense](t, w)

	w = do(t, h, http.MethodPost, "/api/expenses", "alice", map[string]any{"amount": "450"})
	require.Equal(t, http.StatusCreated, w.Code)
	snack := decode[domain.Expense](t, w)
	assert.True(t, snack.Date.Equal(testNow), "missing date defaults to now")
	assert.Equal(t, domain.ExpenseOther, snack.Category)

	w = do(t, h, http.MethodPost, "/api/expenses", "alice", map[string]any{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/expenses?since=2025-06-10", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Expense](t, w), 1)

	w = do(t, h, http.MethodGet, "/api/dashboard", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[service.Dashboard](t, w)
	assert.True(t, d.Totals.TotalMonthly.Equal(decimal.NewFromInt(100000)))
	assert.True(t, d.Totals.TotalMonthlyExpense.Equal(decimal.NewFromInt(30450)))

	w = do(t, h, http.MethodDelete, "/api/expenses/"+rent.ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodDelete, "/api/expenses/"+rent.ID, "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEventsAndOptimize(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodPost, "/api/incomes", "alice", map[string]any{
		"name": "Tutoring", "type": "Active", "monthly_income": "6000", "weekly_hours": 12, "risk_factor": 3,
		"next_payout_date": "2025-06-20T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(t, h, http.MethodPost, "/api/incomes", "alice", map[string]any{
		"name": "Crypto", "type": "Passive", "monthly_income": "1000", "weekly_hours": 2, "risk_factor": 9,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodGet, "/api/events", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]events.Event](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].DaysUntil)

	w = do(t, h, http.MethodGet, "/api/events?window=3", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]events.Event](t, w))

	w = do(t, h, http.MethodGet, "/api/events?window=-1", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/optimize", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	opt := decode[handlers.OptimizeResponse](t, w)
	require.Len(t, opt.Scores, 2)
	assert.Len(t, opt.Suggestion.Warnings, 2)
	assert.Contains(t, opt.Suggestion.Warnings[0], "Time Leak Detected")
}

func TestAllocationAndGoals(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/allocation?amount=100000&strategy=safe_play", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	alloc := decode[optimize.Allocation](t, w)
	assert.True(t, alloc.Safe.Equal(decimal.NewFromInt(60000)))

	w = do(t, h, http.MethodGet, "/api/allocation?amount=lots", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/allocation/strategies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handlers.StrategyResponse](t, w), 3)

	w = do(t, h, http.MethodPost, "/api/goals/sip", "", map[string]any{
		"name": "House", "target": "1000000", "current": "0", "target_date": "2026-06-01T00:00:00Z", "annual_return": "0",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decode[goal.Plan](t, w)
	assert.Equal(t, 12, plan.MonthsLeft)
	assert.True(t, plan.RequiredMonthly.IsPositive())

	w = do(t, h, http.MethodPost, "/api/goals/time", "", map[string]any{
		"current": "0", "monthly": "1000", "target": "12000", "annual_return": "0.0001",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	proj := decode[handlers.TimeResponse](t, w)
	assert.Equal(t, 12, proj.Months)
	assert.True(t, proj.Reachable)

	w = do(t, h, http.MethodPost, "/api/goals/sip", "", map[string]any{"target": "0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifications(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/notifications", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	defaults := decode[store.NotificationSettings](t, w)
	assert.False(t, defaults.Enabled)
	assert.Equal(t, 7, defaults.WindowDays)

	w = do(t, h, http.MethodPut, "/api/notifications", "alice", handlers.NotificationRequest{Email: "not an email", Enabled: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/notifications", "alice", handlers.NotificationRequest{Email: "alice@example.com", Enabled: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/notifications", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[store.NotificationSettings](t, w)
	assert.True(t, saved.Enabled)
	assert.Equal(t, "alice@example.com", saved.Email)
	assert.Equal(t, 7, saved.WindowDays)
}
