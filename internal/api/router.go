// Package api wires the HTTP routes of the gravityless server
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/gravityless/internal/api/handlers"
	custommiddleware "github.com/rgehrsitz/gravityless/internal/api/middleware"
	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/service"
	"github.com/rgehrsitz/gravityless/internal/store"
)

// Dependencies are the collaborators the handlers need
type Dependencies struct {
	Store         *store.Store
	Incomes       *store.IncomeRepository
	Expenses      *store.ExpenseRepository
	Notifications *store.NotificationRepository
	Dashboard     *service.DashboardService
	Engine        *calculation.Engine
	Scorer        *optimize.Scorer
	Clock         handlers.Clock
	Version       string
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies, cfg *config.ServerConfig, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(deps.Store, deps.Version)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard, deps.Clock)
	incomeHandler := handlers.NewIncomeHandler(deps.Incomes, deps.Engine, deps.Clock)
	expenseHandler := handlers.NewExpenseHandler(deps.Expenses, deps.Clock)
	insightHandler := handlers.NewInsightHandler(deps.Incomes, deps.Scorer, deps.Clock)
	goalHandler := handlers.NewGoalHandler(deps.Clock)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications, cfg.Reminder.WindowDays)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/system/health", systemHandler.Health)
		r.Get("/demo/dashboard", dashboardHandler.Demo)
		r.Get("/allocation/strategies", insightHandler.Strategies)
		r.Get("/allocation", insightHandler.Allocate)
		r.Post("/goals/sip", goalHandler.SIP)
		r.Post("/goals/time", goalHandler.Time)

		// Owner scoped
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireOwner([]byte(cfg.Auth.JWTSecret)))

			r.Get("/dashboard", dashboardHandler.Dashboard)
			r.Get("/events", insightHandler.Events)
			r.Get("/optimize", insightHandler.Optimize)

			r.Route("/incomes", func(r chi.Router) {
				r.Get("/", incomeHandler.List)
				r.Post("/", incomeHandler.Create)
				r.Post("/reorder", incomeHandler.Reorder)
				r.Get("/{id}", incomeHandler.Get)
				r.Put("/{id}", incomeHandler.Update)
				r.Delete("/{id}", incomeHandler.Delete)
				r.Put("/{id}/payouts", incomeHandler.ReplacePayouts)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.List)
				r.Post("/", expenseHandler.Create)
				r.Delete("/{id}", expenseHandler.Delete)
			})

			r.Get("/notifications", notificationHandler.Get)
			r.Put("/notifications", notificationHandler.Put)
		})
	})

	return r
}
