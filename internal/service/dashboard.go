// Package service composes the calculation packages into the views the API and CLI serve.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/demo"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// IncomeLister is the read side of the income repository
type IncomeLister interface {
	List(ctx context.Context, ownerID string) ([]domain.IncomeSource, error)
}

// ExpenseLister is the read side of the expense repository
type ExpenseLister interface {
	List(ctx context.Context, ownerID string) ([]domain.Expense, error)
}

// Options tunes the dashboard composition
type Options struct {
	EventWindowDays int
	TopEvents       int
	Crossover       domain.CrossoverAssumptions
}

// DefaultOptions shows the next five events of a 60 day window
func DefaultOptions() Options {
	return Options{
		EventWindowDays: events.DefaultWindowDays,
		TopEvents:       events.DefaultTop,
		Crossover:       domain.DefaultCrossoverAssumptions(),
	}
}

// Dashboard is everything the overview screen shows for one owner
type Dashboard struct {
	AsOf         time.Time                       `json:"as_of"`
	Sources      []domain.SourceMetrics          `json:"sources"`
	Totals       domain.PortfolioTotals          `json:"totals"`
	Events       []events.Event                  `json:"events"`
	Budget       calculation.Budget              `json:"budget"`
	DebtToIncome decimal.Decimal                 `json:"debt_to_income"`
	DTIClass     calculation.DTIClass            `json:"dti_class"`
	Crossover    calculation.CrossoverProjection `json:"crossover"`
}

// DashboardService builds dashboards from stored or demo portfolios
type DashboardService struct {
	engine   *calculation.Engine
	incomes  IncomeLister
	expenses ExpenseLister
	opts     Options
	log      logrus.FieldLogger
}

// NewDashboardService creates a new DashboardService. A nil logger discards output.
func NewDashboardService(engine *calculation.Engine, incomes IncomeLister, expenses ExpenseLister, opts Options, log logrus.FieldLogger) *DashboardService {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if opts.Crossover.Years == 0 {
		opts.Crossover = domain.DefaultCrossoverAssumptions()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &DashboardService{engine: engine, incomes: incomes, expenses: expenses, opts: opts, log: log}
}

// Build loads the owner's sources and expenses concurrently and composes the dashboard
func (s *DashboardService) Build(ctx context.Context, ownerID string, now time.Time) (Dashboard, error) {
	var (
		sources  []domain.IncomeSource
		expenses []domain.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sources, err = s.incomes.List(gctx, ownerID); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSources, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = s.expenses.List(gctx, ownerID); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveExpenses, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithField("owner", ownerID).Error("dashboard load failed")
		return Dashboard{}, err
	}

	return s.Compose(ctx, sources, expenses, now)
}

// Demo composes the dashboard of the built-in sample portfolio
func (s *DashboardService) Demo(ctx context.Context, now time.Time) (Dashboard, error) {
	return s.Compose(ctx, demo.Sources(), demo.Expenses(now), now)
}

// Compose derives the dashboard from an in-memory portfolio.
// Totals and budget only see expenses of now's month; the debt ratio sees every recurring one.
func (s *DashboardService) Compose(ctx context.Context, sources []domain.IncomeSource, expenses []domain.Expense, now time.Time) (Dashboard, error) {
	computed, err := s.engine.ComputeAllConcurrent(ctx, sources, now)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToBuildDashboard, err)
	}

	month := calculation.CurrentMonthExpenses(expenses, now)
	totals := calculation.Summarize(computed, month)

	window := s.opts.EventWindowDays
	if window <= 0 {
		window = events.DefaultWindowDays
	}
	top := s.opts.TopEvents
	if top <= 0 {
		top = events.DefaultTop
	}

	dti := calculation.DebtToIncome(expenses, totals.TotalMonthly)
	active := totals.TotalMonthly.Sub(totals.PassiveMonthly)

	d := Dashboard{
		AsOf:         now,
		Sources:      computed,
		Totals:       totals,
		Events:       events.Top(events.Extract(sources, now, window), top),
		Budget:       calculation.BudgetBreakdown(totals.TotalMonthly, month),
		DebtToIncome: dti,
		DTIClass:     calculation.ClassifyDTI(dti),
		Crossover:    calculation.ProjectCrossoverFrom(totals.PassiveMonthly, active, totals.TotalMonthlyExpense, s.opts.Crossover),
	}

	s.log.WithFields(logrus.Fields{
		"sources": totals.SourceCount,
		"events":  len(d.Events),
		"monthly": totals.TotalMonthly.StringFixed(0),
	}).Debug("dashboard composed")
	return d, nil
}
