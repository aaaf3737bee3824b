package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/compare"
	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/goal"
	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/tui/scenes"
	"github.com/rgehrsitz/gravityless/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	now        func() time.Time
	snapshot   *tuimsg.Snapshot

	overviewModel *scenes.OverviewModel
	incomeModel   *scenes.IncomeModel
	eventsModel   *scenes.EventsModel
	optimizeModel *scenes.OptimizeModel
	compareModel  *scenes.CompareModel

	err error

	loading        bool
	loadingMessage string
	spinner        spinner.Model
}

// NewModel creates a new application model for the portfolio file at configPath
func NewModel(configPath string) Model {
	return Model{
		currentScene:   SceneOverview,
		configPath:     configPath,
		now:            time.Now,
		overviewModel:  scenes.NewOverviewModel(),
		incomeModel:    scenes.NewIncomeModel(),
		eventsModel:    scenes.NewEventsModel(),
		optimizeModel:  scenes.NewOptimizeModel(),
		compareModel:   scenes.NewCompareModel(),
		loading:        true,
		loadingMessage: "Loading portfolio...",
		spinner:        newSpinner(),
		width:          80,
		height:         24,
	}
}

// WithClock fixes the fallback time used when the portfolio has no as_of date
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadPortfolioCmd(m.configPath, m.now()), m.spinner.Tick)
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(SpinnerStyle),
	)
}

// loadPortfolioCmd returns a command that loads and evaluates the portfolio file
func loadPortfolioCmd(path string, fallback time.Time) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		snap, err := BuildSnapshot(context.Background(), cfg, cfg.Now(fallback))
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PortfolioLoadedMsg{Snapshot: snap}
	}
}

// compareCmd runs the selected templates against the loaded portfolio
func compareCmd(snap *tuimsg.Snapshot, templates []string) tea.Cmd {
	return func() tea.Msg {
		engine := compare.NewCompareEngine(newEngine(snap.Config))
		set, err := engine.Compare(context.Background(), snap.Config, compare.CompareOptions{
			Templates: templates,
			Now:       snap.Now,
		})
		if err != nil {
			return ComparisonCompleteMsg{Err: fmt.Errorf("comparison failed: %w", err)}
		}
		return ComparisonCompleteMsg{Set: set}
	}
}

func newEngine(cfg *domain.Configuration) *calculation.Engine {
	if cfg.Assumptions.FiscalYearStart != nil {
		return calculation.NewEngineWithConfig(*cfg.Assumptions.FiscalYearStart)
	}
	return calculation.NewEngine()
}

// BuildSnapshot evaluates every view of cfg at now. Budget totals use the
// expenses of now's month while debt-to-income uses every recurring expense.
func BuildSnapshot(ctx context.Context, cfg *domain.Configuration, now time.Time) (*tuimsg.Snapshot, error) {
	engine := newEngine(cfg)

	computed, err := engine.ComputeAllConcurrent(ctx, cfg.Sources, now)
	if err != nil {
		return nil, err
	}
	monthExpenses := calculation.CurrentMonthExpenses(cfg.Expenses, now)
	totals := calculation.Summarize(computed, monthExpenses)

	window := cfg.Assumptions.EventWindowDays
	if window <= 0 {
		window = events.DefaultWindowDays
	}

	assumptions := domain.DefaultCrossoverAssumptions()
	if cfg.Assumptions.Crossover != nil {
		assumptions = *cfg.Assumptions.Crossover
	}

	scorer := optimize.NewScorerWithThresholds(optimize.ThresholdsFromConfig(cfg.Assumptions.Optimization))
	scores := scorer.ScoreAll(cfg.Sources)
	dti := calculation.DebtToIncome(cfg.Expenses, totals.TotalMonthly)

	return &tuimsg.Snapshot{
		Config:     cfg,
		Now:        now,
		WindowDays: window,
		Sources:    computed,
		Totals:     totals,
		Events:     events.Extract(cfg.Sources, now, window),
		Scores:     scores,
		Suggestion: optimize.Suggest(scores),
		Budget:     calculation.BudgetBreakdown(totals.TotalMonthly, monthExpenses),
		DTI:        dti,
		DTIClass:   calculation.ClassifyDTI(dti),
		Crossover: calculation.ProjectCrossoverFrom(
			totals.PassiveMonthly,
			totals.TotalMonthly.Sub(totals.PassiveMonthly),
			totals.TotalMonthlyExpense,
			assumptions,
		),
		Goals: goal.EvaluateAll(cfg.Goals, now),
	}, nil
}
