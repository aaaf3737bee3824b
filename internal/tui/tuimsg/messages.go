// Package tuimsg holds the messages and payloads passed between the TUI root
// model and its scenes. It exists so scenes do not import the root package.
package tuimsg

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/compare"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/goal"
	"github.com/rgehrsitz/gravityless/internal/optimize"
)

// Snapshot is everything the scenes render for one portfolio at one instant
type Snapshot struct {
	Config     *domain.Configuration
	Now        time.Time
	WindowDays int

	Sources    []domain.SourceMetrics
	Totals     domain.PortfolioTotals
	Events     []events.Event
	Scores     []optimize.Score
	Suggestion optimize.Suggestion
	Budget     calculation.Budget
	DTI        decimal.Decimal
	DTIClass   calculation.DTIClass
	Crossover  calculation.CrossoverProjection
	Goals      []goal.Plan
}

// PortfolioLoadedMsg carries a freshly computed snapshot
type PortfolioLoadedMsg struct {
	Snapshot *Snapshot
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SourceSelectedMsg signals an income source has been selected
type SourceSelectedMsg struct {
	SourceID string
}

// ComparisonStartedMsg asks the root model to run the named templates against the portfolio
type ComparisonStartedMsg struct {
	Templates []string
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
