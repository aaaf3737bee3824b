package calculation

import (
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
)

// Engine evaluates income metrics and portfolio rollups.
// It holds only policy configuration; every call takes its own "now".
type Engine struct {
	FiscalYear domain.FiscalYearStart
	Logger     Logger
}

// NewEngine creates an engine using an April 1 fiscal year
func NewEngine() *Engine {
	return NewEngineWithConfig(domain.DefaultFiscalYearStart())
}

// NewEngineWithConfig creates an engine with a custom fiscal year boundary
func NewEngineWithConfig(fy domain.FiscalYearStart) *Engine {
	if fy.Month < time.January || fy.Month > time.December {
		fy.Month = time.April
	}
	if fy.Day < 1 {
		fy.Day = 1
	}
	return &Engine{
		FiscalYear: fy,
		Logger:     NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// FiscalYearWindow returns the first and last day of the fiscal year containing now,
// both at midnight in now's location.
func FiscalYearWindow(fy domain.FiscalYearStart, now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), fy.Month, fy.Day, 0, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	end := start.AddDate(1, 0, -1)
	return start, end
}
