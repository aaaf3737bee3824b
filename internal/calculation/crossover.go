package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// CrossoverPoint is one year of the passive/active/expense projection (monthly figures)
type CrossoverPoint struct {
	Year    int             `json:"year"`
	Label   string          `json:"label"`
	Passive decimal.Decimal `json:"passive"`
	Active  decimal.Decimal `json:"active"`
	Expense decimal.Decimal `json:"expense"`
}

// CrossoverProjection is the full projection plus the first crossing years.
// A year of -1 means the line is never crossed inside the horizon.
type CrossoverProjection struct {
	Points              []CrossoverPoint `json:"points"`
	FreedomYear         int              `json:"freedom_year"`           // passive >= expense
	PassiveOverActiveYr int              `json:"passive_over_active_yr"` // passive >= active
	UsedExpenseFallback bool             `json:"used_expense_fallback"`
}

// ProjectCrossover projects current passive and active monthly income against monthly
// expense, compounding each by its own annual rate. When no expense is recorded a share
// of active income stands in for it.
func (e *Engine) ProjectCrossover(sources []domain.IncomeSource, monthlyExpense decimal.Decimal, now time.Time, a domain.CrossoverAssumptions) CrossoverProjection {
	passive, active := decimal.Zero, decimal.Zero
	for _, src := range sources {
		m := e.ComputeMetrics(src, now)
		if src.Type.IsPassive() {
			passive = passive.Add(m.Monthly)
		} else {
			active = active.Add(m.Monthly)
		}
	}
	return ProjectCrossoverFrom(passive, active, monthlyExpense, a)
}

// ProjectCrossoverFrom runs the projection from already known monthly amounts
func ProjectCrossoverFrom(passive, active, monthlyExpense decimal.Decimal, a domain.CrossoverAssumptions) CrossoverProjection {
	if a.Years <= 0 {
		a.Years = domain.DefaultCrossoverAssumptions().Years
	}

	proj := CrossoverProjection{FreedomYear: -1, PassiveOverActiveYr: -1}
	expense := monthlyExpense
	if expense.IsZero() {
		expense = active.Mul(a.ExpenseFallbackRate)
		proj.UsedExpenseFallback = true
	}

	passiveGrowth := one.Add(a.PassiveGrowthRate)
	activeGrowth := one.Add(a.ActiveGrowthRate)
	inflation := one.Add(a.ExpenseInflation)

	for year := 0; year <= a.Years; year++ {
		point := CrossoverPoint{
			Year:    year,
			Label:   fmt.Sprintf("Y%d", year),
			Passive: passive.Round(0),
			Active:  active.Round(0),
			Expense: expense.Round(0),
		}
		proj.Points = append(proj.Points, point)

		if proj.FreedomYear < 0 && passive.IsPositive() && passive.GreaterThanOrEqual(expense) {
			proj.FreedomYear = year
		}
		if proj.PassiveOverActiveYr < 0 && passive.IsPositive() && passive.GreaterThanOrEqual(active) {
			proj.PassiveOverActiveYr = year
		}

		passive = passive.Mul(passiveGrowth)
		active = active.Mul(activeGrowth)
		expense = expense.Mul(inflation)
	}
	return proj
}
