package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalYearStart is the month and day a tax year begins on
type FiscalYearStart struct {
	Month time.Month `yaml:"month" json:"month"`
	Day   int        `yaml:"day" json:"day"`
}

// DefaultFiscalYearStart is April 1
func DefaultFiscalYearStart() FiscalYearStart {
	return FiscalYearStart{Month: time.April, Day: 1}
}

// OptimizationThresholds configures efficiency scoring and the warning flags
type OptimizationThresholds struct {
	WeeksPerMonth       decimal.Decimal `yaml:"weeks_per_month" json:"weeks_per_month"`
	ROIDivisor          decimal.Decimal `yaml:"roi_divisor" json:"roi_divisor"`
	RiskDivisor         decimal.Decimal `yaml:"risk_divisor" json:"risk_divisor"`
	MaxScore            decimal.Decimal `yaml:"max_score" json:"max_score"`
	TimeLeakHours       decimal.Decimal `yaml:"time_leak_hours" json:"time_leak_hours"`
	TimeLeakROIPerHour  decimal.Decimal `yaml:"time_leak_roi_per_hour" json:"time_leak_roi_per_hour"`
	RiskBombFactor      int             `yaml:"risk_bomb_factor" json:"risk_bomb_factor"`
	RiskBombAdjustedMin decimal.Decimal `yaml:"risk_bomb_adjusted_min" json:"risk_bomb_adjusted_min"`
}

// CrossoverAssumptions drives the long-range passive vs active vs expense projection
type CrossoverAssumptions struct {
	Years               int             `yaml:"years" json:"years"`
	PassiveGrowthRate   decimal.Decimal `yaml:"passive_growth_rate" json:"passive_growth_rate"`     // annual, fraction
	ActiveGrowthRate    decimal.Decimal `yaml:"active_growth_rate" json:"active_growth_rate"`       // annual, fraction
	ExpenseInflation    decimal.Decimal `yaml:"expense_inflation" json:"expense_inflation"`         // annual, fraction
	ExpenseFallbackRate decimal.Decimal `yaml:"expense_fallback_rate" json:"expense_fallback_rate"` // share of active income used when no expenses are recorded
}

// DefaultCrossoverAssumptions returns 20 years at 10% passive, 5% active and 6% inflation
func DefaultCrossoverAssumptions() CrossoverAssumptions {
	return CrossoverAssumptions{
		Years:               20,
		PassiveGrowthRate:   decimal.NewFromFloat(0.10),
		ActiveGrowthRate:    decimal.NewFromFloat(0.05),
		ExpenseInflation:    decimal.NewFromFloat(0.06),
		ExpenseFallbackRate: decimal.NewFromFloat(0.5),
	}
}

// Goal is a savings target with a date
type Goal struct {
	Name         string          `yaml:"name" json:"name"`
	Target       decimal.Decimal `yaml:"target" json:"target"`
	Current      decimal.Decimal `yaml:"current" json:"current"`
	TargetDate   time.Time       `yaml:"target_date" json:"target_date"`
	AnnualReturn decimal.Decimal `yaml:"annual_return" json:"annual_return"` // percent
}

// Assumptions groups the tunable policy constants of a portfolio file
type Assumptions struct {
	FiscalYearStart *FiscalYearStart        `yaml:"fiscal_year_start,omitempty" json:"fiscal_year_start,omitempty"`
	Optimization    *OptimizationThresholds `yaml:"optimization,omitempty" json:"optimization,omitempty"`
	Crossover       *CrossoverAssumptions   `yaml:"crossover,omitempty" json:"crossover,omitempty"`
	EventWindowDays int                     `yaml:"event_window_days,omitempty" json:"event_window_days,omitempty"`
}

// Configuration is the complete portfolio input file
type Configuration struct {
	Owner       string         `yaml:"owner,omitempty" json:"owner,omitempty"`
	AsOf        *time.Time     `yaml:"as_of,omitempty" json:"as_of,omitempty"`
	Sources     []IncomeSource `yaml:"sources" json:"sources"`
	Expenses    []Expense      `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Goals       []Goal         `yaml:"goals,omitempty" json:"goals,omitempty"`
	Assumptions Assumptions    `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
}

// Now returns AsOf when set, otherwise fallback
func (c *Configuration) Now(fallback time.Time) time.Time {
	if c.AsOf != nil && !c.AsOf.IsZero() {
		return *c.AsOf
	}
	return fallback
}

// DeepCopy returns an independent copy of the configuration
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	cp := *c
	cp.AsOf = copyTime(c.AsOf)
	cp.Sources = make([]IncomeSource, len(c.Sources))
	for i := range c.Sources {
		cp.Sources[i] = *c.Sources[i].DeepCopy()
	}
	cp.Expenses = append([]Expense(nil), c.Expenses...)
	cp.Goals = append([]Goal(nil), c.Goals...)
	return &cp
}
