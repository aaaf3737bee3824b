package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// InputParser handles parsing of portfolio files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, normalises and validates a portfolio document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.normalize(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// normalize fills generated IDs and orders sources by sort_order so every
// consumer iterates them the same way
func (ip *InputParser) normalize(config *domain.Configuration) {
	for i := range config.Sources {
		src := &config.Sources[i]
		if src.ID == "" {
			src.ID = fmt.Sprintf("src-%d", i+1)
		}
		for j := range src.Payouts {
			if src.Payouts[j].ID == "" {
				src.Payouts[j].ID = fmt.Sprintf("%s-p%d", src.ID, j+1)
			}
			if src.Payouts[j].Status == "" {
				src.Payouts[j].Status = domain.PayoutScheduled
			}
		}
	}
	sort.SliceStable(config.Sources, func(i, j int) bool {
		return config.Sources[i].SortOrder < config.Sources[j].SortOrder
	})
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Sources) == 0 {
		return fmt.Errorf("no income sources provided")
	}

	seen := map[string]bool{}
	for i := range config.Sources {
		src := &config.Sources[i]
		if src.ID != "" && seen[src.ID] {
			return fmt.Errorf("duplicate source id %q", src.ID)
		}
		seen[src.ID] = true
		if err := ip.validateSource(src); err != nil {
			return fmt.Errorf("source %d (%s) validation failed: %w", i, src.Name, err)
		}
	}

	for i := range config.Expenses {
		if err := ip.validateExpense(&config.Expenses[i]); err != nil {
			return fmt.Errorf("expense %d validation failed: %w", i, err)
		}
	}

	for i := range config.Goals {
		if err := ip.validateGoal(&config.Goals[i]); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, config.Goals[i].Name, err)
		}
	}

	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	return nil
}

// validateSource validates a single income source
func (ip *InputParser) validateSource(src *domain.IncomeSource) error {
	if src.Name == "" {
		return fmt.Errorf("name is required")
	}
	if src.RiskFactor < 0 || src.RiskFactor > 10 {
		return fmt.Errorf("risk factor must be between 1 and 10")
	}
	if src.AmountInvested.IsNegative() {
		return fmt.Errorf("amount invested cannot be negative")
	}
	if src.MonthlyIncome.IsNegative() {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if src.WeeklyHours.IsNegative() {
		return fmt.Errorf("weekly hours cannot be negative")
	}
	if src.TDSRate.IsNegative() || src.TDSRate.GreaterThan(hundred) {
		return fmt.Errorf("tds rate must be between 0 and 100")
	}
	if src.InvestmentDate != nil && src.InvestedUntil != nil && src.InvestedUntil.Before(*src.InvestmentDate) {
		return fmt.Errorf("invested until cannot be before investment date")
	}

	for i, p := range src.Payouts {
		if p.Date.IsZero() {
			return fmt.Errorf("payout %d: date is required", i)
		}
		if p.Amount.IsNegative() {
			return fmt.Errorf("payout %d: amount cannot be negative", i)
		}
	}
	return nil
}

// validateExpense validates a single expense
func (ip *InputParser) validateExpense(e *domain.Expense) error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if e.IsLoan && e.LoanTenureMonths < 0 {
		return fmt.Errorf("loan tenure cannot be negative")
	}
	return nil
}

// validateGoal validates a savings goal
func (ip *InputParser) validateGoal(g *domain.Goal) error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !g.Target.IsPositive() {
		return fmt.Errorf("target must be positive")
	}
	if g.Current.IsNegative() {
		return fmt.Errorf("current amount cannot be negative")
	}
	if g.TargetDate.IsZero() {
		return fmt.Errorf("target date is required")
	}
	return nil
}

// validateAssumptions validates the optional policy overrides
func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	if fy := a.FiscalYearStart; fy != nil {
		if fy.Month < 1 || fy.Month > 12 {
			return fmt.Errorf("fiscal year start month must be between 1 and 12")
		}
		if fy.Day < 1 || fy.Day > 28 {
			return fmt.Errorf("fiscal year start day must be between 1 and 28")
		}
	}

	if a.EventWindowDays < 0 {
		return fmt.Errorf("event window days cannot be negative")
	}

	if c := a.Crossover; c != nil {
		if c.Years < 0 || c.Years > 100 {
			return fmt.Errorf("crossover years must be between 0 and 100")
		}
		minusOne := decimal.NewFromInt(-1)
		for name, rate := range map[string]decimal.Decimal{
			"passive growth rate": c.PassiveGrowthRate,
			"active growth rate":  c.ActiveGrowthRate,
			"expense inflation":   c.ExpenseInflation,
		} {
			if rate.LessThanOrEqual(minusOne) {
				return fmt.Errorf("%s must be greater than -1", name)
			}
		}
	}

	if o := a.Optimization; o != nil {
		if o.WeeksPerMonth.IsNegative() || o.ROIDivisor.IsNegative() || o.RiskDivisor.IsNegative() {
			return fmt.Errorf("optimization constants cannot be negative")
		}
	}
	return nil
}
