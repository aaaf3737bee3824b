package transform

import (
	"fmt"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustGrowth shifts the annual growth rate of the selected sources by Delta percentage points.
// Rates never go below zero.
type AdjustGrowth struct {
	Source string
	Delta  decimal.Decimal
}

func (a *AdjustGrowth) Name() string { return "adjust_growth" }

func (a *AdjustGrowth) Description() string {
	return fmt.Sprintf("Adjust growth of %s by %s pts", sourceLabel(a.Source), a.Delta.StringFixed(2))
}

func (a *AdjustGrowth) Validate(base *domain.Configuration) error {
	return validateSelector(a.Name(), base, a.Source)
}

func (a *AdjustGrowth) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	for _, i := range matchSources(modified, a.Source) {
		rate := modified.Sources[i].GrowthRate.Add(a.Delta)
		if rate.IsNegative() {
			rate = decimal.Zero
		}
		modified.Sources[i].GrowthRate = rate
	}
	return modified, nil
}

// SetInvested replaces the invested principal of a source
type SetInvested struct {
	Source string
	Amount decimal.Decimal
}

func (s *SetInvested) Name() string { return "set_invested" }

func (s *SetInvested) Description() string {
	return fmt.Sprintf("Set invested amount of %s to %s", sourceLabel(s.Source), s.Amount.StringFixed(0))
}

func (s *SetInvested) Validate(base *domain.Configuration) error {
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", "amount cannot be negative", nil)
	}
	return validateSelector(s.Name(), base, s.Source)
}

func (s *SetInvested) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	for _, i := range matchSources(modified, s.Source) {
		modified.Sources[i].AmountInvested = s.Amount
	}
	return modified, nil
}

// SetMonthly replaces the stated monthly income of a source
type SetMonthly struct {
	Source string
	Amount decimal.Decimal
}

func (s *SetMonthly) Name() string { return "set_monthly" }

func (s *SetMonthly) Description() string {
	return fmt.Sprintf("Set monthly income of %s to %s", sourceLabel(s.Source), s.Amount.StringFixed(0))
}

func (s *SetMonthly) Validate(base *domain.Configuration) error {
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", "amount cannot be negative", nil)
	}
	return validateSelector(s.Name(), base, s.Source)
}

func (s *SetMonthly) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	for _, i := range matchSources(modified, s.Source) {
		modified.Sources[i].MonthlyIncome = s.Amount
	}
	return modified, nil
}

// SetHours replaces the weekly hours spent on a source
type SetHours struct {
	Source string
	Hours  decimal.Decimal
}

func (s *SetHours) Name() string { return "set_hours" }

func (s *SetHours) Description() string {
	return fmt.Sprintf("Set weekly hours of %s to %s", sourceLabel(s.Source), s.Hours.String())
}

func (s *SetHours) Validate(base *domain.Configuration) error {
	if s.Hours.IsNegative() || s.Hours.GreaterThan(decimal.NewFromInt(168)) {
		return NewTransformError(s.Name(), "validate", "hours must be between 0 and 168", nil)
	}
	return validateSelector(s.Name(), base, s.Source)
}

func (s *SetHours) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	for _, i := range matchSources(modified, s.Source) {
		modified.Sources[i].WeeklyHours = s.Hours
	}
	return modified, nil
}

// SetRisk replaces the 1-10 risk factor of a source
type SetRisk struct {
	Source string
	Risk   int
}

func (s *SetRisk) Name() string { return "set_risk" }

func (s *SetRisk) Description() string {
	return fmt.Sprintf("Set risk of %s to %d", sourceLabel(s.Source), s.Risk)
}

func (s *SetRisk) Validate(base *domain.Configuration) error {
	if s.Risk < 1 || s.Risk > 10 {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("risk must be between 1 and 10, got %d", s.Risk), nil)
	}
	return validateSelector(s.Name(), base, s.Source)
}

func (s *SetRisk) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	for _, i := range matchSources(modified, s.Source) {
		modified.Sources[i].RiskFactor = s.Risk
	}
	return modified, nil
}

// RemoveSource drops a source and its payouts from the portfolio
type RemoveSource struct {
	Source string
}

func (r *RemoveSource) Name() string { return "remove_source" }

func (r *RemoveSource) Description() string {
	return fmt.Sprintf("Remove %s", sourceLabel(r.Source))
}

func (r *RemoveSource) Validate(base *domain.Configuration) error {
	return validateSelector(r.Name(), base, r.Source)
}

func (r *RemoveSource) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	drop := map[int]bool{}
	for _, i := range matchSources(modified, r.Source) {
		drop[i] = true
	}
	kept := make([]domain.IncomeSource, 0, len(modified.Sources))
	for i, s := range modified.Sources {
		if !drop[i] {
			kept = append(kept, s)
		}
	}
	modified.Sources = kept
	return modified, nil
}

func sourceLabel(sel string) string {
	if sel == AllSources {
		return "all sources"
	}
	return sel
}
