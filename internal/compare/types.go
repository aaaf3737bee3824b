package compare

import (
	"fmt"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the headline metrics of one portfolio variant
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description"`
	Totals       domain.PortfolioTotals `json:"totals"`

	// Key Metrics
	TotalMonthly   decimal.Decimal `json:"totalMonthly"`
	PassiveMonthly decimal.Decimal `json:"passiveMonthly"`
	NetWorth       decimal.Decimal `json:"netWorth"`
	SavingsRate    decimal.Decimal `json:"savingsRate"`
	FreedomRatio   decimal.Decimal `json:"freedomRatio"`
	DebtToIncome   decimal.Decimal `json:"debtToIncome"`
	FreedomYear    int             `json:"freedomYear"` // -1 when passive never covers expenses

	// Comparison to Base
	MonthlyDiffFromBase  decimal.Decimal `json:"monthlyDiffFromBase"`
	MonthlyPctFromBase   decimal.Decimal `json:"monthlyPctFromBase"`
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
	SavingsRateDiff      decimal.Decimal `json:"savingsRateDiff"` // percentage points
	FreedomRatioDiff     decimal.Decimal `json:"freedomRatioDiff"`
	FreedomYearDiff      int             `json:"freedomYearDiff"`
}

// ComparisonSet represents a base portfolio and its what-if variants
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// CalculateComparison fills in the deltas of scenario against base.
// FreedomYearDiff is only set when both variants reach freedom.
func CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.MonthlyDiffFromBase = scenario.TotalMonthly.Sub(base.TotalMonthly)
	if !base.TotalMonthly.IsZero() {
		scenario.MonthlyPctFromBase = scenario.MonthlyDiffFromBase.
			Div(base.TotalMonthly).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.NetWorthDiffFromBase = scenario.NetWorth.Sub(base.NetWorth)
	scenario.SavingsRateDiff = scenario.SavingsRate.Sub(base.SavingsRate)
	scenario.FreedomRatioDiff = scenario.FreedomRatio.Sub(base.FreedomRatio)

	if scenario.FreedomYear >= 0 && base.FreedomYear >= 0 {
		scenario.FreedomYearDiff = scenario.FreedomYear - base.FreedomYear
	}

	return scenario
}

// GenerateRecommendations points out the variants that beat the base portfolio
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	bestIncome := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalMonthly.GreaterThan(bestIncome.TotalMonthly) {
			bestIncome = alt
		}
	}
	if bestIncome != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Income: %s adds %s/month over the base portfolio",
			bestIncome.ScenarioName, formatRupees(bestIncome.TotalMonthly.Sub(base.TotalMonthly))))
	}

	bestSavings := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SavingsRate.GreaterThan(bestSavings.SavingsRate) {
			bestSavings = alt
		}
	}
	if bestSavings != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Savings Rate: %s saves %s%% of income (base %s%%)",
			bestSavings.ScenarioName, bestSavings.SavingsRate.StringFixed(1), base.SavingsRate.StringFixed(1)))
	}

	earliest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FreedomYear >= 0 && (earliest.FreedomYear < 0 || alt.FreedomYear < earliest.FreedomYear) {
			earliest = alt
		}
	}
	if earliest != base {
		if base.FreedomYear < 0 {
			recommendations = append(recommendations, fmt.Sprintf(
				"Financial Freedom: %s reaches it in year %d; the base never does", earliest.ScenarioName, earliest.FreedomYear))
		} else {
			recommendations = append(recommendations, fmt.Sprintf(
				"Financial Freedom: %s gets there %d years sooner", earliest.ScenarioName, base.FreedomYear-earliest.FreedomYear))
		}
	}

	return recommendations
}
