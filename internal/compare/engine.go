// Package compare runs a portfolio and its what-if variants side by side
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/transform"
)

// CompareEngine orchestrates portfolio comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior. Each template and each
// transform spec becomes its own alternative.
type CompareOptions struct {
	BaseName   string
	Templates  []string
	Transforms []string
	Now        time.Time
}

// Compare evaluates the base portfolio and every requested variant
func (ce *CompareEngine) Compare(ctx context.Context, config *domain.Configuration, options CompareOptions) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	now := config.Now(options.Now)
	if now.IsZero() {
		now = time.Now()
	}
	base := config.DeepCopy()
	base.AsOf = &now

	baseName := options.BaseName
	if baseName == "" {
		baseName = "base"
	}

	baseResult, err := ce.Evaluate(ctx, base, now)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base portfolio: %w", err)
	}
	baseResult.ScenarioName = baseName

	alternatives := []ComparisonResult{}
	addVariant := func(name, description string, transforms []transform.PortfolioTransform) error {
		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		result, err := ce.Evaluate(ctx, modified, now)
		if err != nil {
			return fmt.Errorf("failed to calculate %s: %w", name, err)
		}
		result.ScenarioName = name
		result.Description = description
		alternatives = append(alternatives, CalculateComparison(result, baseResult))
		return nil
	}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		if err := addVariant(template.Name, template.Description, template.Transforms); err != nil {
			return nil, err
		}
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := addVariant(t.Name(), t.Description(), []transform.PortfolioTransform{t}); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// Evaluate computes the comparison metrics of one portfolio. Budget totals use
// the expenses of now's month; debt-to-income uses every recurring expense.
func (ce *CompareEngine) Evaluate(ctx context.Context, config *domain.Configuration, now time.Time) (ComparisonResult, error) {
	monthExpenses := calculation.CurrentMonthExpenses(config.Expenses, now)
	totals, err := ce.CalcEngine.AggregateConcurrent(ctx, config.Sources, monthExpenses, now)
	if err != nil {
		return ComparisonResult{}, err
	}

	assumptions := domain.DefaultCrossoverAssumptions()
	if config.Assumptions.Crossover != nil {
		assumptions = *config.Assumptions.Crossover
	}
	crossover := calculation.ProjectCrossoverFrom(
		totals.PassiveMonthly,
		totals.TotalMonthly.Sub(totals.PassiveMonthly),
		totals.TotalMonthlyExpense,
		assumptions,
	)

	return ComparisonResult{
		Totals:         totals,
		TotalMonthly:   totals.TotalMonthly,
		PassiveMonthly: totals.PassiveMonthly,
		NetWorth:       totals.NetWorth,
		SavingsRate:    totals.SavingsRate,
		FreedomRatio:   totals.FreedomRatio,
		DebtToIncome:   calculation.DebtToIncome(config.Expenses, totals.TotalMonthly).Round(2),
		FreedomYear:    crossover.FreedomYear,
	}, nil
}
