// Package goal projects savings goals: the monthly contribution needed to hit a
// target by a date, and how long a given contribution takes to get there.
package goal

import (
	"time"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxMonths bounds the time-to-target iteration (50 years)
const MaxMonths = 600

// DefaultAnnualReturn is the expected return used when a goal does not name one
var DefaultAnnualReturn = decimal.NewFromInt(12)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Projection is the outcome of TimeToTarget. Months is MaxMonths when the
// target is not reached inside the ceiling.
type Projection struct {
	Months      int             `json:"months"`
	Reachable   bool            `json:"reachable"`
	FinalCorpus decimal.Decimal `json:"final_corpus"`
}

// Years is Months as fractional years
func (p Projection) Years() decimal.Decimal {
	return decimal.NewFromInt(int64(p.Months)).Div(twelve)
}

// MonthlyRate converts an annual percentage to the fixed monthly rate
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(twelve).Div(hundred)
}

// MonthsUntil is the calendar month difference between now and target; the day of month is ignored
func MonthsUntil(now, target time.Time) int {
	return (target.Year()-now.Year())*12 + int(target.Month()) - int(now.Month())
}

// RequiredMonthlyContribution solves the annuity-due payment that grows current
// to target in months. It is zero when there is no time left or nothing left to save.
func RequiredMonthlyContribution(target, current decimal.Decimal, months int, annualRatePct decimal.Decimal) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	remaining := target.Sub(current)
	if !remaining.IsPositive() {
		return decimal.Zero
	}

	n := decimal.NewFromInt(int64(months))
	r := MonthlyRate(annualRatePct)
	if r.IsZero() {
		return remaining.Div(n)
	}

	growth := one.Add(r)
	factor := calculation.Pow(growth, n).Sub(one).Div(r).Mul(growth)
	if !factor.IsPositive() {
		return decimal.Zero
	}
	return remaining.Div(factor)
}

// TimeToTarget compounds current monthly and adds the contribution at each month end
// until the corpus reaches target or MaxMonths pass.
func TimeToTarget(current, monthlyContribution, target, annualRatePct decimal.Decimal) Projection {
	if !target.GreaterThan(current) {
		return Projection{Months: 0, Reachable: true, FinalCorpus: current}
	}

	growth := one.Add(MonthlyRate(annualRatePct))
	corpus := current
	months := 0
	for corpus.LessThan(target) && months < MaxMonths {
		corpus = corpus.Mul(growth).Add(monthlyContribution).Round(10)
		months++
	}

	return Projection{
		Months:      months,
		Reachable:   corpus.GreaterThanOrEqual(target),
		FinalCorpus: corpus.Round(0),
	}
}

// Plan is the evaluated state of a goal at a point in time
type Plan struct {
	Name            string          `json:"name"`
	Target          decimal.Decimal `json:"target"`
	Current         decimal.Decimal `json:"current"`
	TargetDate      time.Time       `json:"target_date"`
	AnnualReturn    decimal.Decimal `json:"annual_return"`
	MonthsLeft      int             `json:"months_left"`
	RequiredMonthly decimal.Decimal `json:"required_monthly"`
	Progress        decimal.Decimal `json:"progress"` // percent of target already saved
}

// Evaluate computes the monthly contribution and progress of g as of now
func Evaluate(g domain.Goal, now time.Time) Plan {
	rate := g.AnnualReturn
	if rate.IsZero() {
		rate = DefaultAnnualReturn
	}
	months := MonthsUntil(now, g.TargetDate)
	return Plan{
		Name:            g.Name,
		Target:          g.Target,
		Current:         g.Current,
		TargetDate:      g.TargetDate,
		AnnualReturn:    rate,
		MonthsLeft:      months,
		RequiredMonthly: RequiredMonthlyContribution(g.Target, g.Current, months, rate).Round(0),
		Progress:        calculation.Percent(g.Current, g.Target).Round(1),
	}
}

// EvaluateAll evaluates goals in order
func EvaluateAll(goals []domain.Goal, now time.Time) []Plan {
	out := make([]Plan, 0, len(goals))
	for _, g := range goals {
		out = append(out, Evaluate(g, now))
	}
	return out
}
