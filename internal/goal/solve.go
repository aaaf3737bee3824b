package goal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxSolveRate is the highest annual return RequiredReturn will consider, in percent
var MaxSolveRate = decimal.NewFromInt(50)

const maxSolveIterations = 60

// RateSolution is the result of RequiredReturn
type RateSolution struct {
	AnnualReturn decimal.Decimal `json:"annual_return"` // percent, two decimals
	Reachable    bool            `json:"reachable"`
	Iterations   int             `json:"iterations"`
}

// RequiredReturn finds the lowest annual return at which a monthly contribution
// of monthly meets RequiredMonthlyContribution for target in months. It bisects
// between zero and MaxSolveRate; Reachable is false when even MaxSolveRate falls short.
func RequiredReturn(target, current, monthly decimal.Decimal, months int) (RateSolution, error) {
	if months <= 0 {
		return RateSolution{}, fmt.Errorf("months must be positive, got %d", months)
	}
	if monthly.IsNegative() {
		return RateSolution{}, fmt.Errorf("monthly contribution cannot be negative")
	}

	enough := func(rate decimal.Decimal) bool {
		return RequiredMonthlyContribution(target, current, months, rate).LessThanOrEqual(monthly)
	}

	if enough(decimal.Zero) {
		return RateSolution{AnnualReturn: decimal.Zero, Reachable: true}, nil
	}
	if !enough(MaxSolveRate) {
		return RateSolution{AnnualReturn: MaxSolveRate, Reachable: false}, nil
	}

	lo, hi := decimal.Zero, MaxSolveRate
	tolerance := decimal.NewFromFloat(0.001)
	two := decimal.NewFromInt(2)
	iterations := 0
	for iterations < maxSolveIterations && hi.Sub(lo).GreaterThan(tolerance) {
		iterations++
		mid := lo.Add(hi).Div(two)
		if enough(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	return RateSolution{AnnualReturn: hi.RoundCeil(2), Reachable: true, Iterations: iterations}, nil
}
