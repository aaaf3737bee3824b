package calculation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerYear is the average Gregorian year length used for all annualisation
const DaysPerYear = 365.25

var (
	one         = decimal.NewFromInt(1)
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	daysPerYear = decimal.NewFromFloat(DaysPerYear)
	nanosPerDay = decimal.NewFromInt(int64(24 * time.Hour))
)

// YearsBetween returns (to - from) in 365.25-day years. Negative when to is before from.
func YearsBetween(from, to time.Time) decimal.Decimal {
	return DaysBetween(from, to).Div(daysPerYear)
}

// DaysBetween returns (to - from) in fractional days
func DaysBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(to.Sub(from))).Div(nanosPerDay)
}

// CompoundGrowth returns the gain on principal compounded at ratePercent per year over years:
// P * (1 + r/100)^t - P
func CompoundGrowth(principal, ratePercent, years decimal.Decimal) decimal.Decimal {
	factor := Pow(one.Add(ratePercent.Div(hundred)), years)
	return principal.Mul(factor).Sub(principal)
}

// ProRata scales amount by elapsed/period, clamped to [0, 1]. A non-positive period yields zero.
func ProRata(amount decimal.Decimal, elapsed, period time.Duration) decimal.Decimal {
	if period <= 0 || elapsed <= 0 {
		return decimal.Zero
	}
	fraction := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(period)))
	if fraction.GreaterThan(one) {
		fraction = one
	}
	return amount.Mul(fraction)
}

// Percent returns part/whole*100, or zero when whole is zero
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Pow raises base to a possibly fractional exponent. decimal has no fractional power,
// so this goes through float64. Results that are not finite collapse to zero.
func Pow(base, exp decimal.Decimal) decimal.Decimal {
	v := math.Pow(base.InexactFloat64(), exp.InexactFloat64())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
