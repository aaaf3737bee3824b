package calculation

import (
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxPlausibleCAGR is the ceiling above which a derived yield is discarded in favour of
// the declared growth rate.
var MaxPlausibleCAGR = decimal.NewFromInt(1000)

var (
	minDurationYears   = decimal.NewFromFloat(0.01)
	shortHoldingDays   = decimal.NewFromInt(30)
	defaultMetricsType = "Other"
)

// payoutTotals is the classification of a payout list relative to now
type payoutTotals struct {
	interestPaid       decimal.Decimal
	principalReturned  decimal.Decimal
	interestProjected  decimal.Decimal
	principalProjected decimal.Decimal
	// horizon bounds growth; maturity is the last dated cash flow and stays
	// zero for an open-ended holding
	horizon  time.Time
	maturity time.Time
}

// ComputeMetrics evaluates a source using its own payout schedule
func (e *Engine) ComputeMetrics(src domain.IncomeSource, now time.Time) domain.IncomeMetricResult {
	return e.ComputeMetricsWithPayouts(src, src.Payouts, now)
}

// ComputeMetricsWithPayouts evaluates a source against an explicit payout list.
// The result is fully determined by the arguments.
func (e *Engine) ComputeMetricsWithPayouts(src domain.IncomeSource, payouts []domain.PayoutSchedule, now time.Time) domain.IncomeMetricResult {
	invested := nonNegative(src.AmountInvested)
	growthRate := nonNegative(src.GrowthRate)
	start := src.StartDate(now)

	totals := classifyPayouts(src, payouts, start, now)
	if totals.principalProjected.IsZero() && invested.IsPositive() {
		totals.principalProjected = invested
	}

	effectiveNow := minTime(now, totals.horizon)
	elapsedYears := decimal.Max(decimal.Zero, YearsBetween(start, effectiveNow))
	durationYears := decimal.Max(minDurationYears, YearsBetween(start, totals.horizon))

	var earned, accrued decimal.Decimal
	path := "growth"
	if len(payouts) > 0 {
		path = "payout"
		earned = totals.interestPaid
		accrued = accruedInterest(payouts, start, now)
	} else {
		earned = CompoundGrowth(invested, growthRate, elapsedYears)
	}

	current := decimal.Max(decimal.Zero, invested.Add(earned).Sub(totals.interestPaid).Sub(totals.principalReturned))
	net := invested.Add(earned).Add(accrued)

	cagr := deriveCAGR(src, len(payouts) > 0, invested, growthRate, durationYears, totals)

	monthly := nonNegative(src.MonthlyIncome)
	if len(payouts) > 0 && durationYears.IsPositive() {
		monthly = totals.interestProjected.Div(durationYears.Mul(twelve))
	} else if invested.IsPositive() && cagr.IsPositive() {
		monthly = invested.Mul(cagr.Div(hundred)).Div(twelve)
	}

	tds := e.taxWithheldThisYear(src, payouts, now)

	resultType := string(src.Type)
	if resultType == "" {
		resultType = defaultMetricsType
	}

	e.Logger.Debugf("metrics %q (%s path): invested=%s earned=%s accrued=%s cagr=%s monthly=%s",
		src.Name, path, invested.StringFixed(2), earned.StringFixed(2), accrued.StringFixed(2),
		cagr.StringFixed(4), monthly.StringFixed(2))

	return domain.IncomeMetricResult{
		Invested:        invested.Round(0),
		Current:         current.Round(0),
		Net:             net.Round(0),
		CAGR:            cagr.Round(2),
		Monthly:         monthly.Round(0),
		TDSCurrentFY:    tds.Round(0),
		AccruedInterest: accrued.Round(0),
		MaturityDate:    totals.maturity,
		Type:            resultType,
	}
}

func classifyPayouts(src domain.IncomeSource, payouts []domain.PayoutSchedule, start, now time.Time) payoutTotals {
	t := payoutTotals{horizon: start}
	switch {
	case src.InvestedUntil != nil && !src.InvestedUntil.IsZero():
		t.horizon = *src.InvestedUntil
		t.maturity = t.horizon
	case len(payouts) > 0:
		t.maturity = start
	case len(payouts) == 0 && now.After(start):
		// open-ended holding keeps compounding up to now
		t.horizon = now
	}

	for _, p := range payouts {
		amount := nonNegative(p.Amount)
		if p.Date.After(t.horizon) {
			t.horizon = p.Date
		}
		if p.Date.After(t.maturity) {
			t.maturity = p.Date
		}

		realized := !p.Date.After(now)
		if p.IsPrincipal() {
			t.principalProjected = t.principalProjected.Add(amount)
			if realized {
				t.principalReturned = t.principalReturned.Add(amount)
			}
		} else {
			t.interestProjected = t.interestProjected.Add(amount)
			if realized {
				t.interestPaid = t.interestPaid.Add(amount)
			}
		}
	}
	return t
}

// accruedInterest interpolates the next interest-like payout linearly from the
// previous realized payout (or the start date) up to now.
func accruedInterest(payouts []domain.PayoutSchedule, start, now time.Time) decimal.Decimal {
	var next, last *domain.PayoutSchedule
	for i := range payouts {
		p := &payouts[i]
		if p.Date.After(now) {
			if next == nil || p.Date.Before(next.Date) {
				next = p
			}
		} else if last == nil || p.Date.After(last.Date) {
			last = p
		}
	}

	if next == nil || next.IsPrincipal() {
		return decimal.Zero
	}

	lastDate := start
	if last != nil {
		lastDate = last.Date
	}
	if !now.After(lastDate) || !next.Date.After(lastDate) {
		return decimal.Zero
	}
	return ProRata(nonNegative(next.Amount), now.Sub(lastDate), next.Date.Sub(lastDate))
}

func deriveCAGR(src domain.IncomeSource, hasPayouts bool, invested, growthRate, durationYears decimal.Decimal, t payoutTotals) decimal.Decimal {
	if !durationYears.IsPositive() || !invested.IsPositive() {
		return growthRate
	}
	if !t.interestProjected.IsPositive() && t.principalProjected.Equal(invested) {
		return growthRate
	}

	ratio := t.interestProjected.Add(t.principalProjected).Div(invested)
	durationDays := durationYears.Mul(daysPerYear)

	var derived decimal.Decimal
	switch {
	case durationDays.LessThan(shortHoldingDays):
		derived = ratio.Sub(one).Mul(hundred)
	case hasPayouts || src.Category.IsDebtLike():
		derived = ratio.Sub(one).Div(durationYears).Mul(hundred)
	default:
		derived = Pow(ratio, one.Div(durationYears)).Sub(one).Mul(hundred)
	}

	if derived.GreaterThan(MaxPlausibleCAGR) {
		return growthRate
	}
	return derived
}

func (e *Engine) taxWithheldThisYear(src domain.IncomeSource, payouts []domain.PayoutSchedule, now time.Time) decimal.Decimal {
	rate := nonNegative(src.TDSRate)
	if !src.TDSDeducted || !rate.IsPositive() {
		return decimal.Zero
	}

	fyStart, fyEnd := FiscalYearWindow(e.FiscalYear, now)
	total := decimal.Zero
	for _, p := range payouts {
		if p.IsPrincipal() || p.Date.Before(fyStart) || p.Date.After(fyEnd) {
			continue
		}
		total = total.Add(nonNegative(p.Amount).Mul(rate).Div(hundred))
	}
	return total
}
