package calculation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ComputeAll evaluates every source in order
func (e *Engine) ComputeAll(sources []domain.IncomeSource, now time.Time) []domain.SourceMetrics {
	out := make([]domain.SourceMetrics, len(sources))
	for i := range sources {
		out[i] = domain.SourceMetrics{Source: sources[i], Metrics: e.ComputeMetrics(sources[i], now)}
	}
	return out
}

// ComputeAllConcurrent evaluates sources in parallel. Output order matches input order.
func (e *Engine) ComputeAllConcurrent(ctx context.Context, sources []domain.IncomeSource, now time.Time) ([]domain.SourceMetrics, error) {
	out := make([]domain.SourceMetrics, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range sources {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("computing metrics for %q: %w", sources[i].Name, err)
			}
			out[i] = domain.SourceMetrics{Source: sources[i], Metrics: e.ComputeMetrics(sources[i], now)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Aggregate rolls up all sources and the supplied expense set (typically the current month)
func (e *Engine) Aggregate(sources []domain.IncomeSource, expenses []domain.Expense, now time.Time) domain.PortfolioTotals {
	return Summarize(e.ComputeAll(sources, now), expenses)
}

// AggregateConcurrent is Aggregate with per-source metrics computed in parallel.
// Sums are still taken in input order, so the totals equal Aggregate's.
func (e *Engine) AggregateConcurrent(ctx context.Context, sources []domain.IncomeSource, expenses []domain.Expense, now time.Time) (domain.PortfolioTotals, error) {
	computed, err := e.ComputeAllConcurrent(ctx, sources, now)
	if err != nil {
		return domain.PortfolioTotals{}, err
	}
	return Summarize(computed, expenses), nil
}

// Summarize builds portfolio totals from already computed metrics
func Summarize(computed []domain.SourceMetrics, expenses []domain.Expense) domain.PortfolioTotals {
	var t domain.PortfolioTotals
	weightedSum := decimal.Zero
	weightBase := decimal.Zero

	for _, sm := range computed {
		m := sm.Metrics
		t.TotalMonthly = t.TotalMonthly.Add(m.Monthly)
		t.TotalInvested = t.TotalInvested.Add(nonNegative(sm.Source.AmountInvested))
		t.TotalCurrentValue = t.TotalCurrentValue.Add(m.Current)
		t.TotalNetValue = t.TotalNetValue.Add(m.Net)

		if sm.Source.Type.IsPassive() {
			t.PassiveMonthly = t.PassiveMonthly.Add(m.Monthly)
		}

		weightedSum = weightedSum.Add(m.CAGR.Mul(m.Invested))
		weightBase = weightBase.Add(m.Invested)

		// liquid at cost, locked at current value
		if sm.Source.InHand {
			t.LiquidAssets = t.LiquidAssets.Add(m.Invested)
		} else {
			t.LockedAssets = t.LockedAssets.Add(m.Current)
		}
	}

	for _, exp := range expenses {
		t.TotalLiabilities = t.TotalLiabilities.Add(exp.Amount)
	}
	t.TotalMonthlyExpense = t.TotalLiabilities
	t.NetWorth = t.TotalNetValue.Sub(t.TotalLiabilities)

	t.PassivePercent = Percent(t.PassiveMonthly, t.TotalMonthly).Round(2)
	if !weightBase.IsZero() {
		t.WeightedCAGR = weightedSum.Div(weightBase).Round(2)
	}
	t.SavingsRate = Percent(t.TotalMonthly.Sub(t.TotalMonthlyExpense), t.TotalMonthly).Round(2)
	t.FreedomRatio = Percent(t.PassiveMonthly, t.TotalMonthlyExpense).Round(2)
	t.SourceCount = len(computed)
	return t
}
