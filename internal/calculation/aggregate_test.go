package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_EmptyPortfolio(t *testing.T) {
	engine := NewEngine()
	totals := engine.Aggregate(nil, nil, date(2025, 1, 1))

	assert.Equal(t, 0, totals.SourceCount)
	for name, v := range map[string]decimal.Decimal{
		"TotalMonthly":   totals.TotalMonthly,
		"TotalInvested":  totals.TotalInvested,
		"PassivePercent": totals.PassivePercent,
		"WeightedCAGR":   totals.WeightedCAGR,
		"SavingsRate":    totals.SavingsRate,
		"FreedomRatio":   totals.FreedomRatio,
		"NetWorth":       totals.NetWorth,
	} {
		assert.True(t, v.IsZero(), "%s should be zero, got %s", name, v)
	}
}

func TestAggregate_WeightedCAGREqualsSimpleMeanForEqualWeights(t *testing.T) {
	engine := NewEngine()
	now := date(2025, 6, 1)
	sources := []domain.IncomeSource{
		{Name: "A", AmountInvested: dec(100000), GrowthRate: dec(8), InvestmentDate: ptr(date(2024, 6, 1))},
		{Name: "B", AmountInvested: dec(100000), GrowthRate: dec(12), InvestmentDate: ptr(date(2024, 6, 1))},
	}

	totals := engine.Aggregate(sources, nil, now)
	assert.True(t, totals.WeightedCAGR.Equal(dec(10)), "weighted cagr = %s", totals.WeightedCAGR)
	assert.True(t, totals.TotalInvested.Equal(dec(200000)))
}

func TestAggregate_PassiveShareAndRatios(t *testing.T) {
	engine := NewEngine()
	now := date(2025, 6, 1)
	fund := domain.IncomeSource{
		Name:           "Fund",
		Type:           domain.IncomeTypePassive,
		AmountInvested: dec(120000),
		GrowthRate:     dec(10),
		InvestmentDate: ptr(date(2024, 6, 1)),
	}
	salary := domain.IncomeSource{Name: "Salary", Type: domain.IncomeTypeActive, Category: domain.CategoryJob, MonthlyIncome: dec(100000)}
	expenses := []domain.Expense{
		{Category: domain.ExpenseNeeds, Amount: dec(30000), Date: now},
		{Category: domain.ExpenseWants, Amount: dec(20000), Date: now},
	}

	totals := engine.Aggregate([]domain.IncomeSource{salary, fund}, expenses, now)

	assert.True(t, totals.TotalMonthly.Equal(dec(101000)), "total monthly = %s", totals.TotalMonthly)
	assert.True(t, totals.PassiveMonthly.Equal(dec(1000)))
	assert.True(t, totals.PassivePercent.Equal(dec(0.99)), "passive percent = %s", totals.PassivePercent)
	assert.True(t, totals.TotalLiabilities.Equal(dec(50000)))
	assert.True(t, totals.TotalMonthlyExpense.Equal(totals.TotalLiabilities))
	assert.True(t, totals.SavingsRate.Equal(dec(50.5)), "savings rate = %s", totals.SavingsRate)
	assert.True(t, totals.FreedomRatio.Equal(dec(2)), "freedom ratio = %s", totals.FreedomRatio)
	assert.True(t, totals.NetWorth.Equal(totals.TotalNetValue.Sub(dec(50000))))
	assert.Equal(t, 2, totals.SourceCount)
}

func TestAggregate_LiquidAtCostLockedAtCurrent(t *testing.T) {
	engine := NewEngine()
	now := date(2025, 6, 1)
	cash := domain.IncomeSource{Name: "Savings", InHand: true, AmountInvested: dec(50000), GrowthRate: dec(10), InvestmentDate: ptr(date(2024, 6, 1))}
	locked := domain.IncomeSource{Name: "Lock-in", AmountInvested: dec(100000), GrowthRate: dec(10), InvestmentDate: ptr(date(2024, 6, 1))}

	totals := engine.Aggregate([]domain.IncomeSource{cash, locked}, nil, now)

	assert.True(t, totals.LiquidAssets.Equal(dec(50000)), "liquid = %s", totals.LiquidAssets)
	lockedCurrent := engine.ComputeMetrics(locked, now).Current
	assert.True(t, totals.LockedAssets.Equal(lockedCurrent), "locked = %s, want %s", totals.LockedAssets, lockedCurrent)
	assert.True(t, totals.LockedAssets.GreaterThan(dec(100000)))
}

func TestAggregate_NegativeInvestmentIgnored(t *testing.T) {
	engine := NewEngine()
	sources := []domain.IncomeSource{
		{Name: "Bad", AmountInvested: dec(-1000)},
		{Name: "Good", AmountInvested: dec(5000)},
	}
	totals := engine.Aggregate(sources, nil, date(2025, 1, 1))
	assert.True(t, totals.TotalInvested.Equal(dec(5000)))
}

func TestAggregateConcurrent_MatchesSequential(t *testing.T) {
	engine := NewEngine()
	now := date(2025, 9, 30)

	var sources []domain.IncomeSource
	for i := 0; i < 40; i++ {
		src := domain.IncomeSource{
			Name:           fmt.Sprintf("source-%02d", i),
			AmountInvested: dec(float64(10000 * (i + 1))),
			GrowthRate:     dec(float64(i%15) + 0.5),
			InvestmentDate: ptr(date(2020+i%5, time.Month(1+i%12), 1)),
			InHand:         i%3 == 0,
		}
		if i%2 == 0 {
			src.Type = domain.IncomeTypePassive
		}
		if i%4 == 0 {
			src.Payouts = []domain.PayoutSchedule{
				{Date: date(2025, 3, 1), Amount: dec(500), Type: domain.PayoutInterest},
				{Date: date(2026, 3, 1), Amount: dec(500), Type: domain.PayoutInterest},
			}
		}
		sources = append(sources, src)
	}
	expenses := []domain.Expense{{Category: domain.ExpenseNeeds, Amount: dec(42000), Date: now}}

	want := engine.Aggregate(sources, expenses, now)
	got, err := engine.AggregateConcurrent(context.Background(), sources, expenses, now)
	require.NoError(t, err)

	assert.Equal(t, want.TotalMonthly.String(), got.TotalMonthly.String())
	assert.Equal(t, want.TotalCurrentValue.String(), got.TotalCurrentValue.String())
	assert.Equal(t, want.TotalNetValue.String(), got.TotalNetValue.String())
	assert.Equal(t, want.WeightedCAGR.String(), got.WeightedCAGR.String())
	assert.Equal(t, want.PassivePercent.String(), got.PassivePercent.String())
	assert.Equal(t, want.LiquidAssets.String(), got.LiquidAssets.String())
	assert.Equal(t, want.LockedAssets.String(), got.LockedAssets.String())
	assert.Equal(t, want.SourceCount, got.SourceCount)

	computed, err := engine.ComputeAllConcurrent(context.Background(), sources, now)
	require.NoError(t, err)
	for i := range sources {
		assert.Equal(t, sources[i].Name, computed[i].Source.Name, "output order must match input order")
	}
}

func TestAggregateConcurrent_CancelledContext(t *testing.T) {
	engine := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.AggregateConcurrent(ctx, []domain.IncomeSource{{Name: "A"}}, nil, date(2025, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
