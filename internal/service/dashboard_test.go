package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/gravityless/internal/apperrors"
	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIncomes struct {
	sources map[string][]domain.IncomeSource
	err     error
}

func (f fakeIncomes) List(_ context.Context, ownerID string) ([]domain.IncomeSource, error) {
	return f.sources[ownerID], f.err
}

type fakeExpenses struct {
	expenses map[string][]domain.Expense
	err      error
}

func (f fakeExpenses) List(_ context.Context, ownerID string) ([]domain.Expense, error) {
	return f.expenses[ownerID], f.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestDashboardService_Demo(t *testing.T) {
	svc := NewDashboardService(nil, nil, nil, DefaultOptions(), nil)
	now := day(2025, 6, 15)

	d, err := svc.Demo(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, d.Sources, 4)
	assert.Equal(t, "Software Engineer", d.Sources[0].Source.Name)
	assert.True(t, d.Totals.TotalMonthly.Equal(decimal.NewFromInt(164166)), "total monthly = %s", d.Totals.TotalMonthly)
	assert.True(t, d.Totals.PassiveMonthly.Equal(decimal.NewFromInt(44166)), "passive = %s", d.Totals.PassiveMonthly)
	assert.True(t, d.Totals.TotalMonthlyExpense.Equal(decimal.NewFromInt(65000)))
	assert.Empty(t, d.Events, "demo sources have no dated payouts")
	assert.Len(t, d.Crossover.Points, 21)
	assert.False(t, d.Crossover.UsedExpenseFallback)
	assert.Equal(t, calculation.DTIExcellent, d.DTIClass)
	assert.True(t, d.AsOf.Equal(now))
}

func TestDashboardService_Build(t *testing.T) {
	now := day(2025, 6, 15)
	sources := []domain.IncomeSource{
		{ID: "salary", Name: "Salary", Type: domain.IncomeTypeActive, MonthlyIncome: decimal.NewFromInt(100000)},
		{
			ID:             "fd",
			Name:           "Fixed deposit",
			Type:           domain.IncomeTypePassive,
			Category:       domain.CategoryFDRD,
			AmountInvested: decimal.NewFromInt(200000),
			InvestmentDate: ptr(day(2025, 1, 1)),
			InvestedUntil:  ptr(day(2025, 7, 1)),
			Payouts: []domain.PayoutSchedule{
				{Date: day(2025, 7, 1), Amount: decimal.NewFromInt(200000), Type: domain.PayoutPrincipal},
				{Date: day(2025, 7, 1), Amount: decimal.NewFromInt(7000), Type: domain.PayoutInterest},
			},
		},
	}
	expenses := []domain.Expense{
		{Category: domain.ExpenseNeeds, Amount: decimal.NewFromInt(40000), Date: day(2025, 6, 1)},
		{Category: domain.ExpenseWants, Amount: decimal.NewFromInt(15000), Date: day(2025, 6, 10)},
		{Category: domain.ExpenseDebt, Amount: decimal.NewFromInt(25000), Date: day(2025, 5, 5), IsRecurring: true, IsLoan: true},
	}

	svc := NewDashboardService(
		calculation.NewEngine(),
		fakeIncomes{sources: map[string][]domain.IncomeSource{"alice": sources}},
		fakeExpenses{expenses: map[string][]domain.Expense{"alice": expenses}},
		DefaultOptions(),
		nil,
	)

	d, err := svc.Build(context.Background(), "alice", now)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Totals.SourceCount)
	assert.True(t, d.Totals.TotalMonthlyExpense.Equal(decimal.NewFromInt(55000)), "only June expenses count, got %s", d.Totals.TotalMonthlyExpense)
	require.Len(t, d.Budget.Lines, 3)
	assert.True(t, d.Budget.Lines[0].Actual.Equal(decimal.NewFromInt(40000)))

	assert.True(t, d.DebtToIncome.IsPositive(), "recurring May loan still counts towards DTI")

	require.NotEmpty(t, d.Events)
	for i := 1; i < len(d.Events); i++ {
		assert.False(t, d.Events[i].Date.Before(d.Events[i-1].Date), "events sorted by date")
	}
	assert.LessOrEqual(t, len(d.Events), 5)
	assert.Equal(t, "fd", d.Events[0].SourceID)

	empty, err := svc.Build(context.Background(), "nobody", now)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Totals.SourceCount)
	assert.NotNil(t, empty.Events)
}

func TestDashboardService_BuildErrors(t *testing.T) {
	boom := errors.New("connection reset")

	svc := NewDashboardService(nil, fakeIncomes{err: boom}, fakeExpenses{}, DefaultOptions(), nil)
	_, err := svc.Build(context.Background(), "alice", day(2025, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFailedToRetrieveSources)
	assert.ErrorIs(t, err, boom)

	svc = NewDashboardService(nil, fakeIncomes{}, fakeExpenses{err: boom}, DefaultOptions(), nil)
	_, err = svc.Build(context.Background(), "alice", day(2025, 1, 1))
	assert.ErrorIs(t, err, apperrors.ErrFailedToRetrieveExpenses)
}

func TestDashboardService_ComposeCancelled(t *testing.T) {
	svc := NewDashboardService(nil, nil, nil, Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Compose(ctx, []domain.IncomeSource{{Name: "A"}}, nil, day(2025, 1, 1))
	assert.ErrorIs(t, err, apperrors.ErrFailedToBuildDashboard)
	assert.ErrorIs(t, err, context.Canceled)
}
