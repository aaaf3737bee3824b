package calculation

import (
	"testing"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetBreakdown(t *testing.T) {
	now := date(2025, 5, 20)
	expenses := []domain.Expense{
		{Category: domain.ExpenseNeeds, Amount: dec(60000), Date: now},
		{Category: domain.ExpenseWants, Amount: dec(10000), Date: now},
		{Category: domain.ExpenseSavings, Amount: dec(20000), Date: now},
		{Category: domain.ExpenseDebt, Amount: dec(5000), Date: now},
	}

	b := BudgetBreakdown(dec(100000), expenses)
	require.Len(t, b.Lines, 3)

	needs, wants, savings := b.Lines[0], b.Lines[1], b.Lines[2]
	assert.Equal(t, domain.ExpenseNeeds, needs.Category)
	assert.True(t, needs.Target.Equal(dec(50000)))
	assert.True(t, needs.UsedPercent.Equal(dec(120)))
	assert.True(t, needs.Over)

	assert.True(t, wants.Target.Equal(dec(30000)))
	assert.True(t, wants.UsedPercent.Equal(dec(33.3)), "used = %s", wants.UsedPercent)
	assert.False(t, wants.Over)

	assert.True(t, savings.UsedPercent.Equal(dec(100)))
	assert.False(t, savings.Over, "exactly on target is not over")

	assert.True(t, b.Debt.Equal(dec(5000)))
	assert.True(t, b.Other.IsZero())
}

func TestBudgetBreakdown_NoIncome(t *testing.T) {
	b := BudgetBreakdown(dec(0), []domain.Expense{{Category: domain.ExpenseNeeds, Amount: dec(100)}})
	assert.True(t, b.Lines[0].UsedPercent.IsZero())
	assert.True(t, b.Lines[0].Over)
}

func TestCurrentMonthExpenses(t *testing.T) {
	now := date(2025, 5, 20)
	expenses := []domain.Expense{
		{Description: "april", Amount: dec(1), Date: date(2025, 4, 30)},
		{Description: "first", Amount: dec(2), Date: date(2025, 5, 1)},
		{Description: "today", Amount: dec(3), Date: now},
	}

	got := CurrentMonthExpenses(expenses, now)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Description)
	assert.True(t, SumExpenses(got).Equal(dec(5)))
}

func TestDebtToIncome(t *testing.T) {
	expenses := []domain.Expense{
		{Amount: dec(15000), IsRecurring: true},
		{Amount: dec(5000), IsRecurring: true, IsLoan: true},
		{Amount: dec(9000)},
	}

	dti := DebtToIncome(expenses, dec(100000))
	assert.True(t, dti.Equal(dec(20)), "dti = %s", dti)
	assert.Equal(t, DTIGood, ClassifyDTI(dti))

	assert.True(t, DebtToIncome(expenses, dec(0)).IsZero())

	tests := []struct {
		dti  float64
		want DTIClass
	}{
		{0, DTIExcellent},
		{19.99, DTIExcellent},
		{39.99, DTIGood},
		{40, DTICritical},
		{250, DTICritical},
	}
	for _, tt := range tests {
		if got := ClassifyDTI(dec(tt.dti)); got != tt.want {
			t.Errorf("ClassifyDTI(%v) = %s, want %s", tt.dti, got, tt.want)
		}
	}
}
