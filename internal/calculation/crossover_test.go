package calculation

import (
	"testing"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProjectCrossoverFrom(t *testing.T) {
	a := domain.DefaultCrossoverAssumptions()

	proj := ProjectCrossoverFrom(dec(40000), dec(100000), dec(50000), a)

	assert.Len(t, proj.Points, 21)
	assert.Equal(t, "Y0", proj.Points[0].Label)
	assert.Equal(t, "Y20", proj.Points[20].Label)
	assert.True(t, proj.Points[0].Passive.Equal(dec(40000)))
	assert.True(t, proj.Points[1].Passive.Equal(dec(44000)))
	assert.True(t, proj.Points[1].Active.Equal(dec(105000)))
	assert.True(t, proj.Points[1].Expense.Equal(dec(53000)))

	assert.Equal(t, 7, proj.FreedomYear)
	assert.Equal(t, 20, proj.PassiveOverActiveYr)
	assert.False(t, proj.UsedExpenseFallback)
}

func TestProjectCrossoverFrom_ExpenseFallback(t *testing.T) {
	proj := ProjectCrossoverFrom(decimal.Zero, dec(80000), decimal.Zero, domain.DefaultCrossoverAssumptions())

	assert.True(t, proj.UsedExpenseFallback)
	assert.True(t, proj.Points[0].Expense.Equal(dec(40000)), "expense = %s", proj.Points[0].Expense)
	assert.Equal(t, -1, proj.FreedomYear, "no passive income never crosses")
	assert.Equal(t, -1, proj.PassiveOverActiveYr)
}

func TestProjectCrossoverFrom_DefaultsHorizon(t *testing.T) {
	a := domain.DefaultCrossoverAssumptions()
	a.Years = 0
	proj := ProjectCrossoverFrom(dec(1), dec(1), dec(1), a)
	assert.Len(t, proj.Points, 21)
	assert.Equal(t, 0, proj.FreedomYear)
	assert.Equal(t, 0, proj.PassiveOverActiveYr)
}

func TestEngine_ProjectCrossoverSplitsByType(t *testing.T) {
	engine := NewEngine()
	sources := []domain.IncomeSource{
		{Name: "Salary", Type: domain.IncomeTypeActive, MonthlyIncome: dec(100000)},
		{Name: "Rent", Type: domain.IncomeTypePassive, MonthlyIncome: dec(20000)},
		{Name: "Blog", Type: domain.IncomeTypeSemiPassive, MonthlyIncome: dec(10000)},
		{Name: "Consulting", Type: domain.IncomeTypeSemiActive, MonthlyIncome: dec(5000)},
	}

	proj := engine.ProjectCrossover(sources, dec(60000), date(2025, 1, 1), domain.DefaultCrossoverAssumptions())

	assert.True(t, proj.Points[0].Passive.Equal(dec(30000)), "passive = %s", proj.Points[0].Passive)
	assert.True(t, proj.Points[0].Active.Equal(dec(105000)), "active = %s", proj.Points[0].Active)
	assert.True(t, proj.Points[0].Expense.Equal(dec(60000)))
}
