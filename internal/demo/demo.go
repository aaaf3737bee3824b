// Package demo holds the sample portfolio shown to visitors who are not signed in
package demo

import (
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyExpense is the demo household's monthly spend
var MonthlyExpense = decimal.NewFromInt(65000)

// Sources returns a fresh copy of the demo income sources
func Sources() []domain.IncomeSource {
	return []domain.IncomeSource{
		{
			ID:            "demo-1",
			Name:          "Software Engineer",
			Type:          domain.IncomeTypeActive,
			Category:      domain.CategoryJob,
			MonthlyIncome: decimal.NewFromInt(120000),
			GrowthRate:    decimal.NewFromInt(5),
			RiskFactor:    2,
			WeeklyHours:   decimal.NewFromInt(45),
			SortOrder:     0,
		},
		{
			ID:             "demo-2",
			Name:           "Dividend Stocks",
			Type:           domain.IncomeTypePassive,
			Category:       domain.CategoryStocks,
			MonthlyIncome:  decimal.NewFromInt(5000),
			AmountInvested: decimal.NewFromInt(1000000),
			GrowthRate:     decimal.NewFromInt(12),
			RiskFactor:     6,
			WeeklyHours:    decimal.NewFromInt(1),
			SortOrder:      1,
		},
		{
			ID:             "demo-3",
			Name:           "Rental Property",
			Type:           domain.IncomeTypePassive,
			Category:       domain.CategoryRealEstate,
			MonthlyIncome:  decimal.NewFromInt(25000),
			AmountInvested: decimal.NewFromInt(5000000),
			GrowthRate:     decimal.NewFromInt(8),
			RiskFactor:     3,
			WeeklyHours:    decimal.NewFromInt(2),
			SortOrder:      2,
		},
		{
			ID:             "demo-4",
			Name:           "Tech Blog",
			Type:           domain.IncomeTypeSemiPassive,
			Category:       domain.CategoryBusiness,
			MonthlyIncome:  decimal.NewFromInt(8000),
			AmountInvested: decimal.NewFromInt(50000),
			GrowthRate:     decimal.NewFromInt(20),
			RiskFactor:     5,
			WeeklyHours:    decimal.NewFromInt(6),
			SortOrder:      3,
		},
	}
}

// Expenses returns the demo spend as one needs expense dated on the first of now's month
func Expenses(now time.Time) []domain.Expense {
	return []domain.Expense{{
		ID:          "demo-expense",
		Category:    domain.ExpenseNeeds,
		Amount:      MonthlyExpense,
		Description: "Household spend",
		Date:        time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}}
}
