package calculation

import (
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetRule is the target share of income for each spending bucket
var BudgetRule = map[domain.ExpenseCategory]decimal.Decimal{
	domain.ExpenseNeeds:   decimal.NewFromFloat(0.5),
	domain.ExpenseWants:   decimal.NewFromFloat(0.3),
	domain.ExpenseSavings: decimal.NewFromFloat(0.2),
}

// BudgetLine compares target and actual spend for one bucket
type BudgetLine struct {
	Category    domain.ExpenseCategory `json:"category"`
	Target      decimal.Decimal        `json:"target"`
	Actual      decimal.Decimal        `json:"actual"`
	UsedPercent decimal.Decimal        `json:"used_percent"`
	Over        bool                   `json:"over"`
}

// Budget is the 50/30/20 view of a month
type Budget struct {
	Income decimal.Decimal `json:"income"`
	Lines  []BudgetLine    `json:"lines"`
	Debt   decimal.Decimal `json:"debt"`
	Other  decimal.Decimal `json:"other"`
}

// DTIClass buckets a debt-to-income ratio
type DTIClass string

const (
	DTIExcellent DTIClass = "Excellent"
	DTIGood      DTIClass = "Good"
	DTICritical  DTIClass = "Critical"
)

// CurrentMonthExpenses keeps expenses dated on or after the first day of now's month
func CurrentMonthExpenses(expenses []domain.Expense, now time.Time) []domain.Expense {
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Date.Before(firstDay) {
			out = append(out, e)
		}
	}
	return out
}

// SumExpenses totals expense amounts
func SumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// BudgetBreakdown splits income into Needs/Wants/Savings targets and sets actual spend against them
func BudgetBreakdown(monthlyIncome decimal.Decimal, expenses []domain.Expense) Budget {
	actual := map[domain.ExpenseCategory]decimal.Decimal{}
	for _, e := range expenses {
		actual[e.Category] = actual[e.Category].Add(e.Amount)
	}

	b := Budget{Income: monthlyIncome, Debt: actual[domain.ExpenseDebt], Other: actual[domain.ExpenseOther]}
	for _, cat := range []domain.ExpenseCategory{domain.ExpenseNeeds, domain.ExpenseWants, domain.ExpenseSavings} {
		target := monthlyIncome.Mul(BudgetRule[cat])
		line := BudgetLine{
			Category:    cat,
			Target:      target.Round(0),
			Actual:      actual[cat],
			UsedPercent: Percent(actual[cat], target).Round(1),
		}
		line.Over = actual[cat].GreaterThan(target)
		b.Lines = append(b.Lines, line)
	}
	return b
}

// DebtToIncome is recurring expense as a percentage of monthly income
func DebtToIncome(expenses []domain.Expense, monthlyIncome decimal.Decimal) decimal.Decimal {
	recurring := decimal.Zero
	for _, e := range expenses {
		if e.IsRecurring {
			recurring = recurring.Add(e.Amount)
		}
	}
	return Percent(recurring, monthlyIncome)
}

// ClassifyDTI grades a DTI percentage
func ClassifyDTI(dti decimal.Decimal) DTIClass {
	switch {
	case dti.LessThan(decimal.NewFromInt(20)):
		return DTIExcellent
	case dti.LessThan(decimal.NewFromInt(40)):
		return DTIGood
	default:
		return DTICritical
	}
}
