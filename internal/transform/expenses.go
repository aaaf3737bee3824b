package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// AddExpense appends an expense. A zero Date means the portfolio's as-of date,
// falling back to today.
type AddExpense struct {
	Category           domain.ExpenseCategory
	Amount             decimal.Decimal
	ExpenseDescription string
	Date               time.Time
	Recurring          bool
	Loan               bool
}

func (a *AddExpense) Name() string { return "add_expense" }

func (a *AddExpense) Description() string {
	kind := "expense"
	if a.Loan {
		kind = "loan payment"
	}
	return fmt.Sprintf("Add %s %s of %s", a.Category, kind, a.Amount.StringFixed(0))
}

func (a *AddExpense) Validate(base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(a.Name(), "validate", "base portfolio cannot be nil", nil)
	}
	if !a.Amount.IsPositive() {
		return NewTransformError(a.Name(), "validate", "amount must be positive", nil)
	}
	return nil
}

func (a *AddExpense) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()

	date := a.Date
	if date.IsZero() {
		date = modified.Now(time.Now())
	}
	category := a.Category
	if category == "" {
		category = domain.ExpenseOther
	}
	modified.Expenses = append(modified.Expenses, domain.Expense{
		Category:    category,
		Amount:      a.Amount,
		Description: a.ExpenseDescription,
		Date:        date,
		IsRecurring: a.Recurring || a.Loan,
		IsLoan:      a.Loan,
	})
	return modified, nil
}
