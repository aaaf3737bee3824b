package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the 50/30/20 bucket an expense belongs to
type ExpenseCategory string

const (
	ExpenseNeeds   ExpenseCategory = "Needs"
	ExpenseWants   ExpenseCategory = "Wants"
	ExpenseSavings ExpenseCategory = "Savings"
	ExpenseDebt    ExpenseCategory = "Debt"
	ExpenseOther   ExpenseCategory = "Other"
)

// ExpenseCategories lists the categories a user can pick
var ExpenseCategories = []ExpenseCategory{ExpenseNeeds, ExpenseWants, ExpenseSavings, ExpenseDebt}

// ParseExpenseCategory defaults unknown input to ExpenseOther
func ParseExpenseCategory(s string) ExpenseCategory {
	s = strings.TrimSpace(s)
	for _, c := range ExpenseCategories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return ExpenseOther
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *ExpenseCategory) UnmarshalText(text []byte) error {
	*c = ParseExpenseCategory(string(text))
	return nil
}

// Expense is a single spend record. The recurring, loan and SIP blocks are optional extensions.
type Expense struct {
	ID          string          `yaml:"id,omitempty" json:"id,omitempty"`
	OwnerID     string          `yaml:"owner_id,omitempty" json:"owner_id,omitempty"`
	Category    ExpenseCategory `yaml:"category" json:"category"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Date        time.Time       `yaml:"date" json:"date"`

	IsRecurring  bool   `yaml:"is_recurring,omitempty" json:"is_recurring,omitempty"`
	Frequency    string `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	RecurringDay int    `yaml:"recurring_day,omitempty" json:"recurring_day,omitempty"`

	IsLoan           bool            `yaml:"is_loan,omitempty" json:"is_loan,omitempty"`
	LoanPrincipal    decimal.Decimal `yaml:"loan_principal,omitempty" json:"loan_principal,omitempty"`
	LoanRate         decimal.Decimal `yaml:"loan_rate,omitempty" json:"loan_rate,omitempty"`
	LoanTenureMonths int             `yaml:"loan_tenure_months,omitempty" json:"loan_tenure_months,omitempty"`

	IsSIP        bool   `yaml:"is_sip,omitempty" json:"is_sip,omitempty"`
	SIPAssetType string `yaml:"sip_asset_type,omitempty" json:"sip_asset_type,omitempty"`
}
