package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Bonds", CategoryBonds},
		{"bonds", CategoryBonds},
		{" FD/RD ", CategoryFDRD},
		{"p2p lending", CategoryP2PLending},
		{"Real Estate", CategoryRealEstate},
		{"Gold", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategory_IsDebtLike(t *testing.T) {
	assert.True(t, CategoryBonds.IsDebtLike())
	assert.True(t, CategoryFDRD.IsDebtLike())
	assert.True(t, CategoryP2PLending.IsDebtLike())
	assert.True(t, CategorySavings.IsDebtLike())
	assert.False(t, CategoryStocks.IsDebtLike())
	assert.False(t, CategoryOther.IsDebtLike())
}

func TestIncomeType_IsPassive(t *testing.T) {
	assert.True(t, IncomeTypePassive.IsPassive())
	assert.True(t, IncomeTypeSemiPassive.IsPassive())
	assert.False(t, IncomeTypeSemiActive.IsPassive())
	assert.False(t, IncomeTypeActive.IsPassive())
	assert.False(t, ParseIncomeType("lazy").IsPassive())
}

func TestParsePayoutTypeAndStatus(t *testing.T) {
	assert.Equal(t, PayoutPrincipal, ParsePayoutType("principal"))
	assert.Equal(t, PayoutOther, ParsePayoutType("coupon"))
	assert.Equal(t, PayoutScheduled, ParsePayoutStatus(""))
	assert.Equal(t, PayoutPaid, ParsePayoutStatus("PAID"))
	assert.Equal(t, PayoutStatusOther, ParsePayoutStatus("pending"))
}

func TestIncomeSource_YAMLDecodesClosedEnums(t *testing.T) {
	input := `
name: Corporate Bond
category: bonds
type: passive
amount_invested: 100000
growth_rate: 9.5
risk_factor: 3
investment_date: 2024-01-01
payouts:
  - date: 2024-07-01
    amount: 4750
    type: interest
  - date: 2025-01-01
    amount: 100000
    type: Principal
    status: paid
`
	var src IncomeSource
	require.NoError(t, yaml.Unmarshal([]byte(input), &src))

	assert.Equal(t, CategoryBonds, src.Category)
	assert.Equal(t, IncomeTypePassive, src.Type)
	assert.True(t, src.AmountInvested.Equal(decimal.NewFromInt(100000)))
	assert.True(t, src.GrowthRate.Equal(decimal.NewFromFloat(9.5)))
	require.Len(t, src.Payouts, 2)
	assert.Equal(t, PayoutInterest, src.Payouts[0].Type)
	assert.Equal(t, PayoutPrincipal, src.Payouts[1].Type)
	assert.Equal(t, PayoutPaid, src.Payouts[1].Status)
	require.NotNil(t, src.InvestmentDate)
	assert.Equal(t, 2024, src.InvestmentDate.Year())
}

func TestExpense_JSONDecodesCategory(t *testing.T) {
	var e Expense
	require.NoError(t, json.Unmarshal([]byte(`{"category":"wants","amount":"1200","date":"2025-03-04T00:00:00Z"}`), &e))
	assert.Equal(t, ExpenseWants, e.Category)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(1200)))

	require.NoError(t, json.Unmarshal([]byte(`{"category":"groceries","amount":"10","date":"2025-03-04T00:00:00Z"}`), &e))
	assert.Equal(t, ExpenseOther, e.Category)
}

func TestIncomeSource_StartDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	invested := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	s := IncomeSource{}
	assert.Equal(t, now, s.StartDate(now))

	s.CreatedAt = &created
	assert.Equal(t, created, s.StartDate(now))

	s.InvestmentDate = &invested
	assert.Equal(t, invested, s.StartDate(now))
}

func TestIncomeSource_HasMaturityEvent(t *testing.T) {
	until := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		source   IncomeSource
		expected bool
	}{
		{"bond with end date", IncomeSource{Name: "GOI 2026", Category: CategoryBonds, InvestedUntil: &until}, true},
		{"stock with end date", IncomeSource{Name: "ESOP", Category: CategoryStocks, InvestedUntil: &until}, true},
		{"name contains FD", IncomeSource{Name: "SBI FD", Category: CategoryOther, InvestedUntil: &until}, true},
		{"fd category but name without FD", IncomeSource{Name: "Bank deposit", Category: CategoryFDRD, InvestedUntil: &until}, false},
		{"bond without end date", IncomeSource{Name: "Perpetual", Category: CategoryBonds}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.source.HasMaturityEvent())
		})
	}
}

func TestIncomeSource_DeepCopy(t *testing.T) {
	until := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	original := &IncomeSource{
		Name:          "Bond",
		InvestedUntil: &until,
		Payouts: []PayoutSchedule{
			{Date: until, Amount: decimal.NewFromInt(500), Type: PayoutInterest},
		},
	}

	copied := original.DeepCopy()
	assert.NotSame(t, original, copied)
	assert.NotSame(t, original.InvestedUntil, copied.InvestedUntil)

	copied.Payouts[0].Amount = decimal.NewFromInt(1)
	*copied.InvestedUntil = until.AddDate(1, 0, 0)

	assert.True(t, original.Payouts[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, until, *original.InvestedUntil)

	var nilSource *IncomeSource
	assert.Nil(t, nilSource.DeepCopy())
}

func TestConfiguration_Now(t *testing.T) {
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	c := &Configuration{}
	assert.Equal(t, fallback, c.Now(fallback))
	c.AsOf = &asOf
	assert.Equal(t, asOf, c.Now(fallback))
}
