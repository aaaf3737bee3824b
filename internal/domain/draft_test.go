package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeDraft_SetIsPure(t *testing.T) {
	base := NewIncomeDraft()

	updated, err := base.Set("name", "  Rental Flat ")
	require.NoError(t, err)

	assert.Equal(t, "", base.Name, "original draft must not change")
	assert.Equal(t, "Rental Flat", updated.Name)
}

func TestIncomeDraft_SetParsesFields(t *testing.T) {
	d := NewIncomeDraft()
	steps := [][2]string{
		{"item", "Corporate FD"},
		{"category", "fd/rd"},
		{"type", "Passive"},
		{"nature", "variable"},
		{"risk_factor", "4"},
		{"growth_rate", "7.25"},
		{"weekly_hours", "0.5"},
		{"amount_invested", "250000"},
		{"monthly_income", "1500"},
		{"in_hand", "on"},
		{"tds_deducted", "true"},
		{"tds_rate", "10"},
		{"investment_date", "2024-04-01"},
		{"invested_until", "2027-04-01"},
		{"next_payout_date", ""},
	}

	var err error
	for _, s := range steps {
		d, err = d.Set(s[0], s[1])
		require.NoError(t, err, "field %s", s[0])
	}

	assert.Equal(t, "Corporate FD", d.Name)
	assert.Equal(t, CategoryFDRD, d.Category)
	assert.Equal(t, IncomeTypePassive, d.Type)
	assert.Equal(t, NatureVariable, d.Nature)
	assert.Equal(t, 4, d.RiskFactor)
	assert.True(t, d.GrowthRate.Equal(decimal.NewFromFloat(7.25)))
	assert.True(t, d.InHand)
	assert.True(t, d.TDSDeducted)
	require.NotNil(t, d.InvestmentDate)
	assert.Equal(t, time.April, d.InvestmentDate.Month())
	assert.Nil(t, d.NextPayoutDate)
	assert.NoError(t, d.Validate())
}

func TestIncomeDraft_SetRejectsBadInput(t *testing.T) {
	d := NewIncomeDraft()

	_, err := d.Set("risk_factor", "high")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "risk_factor", verr.Field)

	_, err = d.Set("investment_date", "01/04/2024")
	assert.Error(t, err)

	_, err = d.Set("colour", "blue")
	assert.Error(t, err)
}

func TestIncomeDraft_Validate(t *testing.T) {
	valid := NewIncomeDraft()
	valid.Name = "Salary"

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, -1, 0)

	tests := []struct {
		name   string
		mutate func(d *IncomeDraft)
		field  string
	}{
		{"missing name", func(d *IncomeDraft) { d.Name = "" }, "name"},
		{"risk too low", func(d *IncomeDraft) { d.RiskFactor = 0 }, "risk_factor"},
		{"risk too high", func(d *IncomeDraft) { d.RiskFactor = 11 }, "risk_factor"},
		{"negative invested", func(d *IncomeDraft) { d.AmountInvested = decimal.NewFromInt(-1) }, "amount_invested"},
		{"negative hours", func(d *IncomeDraft) { d.WeeklyHours = decimal.NewFromInt(-2) }, "weekly_hours"},
		{"tds over 100", func(d *IncomeDraft) { d.TDSRate = decimal.NewFromInt(101) }, "tds_rate"},
		{"ends before start", func(d *IncomeDraft) { d.InvestmentDate = &start; d.InvestedUntil = &before }, "invested_until"},
	}

	assert.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestIncomeDraft_RoundTripThroughSource(t *testing.T) {
	until := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	src := IncomeSource{
		ID:             "abc",
		Name:           "Index Fund",
		Category:       CategoryMutualFunds,
		Type:           IncomeTypePassive,
		AmountInvested: decimal.NewFromInt(500000),
		GrowthRate:     decimal.NewFromInt(12),
		RiskFactor:     6,
		InvestedUntil:  &until,
	}

	draft := DraftFromSource(src)
	back := draft.ToIncomeSource("owner-1")

	assert.Equal(t, "owner-1", back.OwnerID)
	assert.Equal(t, "", back.ID, "identity is assigned by the caller")
	assert.Equal(t, src.Name, back.Name)
	assert.Equal(t, src.Category, back.Category)
	assert.True(t, src.AmountInvested.Equal(back.AmountInvested))
	assert.NotSame(t, src.InvestedUntil, back.InvestedUntil)

	empty := IncomeDraft{Name: "x", RiskFactor: 1}
	assert.Equal(t, CategoryOther, empty.ToIncomeSource("o").Category)
}
