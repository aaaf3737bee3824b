package events

import (
	"testing"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func at(days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same instant", now, 0},
		{"one hour ahead rounds up", now.Add(time.Hour), 1},
		{"exactly two days", now.Add(48 * time.Hour), 2},
		{"an hour ago", now.Add(-time.Hour), 0},
		{"a day and an hour ago", now.Add(-25 * time.Hour), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(now, tt.date))
		})
	}
}

func TestExtract(t *testing.T) {
	sources := []domain.IncomeSource{
		{
			ID:             "bond",
			Name:           "Tata Capital NCD",
			Category:       domain.CategoryBonds,
			AmountInvested: decimal.NewFromInt(100000),
			InvestedUntil:  at(45),
			Payouts: []domain.PayoutSchedule{
				{Date: *at(-30), Amount: decimal.NewFromInt(2500), Type: domain.PayoutInterest},
				{Date: *at(15), Amount: decimal.NewFromInt(2500), Type: domain.PayoutInterest},
				{Date: *at(45), Amount: decimal.NewFromInt(100000), Type: domain.PayoutPrincipal},
			},
		},
		{
			ID:             "rent",
			Name:           "Flat",
			Category:       domain.CategoryRealEstate,
			MonthlyIncome:  decimal.NewFromInt(25000),
			AmountInvested: decimal.NewFromInt(5000000),
			NextPayoutDate: at(5),
			InvestedUntil:  at(10),
		},
		{
			ID:             "far",
			Name:           "SBI FD",
			Category:       domain.CategoryFDRD,
			AmountInvested: decimal.NewFromInt(300000),
			InvestedUntil:  at(90),
		},
	}

	got := Extract(sources, now, DefaultWindowDays)
	require.Len(t, got, 4)

	assert.Equal(t, "Flat Payout", got[0].Title)
	assert.Equal(t, TypePayout, got[0].Type)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(25000)))
	assert.True(t, got[0].InvestedAmount.Equal(decimal.NewFromInt(5000000)))
	assert.Equal(t, 5, got[0].DaysUntil)

	assert.Equal(t, "Tata Capital NCD Interest", got[1].Title)
	assert.Equal(t, "Interest", got[1].Type)

	// same date: principal payout listed before maturity, matching source order
	assert.Equal(t, "Tata Capital NCD Principal", got[2].Title)
	assert.Equal(t, "Tata Capital NCD Maturity", got[3].Title)
	assert.Equal(t, TypeMaturity, got[3].Type)
	assert.True(t, got[3].Amount.Equal(decimal.NewFromInt(100000)), "maturity reports the invested amount")
	assert.Equal(t, "bond", got[3].SourceID)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date), "events must be sorted by date")
	}
}

func TestExtract_WindowBounds(t *testing.T) {
	sources := []domain.IncomeSource{
		{Name: "Edge", NextPayoutDate: at(60)},
		{Name: "Past", NextPayoutDate: at(-2)},
		{Name: "Today", NextPayoutDate: &now},
	}

	got := Extract(sources, now, 60)
	require.Len(t, got, 2)
	assert.Equal(t, "Today Payout", got[0].Title)
	assert.Equal(t, 0, got[0].DaysUntil)
	assert.Equal(t, 60, got[1].DaysUntil)

	assert.Len(t, Extract(sources, now, 30), 1)
}

func TestExtract_IsIdempotent(t *testing.T) {
	sources := []domain.IncomeSource{
		{ID: "a", Name: "A", NextPayoutDate: at(3)},
		{ID: "b", Name: "B", Category: domain.CategoryStocks, InvestedUntil: at(3)},
		{ID: "c", Name: "C", NextPayoutDate: at(1)},
	}

	first := Extract(sources, now, DefaultWindowDays)
	second := Extract(sources, now, DefaultWindowDays)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"c", "a", "b"}, []string{first[0].SourceID, first[1].SourceID, first[2].SourceID})
}

func TestExtract_NoEvents(t *testing.T) {
	got := Extract([]domain.IncomeSource{{Name: "Salary", Category: domain.CategoryJob}}, now, DefaultWindowDays)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTop(t *testing.T) {
	list := make([]Event, 8)
	assert.Len(t, Top(list, DefaultTop), 5)
	assert.Len(t, Top(list[:3], DefaultTop), 3)
	assert.Empty(t, Top(list, 0))
	assert.Empty(t, Top(list, -1))
}
