package demo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	sources := Sources()
	require.Len(t, sources, 4)

	total := decimal.Zero
	for _, s := range sources {
		total = total.Add(s.MonthlyIncome)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(158000)), "declared demo income is 158000, got %s", total)

	sources[0].Name = "changed"
	assert.Equal(t, "Software Engineer", Sources()[0].Name, "each call returns a fresh copy")
}

func TestExpenses(t *testing.T) {
	now := time.Date(2025, 7, 19, 15, 0, 0, 0, time.UTC)
	got := Expenses(now)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(MonthlyExpense))
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
}
