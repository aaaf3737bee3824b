package components

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/domain"
)

func TestFormatChartValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "₹950"},
		{45000, "₹45K"},
		{250000, "₹2.5L"},
		{35000000, "₹3.5Cr"},
		{-120000, "₹-1.2L"},
	}
	for _, tt := range tests {
		if got := formatChartValue(tt.in); got != tt.want {
			t.Errorf("formatChartValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewCrossoverChart(t *testing.T) {
	proj := calculation.ProjectCrossoverFrom(
		decimal.NewFromInt(20000),
		decimal.NewFromInt(80000),
		decimal.NewFromInt(30000),
		domain.DefaultCrossoverAssumptions(),
	)
	chart := NewCrossoverChart(proj)

	assert.Len(t, chart.Series, 3)
	assert.Len(t, chart.Labels, len(proj.Points))
	assert.Contains(t, chart.Title, "in year")
	assert.Contains(t, chart.Render(), "Legend:")

	never := NewCrossoverChart(calculation.ProjectCrossoverFrom(decimal.Zero, decimal.NewFromInt(1000), decimal.NewFromInt(900), domain.DefaultCrossoverAssumptions()))
	assert.Contains(t, never.Title, "never")
}

func TestLineChart_FlatAndSinglePoint(t *testing.T) {
	flat := NewLineChart("flat").AddSeries("x", []float64{5, 5, 5}, "#fff")
	assert.NotPanics(t, func() { flat.Render() })

	single := NewLineChart("one").AddSeries("x", []float64{42}, "#fff")
	assert.NotPanics(t, func() { single.Render() })

	assert.Contains(t, NewLineChart("empty").Render(), "No data")
}

func TestLineChart_Marker(t *testing.T) {
	chart := NewLineChart("").
		AddSeries("a", []float64{1, 2, 3, 4}, "#fff").
		WithSize(30, 5).
		WithMarker(2)
	out := chart.Render()
	assert.Equal(t, 4, strings.Count(out, "┆"), "the point on the marker column covers one of five rows")
	assert.NotContains(t, out, "Legend:", "single series has no legend")

	outOfRange := NewLineChart("").AddSeries("a", []float64{1, 2}, "#fff").WithMarker(9)
	assert.NotContains(t, outOfRange.Render(), "┆")
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar(decimal.NewFromInt(25000), decimal.NewFromInt(50000))
	assert.True(t, bar.Percentage().Equal(decimal.NewFromInt(50)))
	assert.False(t, bar.IsComplete())
	assert.Contains(t, bar.Render(), "50.0%")

	over := NewBudgetBar(calculation.BudgetLine{
		Category: domain.ExpenseNeeds,
		Target:   decimal.NewFromInt(50000),
		Actual:   decimal.NewFromInt(60000),
	})
	assert.True(t, over.Over())
	assert.True(t, over.IsComplete())
	rendered := over.Render()
	assert.Contains(t, rendered, "120.0%")
	assert.Equal(t, over.Width, strings.Count(rendered, "█"), "an overspent bar is full")

	none := NewProgressBar(decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, none.Percentage().IsZero())
	assert.False(t, none.IsComplete())
}

func TestSourceCard(t *testing.T) {
	maturity := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	card := NewSourceCard(domain.SourceMetrics{
		Source: domain.IncomeSource{Name: "Corporate NCD", Category: domain.CategoryBonds},
		Metrics: domain.IncomeMetricResult{
			Invested:     decimal.NewFromInt(200000),
			Current:      decimal.NewFromInt(200000),
			Monthly:      decimal.NewFromInt(1583),
			CAGR:         decimal.NewFromFloat(9.5),
			MaturityDate: maturity,
			Type:         "Passive",
		},
	})

	assert.Equal(t, "Passive • Bonds", card.Subtitle)
	assert.Equal(t, "Monthly ₹1,583", card.Highlights[0])
	assert.Contains(t, card.Highlights, "Matures 2026-04-01")
	assert.Contains(t, card.Render(), "Corporate NCD")

	list := SourceListCompact([]*SourceCard{card, NewSourceCard(domain.SourceMetrics{Source: domain.IncomeSource{Name: "Salary"}})}, 1)
	lines := strings.Split(list, "\n")
	assert.True(t, strings.HasPrefix(lines[1], "▸ "), "selected row is marked")
	assert.Contains(t, SourceListCompact(nil, 0), "No income sources")
}

func TestTotalsCards(t *testing.T) {
	cards := TotalsCards(domain.PortfolioTotals{
		TotalMonthly: decimal.NewFromInt(120000),
		FreedomRatio: decimal.NewFromInt(120),
		SourceCount:  2,
	})
	assert.Len(t, cards, 6)
	assert.Equal(t, "₹1,20,000", cards[0].Value)
	assert.Equal(t, "2 sources", cards[0].Description)
	assert.True(t, cards[4].Trend.IsPositive, "freedom ratio over 100 trends up")
	assert.NotEmpty(t, MetricGrid(cards, 3))
}
