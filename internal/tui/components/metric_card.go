package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// MetricCard is one headline figure of the overview grid
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend colours a card green or red with a short note
type Trend struct {
	IsPositive bool
	Change     string
}

func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 30}
}

func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) trendText(sep string) string {
	if m.Trend == nil {
		return ""
	}
	return sep + tuistyles.MetricTrendStyle(m.Trend.IsPositive).
		Render(tuistyles.TrendIndicator(m.Trend.IsPositive)+" "+m.Trend.Change)
}

// Render draws a bordered tile. The border takes the trend colour when set.
func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if t := m.trendText(""); t != "" {
		lines = append(lines, t)
	}
	if m.Description != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Description))
	}

	var border lipgloss.TerminalColor = tuistyles.ColorBorder
	if m.Trend != nil {
		border = tuistyles.MetricTrendStyle(m.Trend.IsPositive).GetForeground()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(strings.Join(lines, "\n"))
}

// RenderCompact is the single-line form used in narrow terminals
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " +
		tuistyles.MetricValueStyle.Render(m.Value) + m.trendText(" ")
}

// TotalsCards builds the headline cards of the overview from portfolio totals
func TotalsCards(t domain.PortfolioTotals) []*MetricCard {
	cards := []*MetricCard{
		NewMetricCard("Monthly Income", tuistyles.FormatCurrency(t.TotalMonthly)).
			WithDescription(sourceCount(t.SourceCount)),
		NewMetricCard("Passive Income", tuistyles.FormatCurrency(t.PassiveMonthly)).
			WithDescription(tuistyles.FormatPercent(t.PassivePercent) + " of income"),
		NewMetricCard("Net Worth", tuistyles.FormatCurrency(t.NetWorth)).
			WithDescription("liquid " + tuistyles.FormatCurrency(t.LiquidAssets)),
		NewMetricCard("Savings Rate", tuistyles.FormatPercent(t.SavingsRate)).
			WithTrend(!t.SavingsRate.IsNegative(), "spend "+tuistyles.FormatCurrency(t.TotalMonthlyExpense)),
		NewMetricCard("Freedom Ratio", tuistyles.FormatPercent(t.FreedomRatio)).
			WithTrend(t.FreedomRatio.GreaterThanOrEqual(hundred), "of expenses covered"),
		NewMetricCard("Weighted CAGR", tuistyles.FormatPercent(t.WeightedCAGR)).
			WithDescription("on " + tuistyles.FormatCurrency(t.TotalInvested)),
	}
	for _, c := range cards {
		c.Width = 28
	}
	return cards
}

func sourceCount(n int) string {
	if n == 1 {
		return "1 source"
	}
	return fmt.Sprintf("%d sources", n)
}

// MetricGrid lays cards out left to right, columns per row
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	columns = max(1, columns)

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		tiles := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			tiles = append(tiles, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
