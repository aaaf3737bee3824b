package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/goal"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

const labelWidth = 14

var hundred = decimal.NewFromInt(100)

// ProgressBar fills Width cells in proportion to Current over Total.
// Spend past the target fills the bar and, with OverIsBad, turns it red.
type ProgressBar struct {
	Current   decimal.Decimal
	Total     decimal.Decimal
	Width     int
	Label     string
	OverIsBad bool
}

func NewProgressBar(current, total decimal.Decimal) *ProgressBar {
	return &ProgressBar{Current: current, Total: total, Width: 30}
}

// NewBudgetBar shows spend in one 50/30/20 bucket against its target
func NewBudgetBar(line calculation.BudgetLine) *ProgressBar {
	return &ProgressBar{
		Current:   line.Actual,
		Total:     line.Target,
		Width:     30,
		Label:     string(line.Category),
		OverIsBad: true,
	}
}

// NewGoalBar shows the saved amount of a goal against its target
func NewGoalBar(plan goal.Plan) *ProgressBar {
	return &ProgressBar{Current: plan.Current, Total: plan.Target, Width: 30, Label: plan.Name}
}

// Percentage is zero when there is no target
func (p *ProgressBar) Percentage() decimal.Decimal {
	if !p.Total.IsPositive() {
		return decimal.Zero
	}
	return p.Current.Div(p.Total).Mul(hundred)
}

func (p *ProgressBar) IsComplete() bool {
	return p.Total.IsPositive() && p.Current.GreaterThanOrEqual(p.Total)
}

func (p *ProgressBar) Over() bool {
	return p.Current.GreaterThan(p.Total)
}

// cells is the number of filled cells, clamped to [0, Width]
func (p *ProgressBar) cells() int {
	if p.Over() {
		return p.Width
	}
	n := int(p.Percentage().Mul(decimal.NewFromInt(int64(p.Width))).Div(hundred).IntPart())
	return min(max(n, 0), p.Width)
}

func (p *ProgressBar) color() lipgloss.Color {
	switch {
	case p.OverIsBad && p.Over():
		return tuistyles.ColorDanger
	case p.OverIsBad && p.Percentage().GreaterThanOrEqual(decimal.NewFromInt(90)):
		return tuistyles.ColorAccent
	}
	return tuistyles.ColorSuccess
}

// Render prints "label [████░░░░] 50.0% • ₹25,000 / ₹50,000"
func (p *ProgressBar) Render() string {
	color := p.color()
	filled := p.cells()

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Width(labelWidth).Render(p.Label))
	}
	b.WriteString("[")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", p.Width-filled)))
	b.WriteString("] ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(p.Percentage().StringFixed(1) + "%"))
	b.WriteString(tuistyles.HelpDescStyle.Render(fmt.Sprintf(" • %s / %s",
		tuistyles.FormatCurrency(p.Current), tuistyles.FormatCurrency(p.Total))))
	return b.String()
}
