package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// OptimizeModel ranks sources by efficiency, lists warnings and splits a surplus
// across the allocation presets
type OptimizeModel struct {
	scores     []optimize.Score
	suggestion optimize.Suggestion
	strategies []optimize.AllocationStrategy
	strategy   int
	amount     textinput.Model
	allocation *optimize.Allocation
	inputErr   string
	width      int
	height     int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "surplus in ₹"
	ti.Prompt = "Amount: "
	ti.CharLimit = 15
	ti.Width = 20

	return &OptimizeModel{
		strategies: optimize.AllStrategies(),
		amount:     ti,
	}
}

// SetScores replaces the scored sources and their warnings
func (m *OptimizeModel) SetScores(scores []optimize.Score, suggestion optimize.Suggestion) {
	m.scores = optimize.RankByEfficiency(scores)
	m.suggestion = suggestion
}

// SetSize updates the scene dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether the amount field has focus and should receive every key
func (m *OptimizeModel) Editing() bool {
	return m.amount.Focused()
}

// Strategy returns the selected allocation preset
func (m *OptimizeModel) Strategy() optimize.AllocationStrategy {
	return m.strategies[m.strategy]
}

// Allocation returns the last computed split, nil before the first one
func (m *OptimizeModel) Allocation() *optimize.Allocation {
	return m.allocation
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.amount.Focused() {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			m.amount.Blur()
			m.allocate()
			return m, nil
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
			m.amount.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
		m.inputErr = ""
		return m, m.amount.Focus()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "right", "l"))):
		m.strategy = (m.strategy + 1) % len(m.strategies)
		m.allocate()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "left"))):
		m.strategy = (m.strategy + len(m.strategies) - 1) % len(m.strategies)
		m.allocate()
	}
	return m, nil
}

// allocate recomputes the split for the typed amount; an empty field clears it
func (m *OptimizeModel) allocate() {
	raw := strings.ReplaceAll(strings.TrimSpace(m.amount.Value()), ",", "")
	if raw == "" {
		m.allocation = nil
		m.inputErr = ""
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		m.allocation = nil
		m.inputErr = fmt.Sprintf("%q is not a valid amount", m.amount.Value())
		return
	}
	a := m.Strategy().Allocate(amount)
	m.allocation = &a
	m.inputErr = ""
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("Efficiency Ranking"))
	content.WriteString("\n\n")
	if len(m.scores) == 0 {
		content.WriteString(tuistyles.InfoStyle.Render("No income sources to score."))
		content.WriteString("\n")
	} else {
		header := fmt.Sprintf("%-24s %12s %8s %6s %12s %8s  %s", "Source", "Monthly", "Hrs/wk", "Risk", "₹/hr", "Score", "Flags")
		content.WriteString(tuistyles.TableHeaderStyle.Render(header))
		content.WriteString("\n")
		for _, s := range m.scores {
			content.WriteString(m.renderScore(s))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	if len(m.suggestion.Warnings) == 0 {
		content.WriteString(tuistyles.MetricPositiveStyle.Render("No time leaks or risk bombs."))
		content.WriteString("\n")
	}
	for _, w := range m.suggestion.Warnings {
		content.WriteString(tuistyles.WarningStyle.Render("! " + w))
		content.WriteString("\n")
	}
	if m.suggestion.Theory != "" {
		content.WriteString(tuistyles.HelpDescStyle.Render(m.suggestion.Theory))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.renderAllocation())
	return content.String()
}

func (m *OptimizeModel) renderScore(s optimize.Score) string {
	var flags []string
	if s.TimeLeak {
		flags = append(flags, "time leak")
	}
	if s.RiskBomb {
		flags = append(flags, "risk bomb")
	}

	style := tuistyles.TableCellStyle
	if len(flags) > 0 {
		style = tuistyles.MetricNegativeStyle
	}
	return style.Render(fmt.Sprintf("%-24s %12s %8s %6d %12s %8s  %s",
		truncate(s.Name, 24),
		tuistyles.FormatCurrency(s.MonthlyIncome),
		s.WeeklyHours.StringFixed(1),
		s.RiskFactor,
		tuistyles.FormatCurrency(s.ROIPerHour.Round(0)),
		s.EfficiencyScore.StringFixed(1),
		strings.Join(flags, ", ")))
}

func (m *OptimizeModel) renderAllocation() string {
	var b strings.Builder
	strategy := m.Strategy()
	split := strategy.Split()

	b.WriteString(tuistyles.TitleStyle.Render("Surplus Allocation"))
	b.WriteString("\n\n")
	for i, s := range m.strategies {
		style := tuistyles.UnselectedItemStyle
		prefix := "  "
		if i == m.strategy {
			style = tuistyles.SelectedItemStyle
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + s.Name()))
		b.WriteString("\n")
	}
	b.WriteString(tuistyles.HelpDescStyle.Render(fmt.Sprintf("%s (%d/%d/%d emergency/safe/growth)",
		strategy.Description(), split.Emergency, split.Safe, split.Growth)))
	b.WriteString("\n\n")

	b.WriteString(m.amount.View())
	b.WriteString("\n")
	if m.inputErr != "" {
		b.WriteString(tuistyles.MetricNegativeStyle.Render(m.inputErr))
		b.WriteString("\n")
	}

	if m.allocation != nil {
		a := m.allocation
		b.WriteString(fmt.Sprintf("  Emergency fund  %s\n", tuistyles.FormatCurrency(a.Emergency)))
		b.WriteString(fmt.Sprintf("  Safe            %s\n", tuistyles.FormatCurrency(a.Safe)))
		b.WriteString(fmt.Sprintf("  Growth          %s\n", tuistyles.FormatCurrency(a.Growth)))
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.HelpDescStyle.Render("a enter amount • tab/shift+tab change strategy"))
	return b.String()
}
