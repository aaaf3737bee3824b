package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/tui/components"
	"github.com/rgehrsitz/gravityless/internal/tui/tuimsg"
	"github.com/rgehrsitz/gravityless/internal/tui/tuistyles"
)

// OverviewModel is the dashboard: headline totals, budget, goals and the crossover chart
type OverviewModel struct {
	snapshot  *tuimsg.Snapshot
	showChart bool
	width     int
	height    int
}

// NewOverviewModel creates a new overview scene model
func NewOverviewModel() *OverviewModel {
	return &OverviewModel{showChart: true}
}

// SetSnapshot replaces the rendered portfolio
func (m *OverviewModel) SetSnapshot(s *tuimsg.Snapshot) {
	m.snapshot = s
}

// SetSize updates the scene dimensions
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the overview scene
func (m *OverviewModel) Update(msg tea.Msg) (*OverviewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "g" {
		m.showChart = !m.showChart
	}
	return m, nil
}

// View renders the overview scene
func (m *OverviewModel) View() string {
	if m.snapshot == nil {
		return tuistyles.BorderStyle.Render("Loading portfolio...")
	}
	s := m.snapshot

	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(fmt.Sprintf("Portfolio as of %s", s.Now.Format("2006-01-02"))))
	content.WriteString("\n\n")

	columns := 3
	if m.width > 0 && m.width < 90 {
		columns = 2
	}
	content.WriteString(components.MetricGrid(components.TotalsCards(s.Totals), columns))
	content.WriteString("\n\n")

	content.WriteString(m.renderBudget())
	content.WriteString("\n")

	if len(s.Goals) > 0 {
		content.WriteString(m.renderGoals())
		content.WriteString("\n")
	}

	if m.showChart && len(s.Crossover.Points) > 0 {
		chartWidth := 70
		if m.width > 0 && m.width-6 < chartWidth {
			chartWidth = max(30, m.width-6)
		}
		content.WriteString("\n")
		content.WriteString(components.NewCrossoverChart(s.Crossover).WithSize(chartWidth, 12).Render())
		if s.Crossover.UsedExpenseFallback {
			content.WriteString("\n")
			content.WriteString(tuistyles.HelpDescStyle.Render("No expenses recorded: expense line is a share of active income."))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("g toggle chart"))
	return content.String()
}

func (m *OverviewModel) renderBudget() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(tuistyles.TableHeaderStyle.Render("This month (50/30/20)"))
	b.WriteString("\n")
	for _, line := range s.Budget.Lines {
		b.WriteString(components.NewBudgetBar(line).Render())
		b.WriteString("\n")
	}

	dtiStyle := tuistyles.MetricPositiveStyle
	switch s.DTIClass {
	case calculation.DTIGood:
		dtiStyle = tuistyles.WarningStyle
	case calculation.DTICritical:
		dtiStyle = tuistyles.MetricNegativeStyle
	}
	b.WriteString(fmt.Sprintf("%s %s %s",
		tuistyles.MetricLabelStyle.Render("Debt-to-income:"),
		tuistyles.MetricValueStyle.Render(tuistyles.FormatPercent(s.DTI.Round(2))),
		dtiStyle.Render("("+string(s.DTIClass)+")")))
	b.WriteString("\n")
	return b.String()
}

func (m *OverviewModel) renderGoals() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render("Goals"))
	b.WriteString("\n")
	for _, plan := range m.snapshot.Goals {
		b.WriteString(components.NewGoalBar(plan).Render())
		if plan.RequiredMonthly.IsPositive() {
			b.WriteString(tuistyles.HelpDescStyle.Render(fmt.Sprintf("  save %s/month for %d months",
				tuistyles.FormatCurrency(plan.RequiredMonthly), plan.MonthsLeft)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
