package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/gravityless/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the base portfolio with its variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PORTFOLIO WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Monthly",
		numWidth, "Passive",
		numWidth, "Net Worth",
		numWidth, "Savings Rate",
		numWidth, "Freedom"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", alt.Description))
			}
			sb.WriteString(":\n")

			sb.WriteString(fmt.Sprintf("  Monthly Income:   %s%s (%s%%)\n",
				tf.deltaSymbol(alt.MonthlyDiffFromBase),
				output.FormatCurrency(alt.MonthlyDiffFromBase.Abs()),
				alt.MonthlyPctFromBase.StringFixed(1)))

			if !alt.NetWorthDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Net Worth:        %s%s\n",
					tf.deltaSymbol(alt.NetWorthDiffFromBase),
					output.FormatCurrency(alt.NetWorthDiffFromBase.Abs())))
			}

			if !alt.SavingsRateDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Savings Rate:     %s%s pts\n",
					tf.deltaSymbol(alt.SavingsRateDiff),
					alt.SavingsRateDiff.Abs().StringFixed(1)))
			}

			if alt.FreedomYearDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Freedom Year:     %+d years\n", alt.FreedomYearDiff))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	freedom := "never"
	if result.FreedomYear >= 0 {
		freedom = fmt.Sprintf("year %d", result.FreedomYear)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, formatRupees(result.TotalMonthly),
		numWidth, formatRupees(result.PassiveMonthly),
		numWidth, formatRupees(result.NetWorth),
		numWidth, result.SavingsRate.StringFixed(1)+"%",
		numWidth, freedom)
}

// formatRupees abbreviates large amounts in lakh and crore
func formatRupees(d decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	switch {
	case d.Abs().GreaterThanOrEqual(crore):
		return "₹" + d.Div(crore).StringFixed(2) + "Cr"
	case d.Abs().GreaterThanOrEqual(lakh):
		return "₹" + d.Div(lakh).StringFixed(2) + "L"
	default:
		return output.FormatCurrency(d)
	}
}

// deltaSymbol returns "+" for gains and "-" for losses
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.MonthlyDiffFromBase.IsPositive() {
			change = "+" + formatRupees(alt.MonthlyDiffFromBase)
		} else if alt.MonthlyDiffFromBase.IsNegative() {
			change = "-" + formatRupees(alt.MonthlyDiffFromBase.Abs())
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
