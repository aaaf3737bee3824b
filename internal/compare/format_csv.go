package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Monthly Income",
		"Passive Monthly",
		"Net Worth",
		"Savings Rate",
		"Freedom Ratio",
		"Debt To Income",
		"Freedom Year",
		"Monthly Diff from Base",
		"Monthly % Change",
		"Net Worth Diff from Base",
		"Savings Rate Diff",
		"Freedom Year Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalMonthly.StringFixed(2),
		result.PassiveMonthly.StringFixed(2),
		result.NetWorth.StringFixed(2),
		result.SavingsRate.StringFixed(2),
		result.FreedomRatio.StringFixed(2),
		result.DebtToIncome.StringFixed(2),
		strconv.Itoa(result.FreedomYear),
		result.MonthlyDiffFromBase.StringFixed(2),
		result.MonthlyPctFromBase.StringFixed(2),
		result.NetWorthDiffFromBase.StringFixed(2),
		result.SavingsRateDiff.StringFixed(2),
		strconv.Itoa(result.FreedomYearDiff),
	}
}
