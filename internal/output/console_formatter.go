package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

// ConsoleFormatter prints the headline totals only
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PORTFOLIO SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	fmt.Fprintf(&buf, "As of: %s\n", report.AsOf.Format("2006-01-02"))
	writeTotals(&buf, report)
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter prints totals, a per-source table, upcoming events and warnings
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := report.Title
	if title == "" {
		title = "PORTFOLIO METRICS REPORT"
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, strings.ToUpper(title))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "As of: %s\n\n", report.AsOf.Format("2006-01-02"))

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TOTALS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	writeTotals(&buf, report)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME SOURCES")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if len(report.Sources) == 0 {
		fmt.Fprintln(&buf, "No income sources.")
	} else {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Name\tType\tInvested\tCurrent\tNet\tCAGR\tMonthly\tTDS (FY)\t")
		for _, sm := range report.Sources {
			m := sm.Metrics
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				sm.Source.Name, m.Type,
				FormatCurrency(m.Invested), FormatCurrency(m.Current), FormatCurrency(m.Net),
				FormatPercentage(m.CAGR), FormatCurrency(m.Monthly), FormatCurrency(m.TDSCurrentFY))
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "UPCOMING EVENTS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if len(report.Events) == 0 {
		fmt.Fprintln(&buf, "Nothing due.")
	}
	for _, e := range report.Events {
		fmt.Fprintf(&buf, "%s  %-40s %12s  in %d days\n", e.Date.Format("2006-01-02"), e.Title, FormatCurrency(e.Amount), e.DaysUntil)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, w := range report.Warnings {
			fmt.Fprintf(&buf, "⚠️  %s\n", w)
		}
	}
	return buf.Bytes(), nil
}

func writeTotals(buf *bytes.Buffer, report *Report) {
	t := report.Totals
	fmt.Fprintf(buf, "Monthly Income:     %s\n", FormatCurrency(t.TotalMonthly))
	fmt.Fprintf(buf, "Passive Share:      %s\n", FormatPercentage(t.PassivePercent))
	fmt.Fprintf(buf, "Total Invested:     %s\n", FormatCurrency(t.TotalInvested))
	fmt.Fprintf(buf, "Current Value:      %s\n", FormatCurrency(t.TotalCurrentValue))
	fmt.Fprintf(buf, "Net Value:          %s\n", FormatCurrency(t.TotalNetValue))
	fmt.Fprintf(buf, "Weighted CAGR:      %s\n", FormatPercentage(t.WeightedCAGR))
	fmt.Fprintf(buf, "Liquid / Locked:    %s / %s\n", FormatCurrency(t.LiquidAssets), FormatCurrency(t.LockedAssets))
	fmt.Fprintf(buf, "Monthly Expenses:   %s\n", FormatCurrency(t.TotalMonthlyExpense))
	fmt.Fprintf(buf, "Net Worth:          %s\n", FormatCurrency(t.NetWorth))
	fmt.Fprintf(buf, "Savings Rate:       %s\n", FormatPercentage(t.SavingsRate))
	fmt.Fprintf(buf, "Freedom Ratio:      %s\n", FormatPercentage(t.FreedomRatio))
}
