package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/output"
	"github.com/rgehrsitz/gravityless/internal/service"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [input-file]",
	Short: "Compute per-source metrics and portfolio totals",
	Long: `Compute invested, current and net value, CAGR, monthly income and
tax withheld for every source, plus the portfolio totals.

Examples:
  gravityless metrics portfolio.yaml
  gravityless metrics portfolio.yaml --format json
  gravityless metrics portfolio.yaml --format html --save
  gravityless metrics portfolio.yaml --as-of 2025-03-31 --format detailed-csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}
		report, _, err := buildReport(cmd.Context(), p)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			path, err := output.WriteFormatted(f, report, extensionFor(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [input-file]",
	Short: "Show portfolio totals, debt-to-income and the freedom year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}
		report, dash, err := buildReport(cmd.Context(), p)
		if err != nil {
			return err
		}

		data, err := output.GetFormatterByName("console-lite").Format(report)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := out.Write(data); err != nil {
			return err
		}

		fmt.Fprintf(out, "Debt-to-income:          %s (%s)\n", output.FormatPercentage(dash.DebtToIncome.Round(2)), dash.DTIClass)
		if dash.Crossover.FreedomYear >= 0 {
			fmt.Fprintf(out, "Financial freedom:       year %d\n", dash.Crossover.FreedomYear)
		} else {
			fmt.Fprintf(out, "Financial freedom:       not within %d years\n", len(dash.Crossover.Points)-1)
		}
		return nil
	},
}

// buildReport composes the dashboard of a loaded portfolio and wraps it for the formatters
func buildReport(ctx context.Context, p *portfolio) (*output.Report, service.Dashboard, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := service.DefaultOptions()
	if p.cfg.Assumptions.EventWindowDays > 0 {
		opts.EventWindowDays = p.cfg.Assumptions.EventWindowDays
	}
	if p.cfg.Assumptions.Crossover != nil {
		opts.Crossover = *p.cfg.Assumptions.Crossover
	}

	svc := service.NewDashboardService(p.engine, nil, nil, opts, nil)
	dash, err := svc.Compose(ctx, p.cfg.Sources, p.cfg.Expenses, p.now)
	if err != nil {
		return nil, service.Dashboard{}, err
	}

	scorer := optimize.NewScorerWithThresholds(optimize.ThresholdsFromConfig(p.cfg.Assumptions.Optimization))
	title := "Portfolio Report"
	if p.cfg.Owner != "" {
		title = fmt.Sprintf("Portfolio Report: %s", p.cfg.Owner)
	}

	return &output.Report{
		Title:    title,
		AsOf:     p.now,
		Sources:  dash.Sources,
		Totals:   dash.Totals,
		Events:   dash.Events,
		Warnings: optimize.Suggest(scorer.ScoreAll(p.cfg.Sources)).Warnings,
	}, dash, nil
}

func extensionFor(format string) string {
	switch format {
	case "json", "html", "xml":
		return format
	case "csv", "detailed-csv":
		return "csv"
	default:
		return "txt"
	}
}

func initReportCommands() {
	metricsCmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	metricsCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(summaryCmd)
}
