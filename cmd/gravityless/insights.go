package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/output"
)

var eventsCmd = &cobra.Command{
	Use:   "events [input-file]",
	Short: "List payouts and maturities due soon",
	Long: `List next payouts, scheduled payouts and maturities that fall within the
look-ahead window, soonest first.

Examples:
  gravityless events portfolio.yaml
  gravityless events portfolio.yaml --window 90 --top 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}

		window, _ := cmd.Flags().GetInt("window")
		if window <= 0 {
			window = p.cfg.Assumptions.EventWindowDays
		}
		if window <= 0 {
			window = events.DefaultWindowDays
		}
		list := events.Extract(p.cfg.Sources, p.now, window)
		if top, _ := cmd.Flags().GetInt("top"); top > 0 {
			list = events.Top(list, top)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "UPCOMING EVENTS (next %d days from %s)\n", window, p.now.Format(dateLayout))
		fmt.Fprintln(out, strings.Repeat("=", 60))
		if len(list) == 0 {
			fmt.Fprintln(out, "Nothing due.")
			return nil
		}
		for _, ev := range list {
			fmt.Fprintf(out, "%-10s  %-9s  %-30s %14s  (in %d days)\n",
				ev.Date.Format(dateLayout), ev.Type, ev.Title, output.FormatCurrency(ev.Amount), ev.DaysUntil)
		}
		return nil
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [input-file]",
	Short: "Rank income sources by efficiency and flag time leaks and risk bombs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}

		scorer := optimize.NewScorerWithThresholds(optimize.ThresholdsFromConfig(p.cfg.Assumptions.Optimization))
		scores := scorer.ScoreAll(p.cfg.Sources)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "INCOME EFFICIENCY")
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintf(out, "%-24s %12s %8s %6s %10s  %s\n", "Source", "ROI/hr", "Hrs/wk", "Risk", "Score", "Flags")
		for _, s := range optimize.RankByEfficiency(scores) {
			var flags []string
			if s.TimeLeak {
				flags = append(flags, "time leak")
			}
			if s.RiskBomb {
				flags = append(flags, "risk bomb")
			}
			fmt.Fprintf(out, "%-24s %12s %8s %6d %10s  %s\n",
				truncate(s.Name, 24), output.FormatCurrency(s.ROIPerHour), s.WeeklyHours.StringFixed(1),
				s.RiskFactor, s.EfficiencyScore.StringFixed(1), strings.Join(flags, ", "))
		}

		suggestion := optimize.Suggest(scores)
		fmt.Fprintln(out)
		if len(suggestion.Warnings) == 0 {
			fmt.Fprintln(out, "No time leaks or risk bombs.")
		}
		for _, w := range suggestion.Warnings {
			fmt.Fprintf(out, "• %s\n", w)
		}
		fmt.Fprintf(out, "\n%s\n", suggestion.Theory)
		return nil
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Split a surplus amount across emergency, safe and growth buckets",
	Long: `Split a surplus amount using one of the preset strategies:
emergency_first (50/30/20), max_return (10/10/80) or safe_play (30/60/10).

Examples:
  gravityless allocate --amount 100000
  gravityless allocate --amount 250000 --strategy max_return`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid --amount %q: %w", amountStr, err)
		}
		if amount.IsNegative() {
			return fmt.Errorf("--amount must not be negative")
		}

		key, _ := cmd.Flags().GetString("strategy")
		strategies := optimize.AllStrategies()
		if key != "" && key != "all" {
			if !isStrategyKey(key) {
				return fmt.Errorf("unknown strategy %q (available: %s, all)", key, strings.Join(optimize.AllocationStrategyKeys, ", "))
			}
			strategies = []optimize.AllocationStrategy{optimize.CreateAllocationStrategy(key)}
		}

		out := cmd.OutOrStdout()
		for i, s := range strategies {
			if i > 0 {
				fmt.Fprintln(out)
			}
			a := s.Allocate(amount)
			split := s.Split()
			fmt.Fprintf(out, "%s (%s)\n", s.Name(), s.Key())
			fmt.Fprintln(out, strings.Repeat("-", 40))
			fmt.Fprintf(out, "  Emergency %3d%%  %14s\n", split.Emergency, output.FormatCurrency(a.Emergency))
			fmt.Fprintf(out, "  Safe      %3d%%  %14s\n", split.Safe, output.FormatCurrency(a.Safe))
			fmt.Fprintf(out, "  Growth    %3d%%  %14s\n", split.Growth, output.FormatCurrency(a.Growth))
			fmt.Fprintf(out, "  %s\n", s.Description())
		}
		return nil
	},
}

var budgetCmd = &cobra.Command{
	Use:   "budget [input-file]",
	Short: "Compare this month's spending with the 50/30/20 rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}
		_, dash, err := buildReport(cmd.Context(), p)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "BUDGET FOR %s\n", strings.ToUpper(p.now.Format("January 2006")))
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintf(out, "Monthly income: %s\n\n", output.FormatCurrency(dash.Budget.Income))
		fmt.Fprintf(out, "%-10s %14s %14s %8s\n", "Bucket", "Target", "Actual", "Used")
		for _, line := range dash.Budget.Lines {
			marker := ""
			if line.Over {
				marker = "  over"
			}
			fmt.Fprintf(out, "%-10s %14s %14s %7s%%%s\n", line.Category,
				output.FormatCurrency(line.Target), output.FormatCurrency(line.Actual), line.UsedPercent.StringFixed(1), marker)
		}
		if dash.Budget.Debt.IsPositive() {
			fmt.Fprintf(out, "%-10s %14s %14s\n", domain.ExpenseDebt, "", output.FormatCurrency(dash.Budget.Debt))
		}
		if dash.Budget.Other.IsPositive() {
			fmt.Fprintf(out, "%-10s %14s %14s\n", domain.ExpenseOther, "", output.FormatCurrency(dash.Budget.Other))
		}

		fmt.Fprintf(out, "\nDebt-to-income: %s (%s)\n", output.FormatPercentage(dash.DebtToIncome.Round(2)), dash.DTIClass)
		return nil
	},
}

var crossoverCmd = &cobra.Command{
	Use:   "crossover [input-file]",
	Short: "Project when passive income covers expenses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}
		if years, _ := cmd.Flags().GetInt("years"); years > 0 {
			a := domain.DefaultCrossoverAssumptions()
			if p.cfg.Assumptions.Crossover != nil {
				a = *p.cfg.Assumptions.Crossover
			}
			a.Years = years
			p.cfg.Assumptions.Crossover = &a
		}

		_, dash, err := buildReport(cmd.Context(), p)
		if err != nil {
			return err
		}
		writeCrossover(cmd, dash.Crossover)
		return nil
	},
}

func writeCrossover(cmd *cobra.Command, proj calculation.CrossoverProjection) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "PASSIVE INCOME CROSSOVER (monthly)")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "%-5s %16s %16s %16s\n", "Year", "Passive", "Active", "Expense")
	for _, pt := range proj.Points {
		fmt.Fprintf(out, "%-5s %16s %16s %16s\n", pt.Label,
			output.FormatCurrency(pt.Passive), output.FormatCurrency(pt.Active), output.FormatCurrency(pt.Expense))
	}
	fmt.Fprintln(out)

	horizon := len(proj.Points) - 1
	if proj.FreedomYear >= 0 {
		fmt.Fprintf(out, "Passive income covers expenses in year %d.\n", proj.FreedomYear)
	} else {
		fmt.Fprintf(out, "Passive income does not cover expenses within %d years.\n", horizon)
	}
	if proj.PassiveOverActiveYr >= 0 {
		fmt.Fprintf(out, "Passive income overtakes active income in year %d.\n", proj.PassiveOverActiveYr)
	}
	if proj.UsedExpenseFallback {
		fmt.Fprintln(out, "No expenses recorded this month; a share of active income was used instead.")
	}
}

func isStrategyKey(key string) bool {
	for _, k := range optimize.AllocationStrategyKeys {
		if k == key {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func initInsightCommands() {
	eventsCmd.Flags().Int("window", 0, "Look-ahead window in days (default: the file's event_window_days, else 60)")
	eventsCmd.Flags().Int("top", 0, "Show only the first N events (0 shows all)")

	allocateCmd.Flags().String("amount", "", "Surplus amount to allocate")
	allocateCmd.Flags().String("strategy", "all", "Strategy key ("+strings.Join(optimize.AllocationStrategyKeys, ", ")+") or all")
	_ = allocateCmd.MarkFlagRequired("amount")

	crossoverCmd.Flags().Int("years", 0, "Projection horizon in years (default: the file's crossover.years, else 20)")

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(crossoverCmd)
}
