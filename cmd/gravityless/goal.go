package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/goal"
	"github.com/rgehrsitz/gravityless/internal/output"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Savings goal calculators",
	Long: `Work out the monthly contribution a goal needs, or how long a given
contribution takes to reach a target. Contributions compound monthly at
the expected annual return.`,
}

var goalSIPCmd = &cobra.Command{
	Use:   "sip",
	Short: "Monthly contribution needed to reach a target",
	Long: `Solve the monthly contribution that grows the current corpus to the
target within the given months (or by the given date).

Examples:
  gravityless goal sip --target 1000000 --months 60
  gravityless goal sip --target 2500000 --current 300000 --by 2030-04-01 --rate 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := decimalFlag(cmd, "target")
		if err != nil {
			return err
		}
		current, err := decimalFlag(cmd, "current")
		if err != nil {
			return err
		}
		rate, err := decimalFlag(cmd, "rate")
		if err != nil {
			return err
		}

		months, _ := cmd.Flags().GetInt("months")
		if by, _ := cmd.Flags().GetString("by"); by != "" {
			targetDate, err := time.Parse(dateLayout, by)
			if err != nil {
				return fmt.Errorf("invalid --by %q: expected YYYY-MM-DD", by)
			}
			now, err := resolveNow(cmd, nil)
			if err != nil {
				return err
			}
			months = goal.MonthsUntil(now, targetDate)
		}
		if months <= 0 {
			return fmt.Errorf("the target must be at least one month away (use --months or --by)")
		}

		monthly := goal.RequiredMonthlyContribution(target, current, months, rate)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Target:             %s\n", output.FormatCurrency(target))
		fmt.Fprintf(out, "Already saved:      %s\n", output.FormatCurrency(current))
		fmt.Fprintf(out, "Months:             %d\n", months)
		fmt.Fprintf(out, "Expected return:    %s\n", output.FormatPercentage(rate))
		fmt.Fprintf(out, "Monthly investment: %s\n", output.FormatCurrency(monthly))
		return nil
	},
}

var goalTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Months a monthly contribution takes to reach a target",
	Long: `Compound the current corpus and add the monthly contribution until it
reaches the target, up to 50 years.

Examples:
  gravityless goal time --monthly 15000 --target 1000000
  gravityless goal time --current 200000 --monthly 10000 --target 5000000 --rate 11`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := decimalFlag(cmd, "target")
		if err != nil {
			return err
		}
		current, err := decimalFlag(cmd, "current")
		if err != nil {
			return err
		}
		monthly, err := signedDecimalFlag(cmd, "monthly")
		if err != nil {
			return err
		}
		rate, err := signedDecimalFlag(cmd, "rate")
		if err != nil {
			return err
		}

		proj := goal.TimeToTarget(current, monthly, target, rate)
		out := cmd.OutOrStdout()
		if !proj.Reachable {
			fmt.Fprintf(out, "Target not reached within %d years; corpus after %d months: %s\n",
				goal.MaxMonths/12, proj.Months, output.FormatCurrency(proj.FinalCorpus))
			return nil
		}
		fmt.Fprintf(out, "Months to target: %d (%s years)\n", proj.Months, proj.Years().StringFixed(1))
		fmt.Fprintf(out, "Final corpus:     %s\n", output.FormatCurrency(proj.FinalCorpus))
		return nil
	},
}

var goalRateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Annual return a monthly contribution needs to reach a target",
	Long: `Find the lowest expected annual return at which the monthly contribution
reaches the target in the given months. Returns above 50% are not considered.

Examples:
  gravityless goal rate --target 1000000 --monthly 12000 --months 60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := decimalFlag(cmd, "target")
		if err != nil {
			return err
		}
		current, err := decimalFlag(cmd, "current")
		if err != nil {
			return err
		}
		monthly, err := decimalFlag(cmd, "monthly")
		if err != nil {
			return err
		}
		months, _ := cmd.Flags().GetInt("months")

		sol, err := goal.RequiredReturn(target, current, monthly, months)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !sol.Reachable {
			fmt.Fprintf(out, "Not reachable even at %s a year; invest more or extend the deadline.\n", output.FormatPercentage(sol.AnnualReturn))
			return nil
		}
		fmt.Fprintf(out, "Required annual return: %s\n", output.FormatPercentage(sol.AnnualReturn))
		return nil
	},
}

var goalPlanCmd = &cobra.Command{
	Use:   "plan [input-file]",
	Short: "Evaluate the goals listed in a portfolio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		plans := goal.EvaluateAll(p.cfg.Goals, p.now)
		if len(plans) == 0 {
			fmt.Fprintln(out, "No goals defined.")
			return nil
		}
		fmt.Fprintf(out, "%-20s %14s %14s %10s %8s %14s\n", "Goal", "Target", "Saved", "Due", "Months", "Per month")
		fmt.Fprintln(out, strings.Repeat("-", 86))
		for _, plan := range plans {
			fmt.Fprintf(out, "%-20s %14s %14s %10s %8d %14s\n",
				truncate(plan.Name, 20), output.FormatCurrency(plan.Target), output.FormatCurrency(plan.Current),
				plan.TargetDate.Format("2006-01"), plan.MonthsLeft, output.FormatCurrency(plan.RequiredMonthly))
		}
		return nil
	},
}

// signedDecimalFlag parses a decimal flag; an empty value is zero
func signedDecimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	d, err := signedDecimalFlag(cmd, name)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must not be negative", name)
	}
	return d, nil
}

func initGoalCommands() {
	defaultRate := goal.DefaultAnnualReturn.String()

	goalSIPCmd.Flags().String("target", "", "Target corpus")
	goalSIPCmd.Flags().String("current", "0", "Amount already saved")
	goalSIPCmd.Flags().Int("months", 0, "Months until the target date")
	goalSIPCmd.Flags().String("by", "", "Target date (YYYY-MM-DD), overrides --months")
	goalSIPCmd.Flags().String("rate", defaultRate, "Expected annual return in percent")
	_ = goalSIPCmd.MarkFlagRequired("target")

	goalTimeCmd.Flags().String("target", "", "Target corpus")
	goalTimeCmd.Flags().String("current", "0", "Amount already saved")
	goalTimeCmd.Flags().String("monthly", "0", "Monthly contribution, negative for withdrawals")
	goalTimeCmd.Flags().String("rate", defaultRate, "Expected annual return in percent")
	_ = goalTimeCmd.MarkFlagRequired("target")

	goalRateCmd.Flags().String("target", "", "Target corpus")
	goalRateCmd.Flags().String("current", "0", "Amount already saved")
	goalRateCmd.Flags().String("monthly", "0", "Monthly contribution")
	goalRateCmd.Flags().Int("months", 0, "Months until the target date")
	_ = goalRateCmd.MarkFlagRequired("target")

	goalCmd.AddCommand(goalSIPCmd)
	goalCmd.AddCommand(goalRateCmd)
	goalCmd.AddCommand(goalTimeCmd)
	goalCmd.AddCommand(goalPlanCmd)
	rootCmd.AddCommand(goalCmd)
}
