package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/demo"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/output"
)

var demoCmd = &cobra.Command{
	Use:   "demo [output-file]",
	Short: "Show the sample portfolio, or write it out as a starting file",
	Long: `Without arguments, print the report of the built-in sample portfolio.
With a file name, write the sample portfolio as YAML so it can be edited
and fed back to the other commands.

Examples:
  gravityless demo
  gravityless demo my-portfolio.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := resolveNow(cmd, nil)
		if err != nil {
			return err
		}
		cfg := &domain.Configuration{
			Owner:    "demo",
			Sources:  demo.Sources(),
			Expenses: demo.Expenses(now),
		}

		if len(args) == 1 {
			if err := output.SaveConfiguration(cfg, args[0]); err != nil {
				return fmt.Errorf("failed to write demo portfolio: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Demo portfolio written to %s\n", args[0])
			return nil
		}

		p := &portfolio{cfg: cfg, now: now, engine: newEngine(cmd, cfg)}
		report, _, err := buildReport(cmd.Context(), p)
		if err != nil {
			return err
		}
		report.Title = "Demo Portfolio"
		data, err := output.GetFormatterByName("console").Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func initDemoCommand() {
	rootCmd.AddCommand(demoCmd)
}
