package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/compare"
	"github.com/rgehrsitz/gravityless/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the portfolio against what-if templates and transforms",
	Long: `Compare the portfolio as it stands against modified copies of it.

Each template named in --with and each --transform becomes its own
alternative, evaluated at the same date as the base.

Examples:
  gravityless compare portfolio.yaml --with bear_market,lifestyle_creep
  gravityless compare portfolio.yaml --transform "adjust_growth:source=Bank FD,delta=-1.5"
  gravityless compare portfolio.yaml --with stagflation --format csv
  gravityless compare --list-templates  # Show all available templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
		}
		inputFile := args[0]

		baseName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		outputFormat, _ := cmd.Flags().GetString("format")

		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 && len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required (or use --list-templates)")
		}

		p, err := loadPortfolio(cmd, inputFile)
		if err != nil {
			return err
		}
		p.cfg.AsOf = &p.now

		comparisonSet, err := compare.NewCompareEngine(p.engine).Compare(cmd.Context(), p.cfg, compare.CompareOptions{
			BaseName:   baseName,
			Templates:  templateNames,
			Transforms: transforms,
			Now:        p.now,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		comparisonSet.ConfigPath = inputFile

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, output)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, output)

		case "compact":
			formatter := &compare.TableFormatter{}
			fmt.Fprintln(out, formatter.FormatCompact(comparisonSet))

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(out, formatter.Format(comparisonSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

func initCompareCommand() {
	compareCmd.Flags().String("base", "base", "Name shown for the unmodified portfolio")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available what-if templates")

	rootCmd.AddCommand(compareCmd)
}
