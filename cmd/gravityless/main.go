package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/rgehrsitz/gravityless/internal/domain"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const dateLayout = "2006-01-02"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gravityless %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "gravityless",
	Short: "Personal finance metrics CLI",
	Long: `Track income sources, expenses and goals from a YAML portfolio file.

Computes per-source value, yield and monthly cash flow, portfolio totals,
upcoming payouts, efficiency warnings and savings goal projections, and
serves the same views over HTTP with the serve command.`,
	SilenceUsage: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a portfolio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Portfolio file %s is valid (%d sources, %d expenses, %d goals)\n",
			args[0], len(cfg.Sources), len(cfg.Expenses), len(cfg.Goals))
		return nil
	},
}

// portfolio is a loaded file plus the instant and engine every command evaluates it with
type portfolio struct {
	cfg    *domain.Configuration
	now    time.Time
	engine *calculation.Engine
}

// loadPortfolio parses the file and resolves now from --as-of, then the file's as_of, then the clock
func loadPortfolio(cmd *cobra.Command, path string) (*portfolio, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	now, err := resolveNow(cmd, cfg)
	if err != nil {
		return nil, err
	}

	return &portfolio{cfg: cfg, now: now, engine: newEngine(cmd, cfg)}, nil
}

func resolveNow(cmd *cobra.Command, cfg *domain.Configuration) (time.Time, error) {
	asOf, _ := cmd.Flags().GetString("as-of")
	if asOf != "" {
		t, err := time.Parse(dateLayout, asOf)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", asOf)
		}
		return t, nil
	}
	if cfg == nil {
		return time.Now(), nil
	}
	return cfg.Now(time.Now()), nil
}

func newEngine(cmd *cobra.Command, cfg *domain.Configuration) *calculation.Engine {
	engine := calculation.NewEngine()
	if cfg != nil && cfg.Assumptions.FiscalYearStart != nil {
		engine = calculation.NewEngineWithConfig(*cfg.Assumptions.FiscalYearStart)
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func init() {
	rootCmd.PersistentFlags().String("as-of", "", "Evaluate the portfolio at this date (YYYY-MM-DD) instead of today")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())

	initReportCommands()
	initInsightCommands()
	initGoalCommands()
	initCompareCommand()
	initDemoCommand()
	initServeCommand()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
