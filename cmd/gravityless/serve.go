package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gravityless/internal/api"
	"github.com/rgehrsitz/gravityless/internal/calculation"
	"github.com/rgehrsitz/gravityless/internal/config"
	"github.com/rgehrsitz/gravityless/internal/optimize"
	"github.com/rgehrsitz/gravityless/internal/reminder"
	"github.com/rgehrsitz/gravityless/internal/service"
	"github.com/rgehrsitz/gravityless/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the payout reminder job",
	Long: `Run the JSON API backed by SQLite or PostgreSQL, plus the scheduled
reminder digest. Settings come from the environment or a .env file:

  SERVER_HOST, SERVER_PORT       listen address (default localhost:5001)
  DB_DRIVER, DB_DSN              sqlite (default) or postgres
  JWT_SECRET                     HS256 secret for bearer tokens (required)
  CORS_ALLOWED_ORIGINS           comma-separated origins
  REMINDER_SCHEDULE              cron spec, empty disables reminders
  REMINDER_WINDOW_DAYS           default look-ahead of the digest
  SMTP_HOST, SMTP_PORT, ...      mail relay; without it digests are logged
  LOG_LEVEL                      debug, info, warn or error`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		logger := config.NewLogger(cfg.LogLevel, os.Stderr)

		ctx := context.Background()
		if err := ensureSQLiteDir(cfg.Database); err != nil {
			return err
		}
		db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.WithField("driver", db.Driver()).Info("Connected to database")

		// Create repositories
		incomes := store.NewIncomeRepository(db)
		expenses := store.NewExpenseRepository(db)
		notifications := store.NewNotificationRepository(db)

		engine := calculation.NewEngine()
		engine.SetLogger(logger)
		dashboard := service.NewDashboardService(engine, incomes, expenses, service.DefaultOptions(), logger)

		router := api.NewRouter(api.Dependencies{
			Store:         db,
			Incomes:       incomes,
			Expenses:      expenses,
			Notifications: notifications,
			Dashboard:     dashboard,
			Engine:        engine,
			Scorer:        optimize.NewScorer(),
			Clock:         time.Now,
			Version:       version,
		}, cfg, logger)

		job := reminder.NewJob(notifications, incomes, reminder.NewNotifier(cfg.SMTP, logger), cfg.Reminder.WindowDays, logger)
		scheduler, err := reminder.NewScheduler(job, cfg.Reminder, logger)
		if err != nil {
			return err
		}
		scheduler.Start()

		server := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			logger.Infof("Starting server on %s", cfg.Server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		// Wait for interrupt signal for graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-serverErr:
			scheduler.Stop(ctx)
			return fmt.Errorf("server failed to start: %w", err)
		case <-quit:
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		scheduler.Stop(shutdownCtx)
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("Server exited")
		return nil
	},
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite database
func ensureSQLiteDir(db config.DatabaseConfig) error {
	if db.Driver != store.DriverSQLite || strings.HasPrefix(db.DSN, "file:") || strings.Contains(db.DSN, ":memory:") {
		return nil
	}
	dir := filepath.Dir(db.DSN)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

func initServeCommand() {
	serveCmd.Flags().String("addr", "", "Listen address, overrides SERVER_HOST and SERVER_PORT")
	rootCmd.AddCommand(serveCmd)
}
