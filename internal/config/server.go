package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds everything the API server and reminder job need
type ServerConfig struct {
	Server   HTTPConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Reminder ReminderConfig
	SMTP     SMTPConfig
	LogLevel string
}

// HTTPConfig holds server-specific configuration
type HTTPConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig selects the store driver. Driver is "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds the shared secret used to verify bearer tokens
type AuthConfig struct {
	JWTSecret string
}

// ReminderConfig controls the upcoming-payout digest job
type ReminderConfig struct {
	Schedule   string // cron spec, empty disables the job
	WindowDays int
	Timeout    time.Duration
}

// SMTPConfig is used by the email notifier. An empty Host means reminders are only logged.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP relay is configured
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// LoadServerConfig reads configuration from environment variables and a .env file
func LoadServerConfig() (*ServerConfig, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()
	return serverConfigFromEnv()
}

func serverConfigFromEnv() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Server: HTTPConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "./data/gravityless.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Reminder: ReminderConfig{
			Schedule: getEnv("REMINDER_SCHEDULE", "0 8 * * *"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "reminders@gravityless.local"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Combine host and port
	cfg.Server.Addr = fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	window, err := strconv.Atoi(getEnv("REMINDER_WINDOW_DAYS", "7"))
	if err != nil || window < 0 {
		return nil, fmt.Errorf("REMINDER_WINDOW_DAYS must be a non-negative integer")
	}
	cfg.Reminder.WindowDays = window

	timeout, err := time.ParseDuration(getEnv("REMINDER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("REMINDER_TIMEOUT: %w", err)
	}
	cfg.Reminder.Timeout = timeout

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
