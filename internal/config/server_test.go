package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := serverConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "localhost:5001", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 7, cfg.Reminder.WindowDays)
	assert.Equal(t, 30*time.Second, cfg.Reminder.Timeout)
	assert.Equal(t, "0 8 * * *", cfg.Reminder.Schedule)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestServerConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://u:p@db/gravityless?sslmode=disable")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example,")
	t.Setenv("REMINDER_WINDOW_DAYS", "14")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := serverConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 14, cfg.Reminder.WindowDays)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestServerConfigFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET is required"},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"bad window", map[string]string{"JWT_SECRET": "s", "REMINDER_WINDOW_DAYS": "soon"}, "REMINDER_WINDOW_DAYS"},
		{"bad timeout", map[string]string{"JWT_SECRET": "s", "REMINDER_TIMEOUT": "forever"}, "REMINDER_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := serverConfigFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debugf("hello %s", "world")
	assert.Contains(t, buf.String(), `"msg":"hello world"`)

	assert.Equal(t, logrus.InfoLevel, NewLogger("loud", nil).GetLevel())
}
