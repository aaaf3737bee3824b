package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, time.April, engine.FiscalYear.Month)
	assert.Equal(t, 1, engine.FiscalYear.Day)
}

func TestNewEngineWithConfig_NormalisesBadValues(t *testing.T) {
	engine := NewEngineWithConfig(domain.FiscalYearStart{Month: 13, Day: 0})
	assert.Equal(t, time.April, engine.FiscalYear.Month)
	assert.Equal(t, 1, engine.FiscalYear.Day)

	engine = NewEngineWithConfig(domain.FiscalYearStart{Month: time.July, Day: 1})
	assert.Equal(t, time.July, engine.FiscalYear.Month)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_LogsMetricsAtDebug(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	engine.ComputeMetrics(domain.IncomeSource{Name: "Salary"}, now)

	assert.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "DEBUG: metrics")
}

func TestFiscalYearWindow(t *testing.T) {
	fy := domain.DefaultFiscalYearStart()

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "after april",
			now:       time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "before april",
			now:       time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "on the boundary",
			now:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FiscalYearWindow(fy, tt.now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}

	start, end := FiscalYearWindow(domain.FiscalYearStart{Month: time.January, Day: 1}, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), end)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
