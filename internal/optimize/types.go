package optimize

import (
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// Thresholds holds the calibration constants of the efficiency score and the
// policy limits behind the time-leak and risk-bomb flags.
// WeeksPerMonth: converts weekly hours to monthly hours
// ROIDivisor / RiskDivisor: scale ROI-per-hour and risk-adjusted return into score points
// MaxScore: ceiling of the composite score
// TimeLeakHours / TimeLeakROIPerHour: a source is a time leak above the hours and below the ROI
// RiskBombFactor / RiskBombAdjustedMin: a source is a risk bomb above the factor and below the return
type Thresholds struct {
	WeeksPerMonth       decimal.Decimal
	ROIDivisor          decimal.Decimal
	RiskDivisor         decimal.Decimal
	MaxScore            decimal.Decimal
	TimeLeakHours       decimal.Decimal
	TimeLeakROIPerHour  decimal.Decimal
	RiskBombFactor      int
	RiskBombAdjustedMin decimal.Decimal
}

// DefaultThresholds returns the stock calibration
func DefaultThresholds() Thresholds {
	return Thresholds{
		WeeksPerMonth:       decimal.NewFromFloat(4.33),
		ROIDivisor:          decimal.NewFromInt(10),
		RiskDivisor:         decimal.NewFromInt(1000),
		MaxScore:            decimal.NewFromInt(100),
		TimeLeakHours:       decimal.NewFromInt(10),
		TimeLeakROIPerHour:  decimal.NewFromInt(500),
		RiskBombFactor:      7,
		RiskBombAdjustedMin: decimal.NewFromInt(5000),
	}
}

// ThresholdsFromConfig overlays the non-zero values of a portfolio file's
// optimization block on the defaults. A nil block yields the defaults.
func ThresholdsFromConfig(cfg *domain.OptimizationThresholds) Thresholds {
	t := DefaultThresholds()
	if cfg == nil {
		return t
	}
	overlay := func(dst *decimal.Decimal, v decimal.Decimal) {
		if v.IsPositive() {
			*dst = v
		}
	}
	overlay(&t.WeeksPerMonth, cfg.WeeksPerMonth)
	overlay(&t.ROIDivisor, cfg.ROIDivisor)
	overlay(&t.RiskDivisor, cfg.RiskDivisor)
	overlay(&t.MaxScore, cfg.MaxScore)
	overlay(&t.TimeLeakHours, cfg.TimeLeakHours)
	overlay(&t.TimeLeakROIPerHour, cfg.TimeLeakROIPerHour)
	overlay(&t.RiskBombAdjustedMin, cfg.RiskBombAdjustedMin)
	if cfg.RiskBombFactor > 0 {
		t.RiskBombFactor = cfg.RiskBombFactor
	}
	return t
}

// Score is the efficiency view of one source. It reads declared fields only,
// never derived metrics.
type Score struct {
	SourceID           string          `json:"source_id"`
	Name               string          `json:"name"`
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	WeeklyHours        decimal.Decimal `json:"weekly_hours"`
	RiskFactor         int             `json:"risk_factor"`
	MonthlyHours       decimal.Decimal `json:"monthly_hours"`
	ROIPerHour         decimal.Decimal `json:"roi_per_hour"`
	RiskAdjustedReturn decimal.Decimal `json:"risk_adjusted_return"`
	EfficiencyScore    decimal.Decimal `json:"efficiency_score"`
	TimeLeak           bool            `json:"time_leak"`
	RiskBomb           bool            `json:"risk_bomb"`
}

// Suggestion is the warning list for a portfolio plus the explanation of the model
type Suggestion struct {
	Warnings []string `json:"warnings"`
	Theory   string   `json:"theory"`
}

// Theory explains the scoring model to the user
const Theory = "We use the Sharpe Ratio equivalent for personal capital: Return per unit of Risk (Risk Factor) and Return on Time Invested (ROTI). Optimization minimizes 'h' (hours) while maximizing 'R' (Risk-adjusted Return)."

// Split is a percentage split across the three allocation buckets
type Split struct {
	Emergency int `json:"emergency"`
	Safe      int `json:"safe"`
	Growth    int `json:"growth"`
}

// Allocation is an amount divided according to a Split
type Allocation struct {
	Strategy  string          `json:"strategy"`
	Amount    decimal.Decimal `json:"amount"`
	Emergency decimal.Decimal `json:"emergency"`
	Safe      decimal.Decimal `json:"safe"`
	Growth    decimal.Decimal `json:"growth"`
}

// AllocationStrategy defines the interface for all surplus allocation presets
type AllocationStrategy interface {
	Key() string
	Name() string
	Description() string
	Theory() string
	Split() Split
	Allocate(amount decimal.Decimal) Allocation
}
