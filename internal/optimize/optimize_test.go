package optimize

import (
	"testing"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(name string, monthly, weekly float64, risk int) domain.IncomeSource {
	return domain.IncomeSource{
		ID:            name,
		Name:          name,
		MonthlyIncome: decimal.NewFromFloat(monthly),
		WeeklyHours:   decimal.NewFromFloat(weekly),
		RiskFactor:    risk,
	}
}

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer()

	t.Run("hours based roi", func(t *testing.T) {
		s := scorer.Score(source("Job", 20000, 40, 2))
		assert.InDelta(t, 173.2, s.MonthlyHours.InexactFloat64(), 1e-9)
		assert.InDelta(t, 20000/173.2, s.ROIPerHour.InexactFloat64(), 1e-6)
		assert.True(t, s.RiskAdjustedReturn.Equal(decimal.NewFromInt(120000)))
		assert.True(t, s.EfficiencyScore.Equal(decimal.NewFromInt(100)), "score is clamped, got %s", s.EfficiencyScore)
		assert.True(t, s.TimeLeak)
		assert.False(t, s.RiskBomb)
	})

	t.Run("zero hours reports raw income", func(t *testing.T) {
		s := scorer.Score(source("Dividends", 5000, 0, 0))
		assert.True(t, s.ROIPerHour.Equal(decimal.NewFromInt(5000)))
		assert.True(t, s.RiskAdjustedReturn.Equal(decimal.NewFromInt(60000)), "risk below one is treated as one")
		assert.False(t, s.TimeLeak)
	})

	t.Run("unclamped composite", func(t *testing.T) {
		s := scorer.Score(source("Crypto", 1000, 5, 9))
		roi := 1000 / (5 * 4.33)
		riskAdj := 12000.0 / 9
		assert.InDelta(t, roi/10+riskAdj/1000, s.EfficiencyScore.InexactFloat64(), 1e-6)
		assert.True(t, s.RiskBomb)
		assert.False(t, s.TimeLeak)
	})

	t.Run("thresholds are strict", func(t *testing.T) {
		s := scorer.Score(source("Edge", 100, 10, 7))
		assert.False(t, s.TimeLeak, "exactly ten hours is not a leak")
		assert.False(t, s.RiskBomb, "risk seven is not a bomb")
	})
}

func TestScorer_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.TimeLeakHours = decimal.NewFromInt(2)
	th.RiskBombFactor = 3
	scorer := NewScorerWithThresholds(th)

	s := scorer.Score(source("Side gig", 1000, 5, 4))
	assert.True(t, s.TimeLeak)
	assert.True(t, s.RiskBomb)
}

func TestThresholdsFromConfig(t *testing.T) {
	assert.Equal(t, DefaultThresholds(), ThresholdsFromConfig(nil))

	th := ThresholdsFromConfig(&domain.OptimizationThresholds{
		WeeksPerMonth:  decimal.NewFromFloat(4.345),
		RiskBombFactor: 5,
	})
	assert.True(t, th.WeeksPerMonth.Equal(decimal.NewFromFloat(4.345)))
	assert.Equal(t, 5, th.RiskBombFactor)
	assert.True(t, th.ROIDivisor.Equal(decimal.NewFromInt(10)), "unset values keep defaults")
}

func TestSuggest(t *testing.T) {
	scorer := NewScorer()
	scores := scorer.ScoreAll([]domain.IncomeSource{
		source("Crypto", 1000, 2, 9),
		source("Tutoring", 6000, 12, 3),
		source("Salary", 150000, 45, 2),
	})

	got := Suggest(scores)
	require.Len(t, got.Warnings, 2)
	assert.Equal(t, `Time Leak Detected: "Tutoring" takes 12hrs/wk but only yields ₹115/hr.`, got.Warnings[0])
	assert.Equal(t, `Risk Alert: "Crypto" has high risk (9) with low adjusted return.`, got.Warnings[1])
	assert.Equal(t, Theory, got.Theory)

	empty := Suggest(nil)
	assert.NotNil(t, empty.Warnings)
	assert.Empty(t, empty.Warnings)
}

func TestRankByEfficiency(t *testing.T) {
	scores := NewScorer().ScoreAll([]domain.IncomeSource{
		source("low", 100, 10, 5),
		source("high", 200000, 10, 1),
		source("mid", 10000, 40, 5),
	})

	ranked := RankByEfficiency(scores)
	assert.Equal(t, "high", ranked[0].Name)
	assert.Equal(t, "mid", ranked[1].Name)
	assert.Equal(t, "low", ranked[2].Name)
	assert.Equal(t, "low", scores[0].Name, "input is not reordered")
}

func TestCreateAllocationStrategy(t *testing.T) {
	tests := []struct {
		key      string
		expected string
		split    Split
	}{
		{"emergency_first", "Emergency First", Split{50, 30, 20}},
		{"max_return", "Maximum Return", Split{10, 10, 80}},
		{"safe_play", "Safe Play", Split{30, 60, 10}},
		{"yolo", "Emergency First", Split{50, 30, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := CreateAllocationStrategy(tt.key)
			require.NotNil(t, s)
			assert.Equal(t, tt.expected, s.Name())
			assert.Equal(t, tt.split, s.Split())
			assert.Equal(t, 100, tt.split.Emergency+tt.split.Safe+tt.split.Growth)
			assert.NotEmpty(t, s.Description())
			assert.NotEmpty(t, s.Theory())
		})
	}

	assert.Len(t, AllStrategies(), 3)
}

func TestPresetStrategy_Allocate(t *testing.T) {
	a := NewEmergencyFirstStrategy().Allocate(decimal.NewFromInt(100000))
	assert.True(t, a.Emergency.Equal(decimal.NewFromInt(50000)))
	assert.True(t, a.Safe.Equal(decimal.NewFromInt(30000)))
	assert.True(t, a.Growth.Equal(decimal.NewFromInt(20000)))

	odd := NewMaxReturnStrategy().Allocate(decimal.NewFromInt(100001))
	total := odd.Emergency.Add(odd.Safe).Add(odd.Growth)
	assert.True(t, total.Equal(decimal.NewFromInt(100001)), "parts must sum to the amount, got %s", total)
	assert.Equal(t, "max_return", odd.Strategy)
}
