package optimize

import (
	"sort"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Scorer rates sources by time and risk efficiency
type Scorer struct {
	Thresholds Thresholds
}

// NewScorer creates a scorer with the default thresholds
func NewScorer() *Scorer {
	return &Scorer{Thresholds: DefaultThresholds()}
}

// NewScorerWithThresholds creates a scorer with custom thresholds
func NewScorerWithThresholds(t Thresholds) *Scorer {
	return &Scorer{Thresholds: t}
}

// Score rates a single source from its declared monthly income, weekly hours and risk factor
func (s *Scorer) Score(src domain.IncomeSource) Score {
	t := s.Thresholds
	monthly := nonNegative(src.MonthlyIncome)
	weekly := nonNegative(src.WeeklyHours)
	monthlyHours := weekly.Mul(t.WeeksPerMonth)

	roi := monthly
	if monthlyHours.IsPositive() {
		roi = monthly.Div(monthlyHours)
	}

	risk := src.RiskFactor
	if risk < 1 {
		risk = 1
	}
	riskAdjusted := monthly.Mul(twelve).Div(decimal.NewFromInt(int64(risk)))

	score := decimal.Min(t.MaxScore, ratio(roi, t.ROIDivisor).Add(ratio(riskAdjusted, t.RiskDivisor)))

	return Score{
		SourceID:           src.ID,
		Name:               src.Name,
		MonthlyIncome:      monthly,
		WeeklyHours:        weekly,
		RiskFactor:         src.RiskFactor,
		MonthlyHours:       monthlyHours,
		ROIPerHour:         roi,
		RiskAdjustedReturn: riskAdjusted,
		EfficiencyScore:    score,
		TimeLeak:           weekly.GreaterThan(t.TimeLeakHours) && roi.LessThan(t.TimeLeakROIPerHour),
		RiskBomb:           src.RiskFactor > t.RiskBombFactor && riskAdjusted.LessThan(t.RiskBombAdjustedMin),
	}
}

// ScoreAll rates every source, preserving input order
func (s *Scorer) ScoreAll(sources []domain.IncomeSource) []Score {
	out := make([]Score, len(sources))
	for i := range sources {
		out[i] = s.Score(sources[i])
	}
	return out
}

// RankByEfficiency returns a copy sorted by descending efficiency score.
// Ties keep their input order.
func RankByEfficiency(scores []Score) []Score {
	ranked := append([]Score(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EfficiencyScore.GreaterThan(ranked[j].EfficiencyScore)
	})
	return ranked
}

func ratio(v, divisor decimal.Decimal) decimal.Decimal {
	if divisor.IsZero() {
		return decimal.Zero
	}
	return v.Div(divisor)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
