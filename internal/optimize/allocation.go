package optimize

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PresetStrategy is a fixed three-bucket split
type PresetStrategy struct {
	key         string
	name        string
	description string
	theory      string
	split       Split
}

func (p *PresetStrategy) Key() string         { return p.key }
func (p *PresetStrategy) Name() string        { return p.name }
func (p *PresetStrategy) Description() string { return p.description }
func (p *PresetStrategy) Theory() string      { return p.theory }
func (p *PresetStrategy) Split() Split        { return p.split }

// Allocate divides amount by the preset percentages. The growth bucket takes
// the rounding remainder so the three parts always sum to amount.
func (p *PresetStrategy) Allocate(amount decimal.Decimal) Allocation {
	emergency := amount.Mul(decimal.NewFromInt(int64(p.split.Emergency))).Div(hundred).Round(0)
	safe := amount.Mul(decimal.NewFromInt(int64(p.split.Safe))).Div(hundred).Round(0)
	return Allocation{
		Strategy:  p.key,
		Amount:    amount,
		Emergency: emergency,
		Safe:      safe,
		Growth:    amount.Sub(emergency).Sub(safe),
	}
}

// NewEmergencyFirstStrategy: 50% emergency, 30% safe, 20% growth
func NewEmergencyFirstStrategy() *PresetStrategy {
	return &PresetStrategy{
		key:         "emergency_first",
		name:        "Emergency First",
		description: "Builds a safety net before aggressive investing.",
		theory:      "Maslow's Hierarchy of Financial Needs: Survival > Safety > Growth.",
		split:       Split{Emergency: 50, Safe: 30, Growth: 20},
	}
}

// NewMaxReturnStrategy: 10% emergency, 10% safe, 80% growth
func NewMaxReturnStrategy() *PresetStrategy {
	return &PresetStrategy{
		key:         "max_return",
		name:        "Maximum Return",
		description: "Aggressive growth focus, accepting higher volatility.",
		theory:      "Efficient Market Hypothesis (Risk Premium): High risk is correlated with high expected returns.",
		split:       Split{Emergency: 10, Safe: 10, Growth: 80},
	}
}

// NewSafePlayStrategy: 30% emergency, 60% safe, 10% growth
func NewSafePlayStrategy() *PresetStrategy {
	return &PresetStrategy{
		key:         "safe_play",
		name:        "Safe Play",
		description: "Capital preservation is the priority.",
		theory:      "Loss Aversion: The pain of losing is psychologically twice as powerful as the pleasure of gaining.",
		split:       Split{Emergency: 30, Safe: 60, Growth: 10},
	}
}
