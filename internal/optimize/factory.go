package optimize

// AllocationStrategyKeys lists the preset keys in display order
var AllocationStrategyKeys = []string{"emergency_first", "max_return", "safe_play"}

// CreateAllocationStrategy creates an allocation strategy by key
func CreateAllocationStrategy(key string) AllocationStrategy {
	switch key {
	case "emergency_first":
		return NewEmergencyFirstStrategy()
	case "max_return":
		return NewMaxReturnStrategy()
	case "safe_play":
		return NewSafePlayStrategy()
	default:
		// Fallback to emergency_first if unknown strategy
		return NewEmergencyFirstStrategy()
	}
}

// AllStrategies returns every preset in display order
func AllStrategies() []AllocationStrategy {
	out := make([]AllocationStrategy, 0, len(AllocationStrategyKeys))
	for _, k := range AllocationStrategyKeys {
		out = append(out, CreateAllocationStrategy(k))
	}
	return out
}
