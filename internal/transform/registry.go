package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PortfolioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_growth", createAdjustGrowth)
	registry.Register("set_invested", createSetInvested)
	registry.Register("set_monthly", createSetMonthly)
	registry.Register("set_hours", createSetHours)
	registry.Register("set_risk", createSetRisk)
	registry.Register("remove_source", createRemoveSource)
	registry.Register("add_expense", createAddExpense)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PortfolioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_growth:source=Bank FD,delta=-1.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PortfolioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]PortfolioTransform, error) {
	out := make([]PortfolioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func required(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func requiredDecimal(params map[string]string, transform, key string) (decimal.Decimal, error) {
	v, err := required(params, transform, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func parseFlag(v string) bool {
	return v == "true" || v == "yes" || v == "1"
}

func createAdjustGrowth(params map[string]string) (PortfolioTransform, error) {
	source, err := required(params, "adjust_growth", "source")
	if err != nil {
		return nil, err
	}
	delta, err := requiredDecimal(params, "adjust_growth", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustGrowth{Source: source, Delta: delta}, nil
}

func createSetInvested(params map[string]string) (PortfolioTransform, error) {
	source, err := required(params, "set_invested", "source")
	if err != nil {
		return nil, err
	}
	amount, err := requiredDecimal(params, "set_invested", "amount")
	if err != nil {
		return nil, err
	}
	return &SetInvested{Source: source, Amount: amount}, nil
}

func createSetMonthly(params map[string]string) (PortfolioTransform, error) {
	source, err := required(params, "set_monthly", "source")
	if err != nil {
		return nil, err
	}
	amount, err := requiredDecimal(params, "set_monthly", "amount")
	if err != nil {
		return nil, err
	}
	return &SetMonthly{Source: source, Amount: amount}, nil
}

func createSetHours(params map[string]string) (PortfolioTransform, error) {
	source, err := required(params, "set_hours", "source")
	if err != nil {
		return nil, err
	}
	hours, err := requiredDecimal(params, "set_hours", "hours")
	if err != nil {
		return nil, err
	}
	return &SetHours{Source: source, Hours: hours}, nil
}

func createSetRisk(params map[string]string) (PortfolioTransform, error) {
	source, err := required(params, "set_risk", "source")
	if err != nil {
		return nil, err
	}
	riskStr, err := required(params, "set_risk", "risk")
	if err != nil {
		return nil, err
	}
	risk, err := strconv.Atoi(riskStr)
	if err != nil {
		return nil, fmt.Errorf("invalid risk value: %w", err)
	}
	return &SetRisk{Source: source, Risk: risk}, nil
}

func createRemoveSource(params map[string]string) (PortfolioTransform, error) {
	source, err := required(params, "remove_source", "source")
	if err != nil {
		return nil, err
	}
	return &RemoveSource{Source: source}, nil
}

func createAddExpense(params map[string]string) (PortfolioTransform, error) {
	amount, err := requiredDecimal(params, "add_expense", "amount")
	if err != nil {
		return nil, err
	}

	t := &AddExpense{
		Category:           domain.ParseExpenseCategory(params["category"]),
		Amount:             amount,
		ExpenseDescription: params["description"],
		Recurring:          parseFlag(params["recurring"]),
		Loan:               parseFlag(params["loan"]),
	}
	if dateStr, ok := params["date"]; ok {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
		}
		t.Date = date
	}
	return t, nil
}
