package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Group       string
	Transforms  []PortfolioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	groupMarket   = "Market"
	groupSpending = "Spending"
	groupCombined = "Combination"
)

// CreateBuiltInTemplates creates a template registry with portfolio-wide what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "bear_market",
		Description: "All growth rates 4 pts lower",
		Group:       groupMarket,
		Transforms: []PortfolioTransform{
			&AdjustGrowth{Source: AllSources, Delta: decimal.NewFromInt(-4)},
		},
	})

	registry.Register(Template{
		Name:        "bull_market",
		Description: "All growth rates 3 pts higher",
		Group:       groupMarket,
		Transforms: []PortfolioTransform{
			&AdjustGrowth{Source: AllSources, Delta: decimal.NewFromInt(3)},
		},
	})

	registry.Register(Template{
		Name:        "lifestyle_creep",
		Description: "Extra ₹15,000/month of recurring wants",
		Group:       groupSpending,
		Transforms: []PortfolioTransform{
			&AddExpense{Category: domain.ExpenseWants, Amount: decimal.NewFromInt(15000), ExpenseDescription: "Lifestyle creep", Recurring: true},
		},
	})

	registry.Register(Template{
		Name:        "new_emi",
		Description: "New ₹25,000/month loan EMI",
		Group:       groupSpending,
		Transforms: []PortfolioTransform{
			&AddExpense{Category: domain.ExpenseDebt, Amount: decimal.NewFromInt(25000), ExpenseDescription: "New EMI", Loan: true},
		},
	})

	registry.Register(Template{
		Name:        "stagflation",
		Description: "Growth 4 pts lower + ₹10,000/month higher essentials",
		Group:       groupCombined,
		Transforms: []PortfolioTransform{
			&AdjustGrowth{Source: AllSources, Delta: decimal.NewFromInt(-4)},
			&AddExpense{Category: domain.ExpenseNeeds, Amount: decimal.NewFromInt(10000), ExpenseDescription: "Inflation", Recurring: true},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base portfolio
func ApplyTemplate(base *domain.Configuration, template Template) (*domain.Configuration, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	groups := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		groups[t.Group] = append(groups[t.Group], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, group := range []string{groupMarket, groupSpending, groupCombined, ""} {
		templates := groups[group]
		if len(templates) == 0 {
			continue
		}
		if group == "" {
			group = "Other"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", group))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  gravityless compare portfolio.yaml --with bear_market,lifestyle_creep\n")
	sb.WriteString("  gravityless compare portfolio.yaml --transform 'set_hours:source=Tutoring,hours=0'\n")

	return sb.String()
}
