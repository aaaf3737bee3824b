package output

import (
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Report is the data every formatter renders
type Report struct {
	Title       string                 `json:"title"`
	AsOf        time.Time              `json:"as_of"`
	Sources     []domain.SourceMetrics `json:"sources"`
	Totals      domain.PortfolioTotals `json:"totals"`
	Events      []events.Event         `json:"events"`
	Warnings    []string               `json:"warnings,omitempty"`
	Assumptions []string               `json:"assumptions,omitempty"`
}

// SaveConfiguration writes a portfolio back out as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency renders whole rupees with Indian digit grouping, e.g. ₹12,34,567
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + "₹" + groupIndian(s)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// groupIndian groups the last three digits, then pairs
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
