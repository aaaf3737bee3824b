package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	asOf := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	maturity := time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC)
	return &Report{
		Title: "Test Portfolio",
		AsOf:  asOf,
		Sources: []domain.SourceMetrics{
			{
				Source: domain.IncomeSource{ID: "fd-1", Name: "Bank FD", GrowthRate: decimal.NewFromInt(7), RiskFactor: 1},
				Metrics: domain.IncomeMetricResult{
					Invested:     decimal.NewFromInt(500000),
					Current:      decimal.NewFromInt(535000),
					Net:          decimal.NewFromInt(35000),
					CAGR:         decimal.NewFromInt(7),
					Monthly:      decimal.NewFromInt(2916),
					TDSCurrentFY: decimal.NewFromInt(3500),
					MaturityDate: maturity,
					Type:         "Passive",
				},
			},
			{
				Source: domain.IncomeSource{ID: "job-1", Name: "Salary, Acme", RiskFactor: 2},
				Metrics: domain.IncomeMetricResult{
					Monthly: decimal.NewFromInt(120000),
					Type:    "Active",
				},
			},
		},
		Totals: domain.PortfolioTotals{
			TotalMonthly:   decimal.NewFromInt(122916),
			PassivePercent: decimal.NewFromFloat(2.37),
			TotalInvested:  decimal.NewFromInt(500000),
			NetWorth:       decimal.NewFromInt(-12000),
			SourceCount:    2,
		},
		Events: []events.Event{
			{SourceID: "fd-1", Title: "Bank FD Interest", Date: asOf.AddDate(0, 0, 10), Amount: decimal.NewFromInt(8750), Type: "Interest", DaysUntil: 10},
		},
		Warnings: []string{`Time Leak Detected: "Tutoring" takes 12hrs/wk but only yields ₹115/hr.`},
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "₹0"},
		{decimal.NewFromInt(999), "₹999"},
		{decimal.NewFromInt(1000), "₹1,000"},
		{decimal.NewFromInt(100000), "₹1,00,000"},
		{decimal.NewFromInt(1234567), "₹12,34,567"},
		{decimal.NewFromInt(123456789), "₹12,34,56,789"},
		{decimal.NewFromFloat(1499.6), "₹1,500"},
		{decimal.NewFromInt(-250000), "-₹2,50,000"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "7.50%", FormatPercentage(decimal.NewFromFloat(7.5)))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("verbose").Name())
	assert.Equal(t, "console", GetFormatterByName("table").Name())
	assert.Equal(t, "console-lite", GetFormatterByName("summary").Name())
	assert.Nil(t, GetFormatterByName("pdf"))

	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json", "xml"}, AvailableFormatterNames())
	assert.Equal(t, []string{"console-verbose", "summary", "table", "verbose"}, AvailableFormatAliases())
}

func TestConsoleFormatters(t *testing.T) {
	report := sampleReport()

	lite, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(lite), "PORTFOLIO SUMMARY")
	assert.Contains(t, string(lite), "₹1,22,916")
	assert.NotContains(t, string(lite), "Bank FD")

	verbose, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)
	out := string(verbose)
	assert.Contains(t, out, "TEST PORTFOLIO")
	assert.Contains(t, out, "KEY ASSUMPTIONS:")
	assert.Contains(t, out, DefaultAssumptions[0])
	assert.Contains(t, out, "Bank FD")
	assert.Contains(t, out, "Bank FD Interest")
	assert.Contains(t, out, "in 10 days")
	assert.Contains(t, out, "-₹12,000")
	assert.Contains(t, out, "Time Leak Detected")
}

func TestConsoleVerbose_EmptyReport(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(&Report{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "No income sources.")
	assert.Contains(t, string(out), "Nothing due.")
	assert.NotContains(t, string(out), "WARNINGS")
}

func TestCSVFormatters(t *testing.T) {
	report := sampleReport()

	data, err := CSVSummarizer{}.Format(report)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Source", rows[0][0])
	assert.Equal(t, []string{"Bank FD", "Passive", "500000.00", "535000.00", "35000.00", "7.00", "2916.00", "3500.00"}, rows[1])
	assert.Equal(t, "Salary, Acme", rows[2][0], "commas are quoted, not split")

	data, err = CSVDetailedFormatter{}.Format(report)
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	header := rows[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %s missing", name)
		return -1
	}
	assert.Equal(t, "fd-1", rows[1][col("ID")])
	assert.Equal(t, "2027-06-15", rows[1][col("MaturityDate")])
	assert.Equal(t, "", rows[2][col("MaturityDate")])
	assert.Equal(t, "1", rows[1][col("RiskFactor")])
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Test Portfolio", decoded["title"])
	totals := decoded["totals"].(map[string]any)
	assert.Equal(t, "122916", totals["total_monthly"], "decimals marshal as strings")
	assert.Len(t, decoded["sources"], 2)
}

func TestXMLFormatter(t *testing.T) {
	data, err := XMLFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.SelectElement("portfolio")
	require.NotNil(t, root)
	assert.Equal(t, "2025-06-15", root.SelectAttrValue("as_of", ""))

	sources := root.FindElements("./sources/source")
	require.Len(t, sources, 2)
	assert.Equal(t, "Bank FD", sources[0].SelectAttrValue("name", ""))
	assert.Equal(t, "2027-06-15", sources[0].SelectElement("maturity").Text())
	assert.Nil(t, sources[1].SelectElement("maturity"))

	assert.Equal(t, "122916.00", root.FindElement("./totals/monthly").Text())
	assert.Equal(t, "10", root.FindElement("./events/event").SelectAttrValue("days_until", ""))
	assert.Len(t, root.FindElements("./warnings/warning"), 1)
}

func TestHTMLFormatter(t *testing.T) {
	data, err := HTMLFormatter{}.Format(sampleReport())
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Test Portfolio</title>")
	assert.Contains(t, out, "₹5,35,000")
	assert.Contains(t, out, `class="neg"`)
	assert.Contains(t, out, "Time Leak Detected: &#34;Tutoring&#34;", "warnings are escaped")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "names", F: func(r *Report) ([]byte, error) {
		var names []string
		for _, s := range r.Sources {
			names = append(names, s.Source.Name)
		}
		return []byte(strings.Join(names, "|")), nil
	}}
	assert.Equal(t, "names", f.Name())
	out, err := f.Format(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "Bank FD|Salary, Acme", string(out))
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	name, err := WriteFormatted(JSONFormatter{}, sampleReport(), "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "gravityless_report_"))
	assert.True(t, strings.HasSuffix(name, ".json"))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	failing := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) { return nil, os.ErrInvalid }}
	_, err = WriteFormatted(failing, sampleReport(), "txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrInvalid)
	assert.Contains(t, err.Error(), "format broken")
}

func TestSaveConfiguration(t *testing.T) {
	path := t.TempDir() + "/portfolio.yaml"
	cfg := &domain.Configuration{
		Owner: "alice",
		Sources: []domain.IncomeSource{
			{ID: "fd-1", Name: "Bank FD", AmountInvested: decimal.NewFromInt(500000), GrowthRate: decimal.NewFromFloat(7.25)},
		},
	}
	require.NoError(t, SaveConfiguration(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back domain.Configuration
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, "alice", back.Owner)
	require.Len(t, back.Sources, 1)
	assert.True(t, back.Sources[0].GrowthRate.Equal(decimal.NewFromFloat(7.25)))
}
