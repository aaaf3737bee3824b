package output

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
	"neg":  func(d decimal.Decimal) bool { return d.IsNegative() },
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// HTMLFormatter renders a standalone HTML page
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	data := struct {
		*Report
		Assumptions []string
	}{Report: report, Assumptions: report.Assumptions}
	if len(data.Assumptions) == 0 {
		data.Assumptions = DefaultAssumptions
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
