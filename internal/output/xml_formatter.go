package output

import (
	"strconv"

	"github.com/beevik/etree"
)

// XMLFormatter renders the report as an XML document
type XMLFormatter struct{}

func (x XMLFormatter) Name() string { return "xml" }

func (x XMLFormatter) Format(report *Report) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("portfolio")
	root.CreateAttr("as_of", report.AsOf.Format("2006-01-02"))
	if report.Title != "" {
		root.CreateAttr("title", report.Title)
	}

	t := report.Totals
	totals := root.CreateElement("totals")
	totals.CreateAttr("sources", strconv.Itoa(t.SourceCount))
	for _, kv := range []struct {
		name  string
		value string
	}{
		{"monthly", t.TotalMonthly.StringFixed(2)},
		{"passive_monthly", t.PassiveMonthly.StringFixed(2)},
		{"passive_percent", t.PassivePercent.StringFixed(2)},
		{"invested", t.TotalInvested.StringFixed(2)},
		{"current", t.TotalCurrentValue.StringFixed(2)},
		{"net", t.TotalNetValue.StringFixed(2)},
		{"weighted_cagr", t.WeightedCAGR.StringFixed(2)},
		{"liquid", t.LiquidAssets.StringFixed(2)},
		{"locked", t.LockedAssets.StringFixed(2)},
		{"liabilities", t.TotalLiabilities.StringFixed(2)},
		{"net_worth", t.NetWorth.StringFixed(2)},
		{"monthly_expense", t.TotalMonthlyExpense.StringFixed(2)},
		{"savings_rate", t.SavingsRate.StringFixed(2)},
		{"freedom_ratio", t.FreedomRatio.StringFixed(2)},
	} {
		totals.CreateElement(kv.name).SetText(kv.value)
	}

	sources := root.CreateElement("sources")
	for _, sm := range report.Sources {
		el := sources.CreateElement("source")
		el.CreateAttr("id", sm.Source.ID)
		el.CreateAttr("name", sm.Source.Name)
		el.CreateAttr("type", sm.Metrics.Type)
		el.CreateElement("invested").SetText(sm.Metrics.Invested.StringFixed(2))
		el.CreateElement("current").SetText(sm.Metrics.Current.StringFixed(2))
		el.CreateElement("net").SetText(sm.Metrics.Net.StringFixed(2))
		el.CreateElement("cagr").SetText(sm.Metrics.CAGR.StringFixed(2))
		el.CreateElement("monthly").SetText(sm.Metrics.Monthly.StringFixed(2))
		el.CreateElement("tds_current_fy").SetText(sm.Metrics.TDSCurrentFY.StringFixed(2))
		if !sm.Metrics.MaturityDate.IsZero() {
			el.CreateElement("maturity").SetText(sm.Metrics.MaturityDate.Format("2006-01-02"))
		}
	}

	events := root.CreateElement("events")
	for _, e := range report.Events {
		el := events.CreateElement("event")
		el.CreateAttr("type", e.Type)
		el.CreateAttr("date", e.Date.Format("2006-01-02"))
		el.CreateAttr("days_until", strconv.Itoa(e.DaysUntil))
		el.CreateElement("title").SetText(e.Title)
		el.CreateElement("amount").SetText(e.Amount.StringFixed(2))
	}

	if len(report.Warnings) > 0 {
		warnings := root.CreateElement("warnings")
		for _, w := range report.Warnings {
			warnings.CreateElement("warning").SetText(w)
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
