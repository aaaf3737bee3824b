package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVSummarizer writes one row per source with its headline metrics
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Source", "Type", "Invested", "Current", "Net", "CAGR", "Monthly", "TDSCurrentFY"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sm := range report.Sources {
		m := sm.Metrics
		row := []string{
			sm.Source.Name,
			m.Type,
			m.Invested.StringFixed(2),
			m.Current.StringFixed(2),
			m.Net.StringFixed(2),
			m.CAGR.StringFixed(2),
			m.Monthly.StringFixed(2),
			m.TDSCurrentFY.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVDetailedFormatter adds the source attributes the metrics were computed from
type CSVDetailedFormatter struct{}

func (c CSVDetailedFormatter) Name() string { return "detailed-csv" }

func (c CSVDetailedFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"ID", "Source", "Category", "Type", "GrowthRate", "RiskFactor", "WeeklyHours", "InHand",
		"Invested", "Current", "Net", "CAGR", "Monthly", "AccruedInterest", "TDSCurrentFY", "MaturityDate", "Payouts",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sm := range report.Sources {
		src, m := sm.Source, sm.Metrics
		maturity := ""
		if !m.MaturityDate.IsZero() {
			maturity = m.MaturityDate.Format("2006-01-02")
		}
		row := []string{
			src.ID,
			src.Name,
			string(src.Category),
			m.Type,
			src.GrowthRate.String(),
			strconv.Itoa(src.RiskFactor),
			src.WeeklyHours.String(),
			strconv.FormatBool(src.InHand),
			m.Invested.StringFixed(2),
			m.Current.StringFixed(2),
			m.Net.StringFixed(2),
			m.CAGR.StringFixed(2),
			m.Monthly.StringFixed(2),
			m.AccruedInterest.StringFixed(2),
			m.TDSCurrentFY.StringFixed(2),
			maturity,
			strconv.Itoa(len(src.Payouts)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
