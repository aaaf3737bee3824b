package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeMetricResult holds the derived figures for one income source at a point in time.
// It is never persisted; recompute it whenever the source, its payouts or "now" change.
//
// Current and Net deliberately measure different things:
//   - Current is remaining book value: what is still inside the instrument after
//     interest has been extracted and principal returned.
//   - Net is total value created by the asset: principal plus interest earned plus
//     interest accrued towards the next payout, without netting out what was paid.
type IncomeMetricResult struct {
	Invested        decimal.Decimal `json:"invested"`
	Current         decimal.Decimal `json:"current"`
	Net             decimal.Decimal `json:"net"`
	CAGR            decimal.Decimal `json:"cagr"` // percent, 2 dp
	Monthly         decimal.Decimal `json:"monthly"`
	TDSCurrentFY    decimal.Decimal `json:"tds_current_fy"`
	AccruedInterest decimal.Decimal `json:"accrued_interest"`
	MaturityDate    time.Time       `json:"maturity_date"`
	Type            string          `json:"type"`
}

// SourceMetrics pairs a source with the metrics computed for it
type SourceMetrics struct {
	Source  IncomeSource       `json:"source"`
	Metrics IncomeMetricResult `json:"metrics"`
}

// PortfolioTotals is the portfolio-level rollup of per-source metrics and expenses.
//
// LiquidAssets sums cost basis (invested) of in-hand sources while LockedAssets sums
// current value of the rest. The two halves use different valuation bases.
type PortfolioTotals struct {
	TotalMonthly        decimal.Decimal `json:"total_monthly"`
	TotalInvested       decimal.Decimal `json:"total_invested"`
	TotalCurrentValue   decimal.Decimal `json:"total_current_value"`
	TotalNetValue       decimal.Decimal `json:"total_net_value"`
	PassiveMonthly      decimal.Decimal `json:"passive_monthly"`
	PassivePercent      decimal.Decimal `json:"passive_percent"`
	WeightedCAGR        decimal.Decimal `json:"weighted_cagr"`
	LiquidAssets        decimal.Decimal `json:"liquid_assets"`
	LockedAssets        decimal.Decimal `json:"locked_assets"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`
	NetWorth            decimal.Decimal `json:"net_worth"`
	TotalMonthlyExpense decimal.Decimal `json:"total_monthly_expense"`
	SavingsRate         decimal.Decimal `json:"savings_rate"`
	FreedomRatio        decimal.Decimal `json:"freedom_ratio"`
	SourceCount         int             `json:"source_count"`
}
