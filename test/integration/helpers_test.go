package integration

import "github.com/shopspring/decimal"

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
