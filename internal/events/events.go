// Package events lists upcoming payouts and maturities across income sources
package events

import (
	"fmt"
	"sort"
	"time"

	"github.com/rgehrsitz/gravityless/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultWindowDays is how far ahead the dashboard looks
	DefaultWindowDays = 60
	// DefaultTop is how many events the dashboard shows
	DefaultTop = 5

	TypePayout   = "Payout"
	TypeMaturity = "Maturity"
)

// Event is one dated cash event of a source. Maturity events carry the
// invested amount rather than a projected value.
type Event struct {
	SourceID       string          `json:"source_id"`
	Title          string          `json:"title"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	Type           string          `json:"type"`
	DaysUntil      int             `json:"days_until"`
}

// DaysUntil is the whole days from now to date, rounded up
func DaysUntil(now, date time.Time) int {
	diff := date.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Extract collects next-payout, scheduled payout and maturity events that fall
// within windowDays of now, sorted by date. Events on the same date keep source order.
func Extract(sources []domain.IncomeSource, now time.Time, windowDays int) []Event {
	out := []Event{}
	add := func(src *domain.IncomeSource, date time.Time, title string, amount decimal.Decimal, typ string) {
		days := DaysUntil(now, date)
		if days < 0 || days > windowDays {
			return
		}
		out = append(out, Event{
			SourceID:       src.ID,
			Title:          title,
			Date:           date,
			Amount:         amount,
			InvestedAmount: src.AmountInvested,
			Type:           typ,
			DaysUntil:      days,
		})
	}

	for i := range sources {
		src := &sources[i]
		if src.NextPayoutDate != nil && !src.NextPayoutDate.IsZero() {
			add(src, *src.NextPayoutDate, fmt.Sprintf("%s Payout", src.Name), src.MonthlyIncome, TypePayout)
		}
		for _, p := range src.Payouts {
			if p.Date.IsZero() {
				continue
			}
			add(src, p.Date, fmt.Sprintf("%s %s", src.Name, p.Type), p.Amount, string(p.Type))
		}
		if src.HasMaturityEvent() {
			add(src, *src.InvestedUntil, fmt.Sprintf("%s Maturity", src.Name), src.AmountInvested, TypeMaturity)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Top returns at most n events from the front of a sorted list
func Top(list []Event, n int) []Event {
	if n < 0 {
		n = 0
	}
	if len(list) <= n {
		return list
	}
	return list[:n]
}
