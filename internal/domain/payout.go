package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PayoutType identifies what a scheduled cash event represents
type PayoutType string

const (
	PayoutInterest  PayoutType = "Interest"
	PayoutPrincipal PayoutType = "Principal"
	PayoutDividend  PayoutType = "Dividend"
	PayoutBonus     PayoutType = "Bonus"
	PayoutOther     PayoutType = "Other"
)

// ParsePayoutType maps input onto the closed payout type set, defaulting to PayoutOther
func ParsePayoutType(s string) PayoutType {
	s = strings.TrimSpace(s)
	for _, t := range []PayoutType{PayoutInterest, PayoutPrincipal, PayoutDividend, PayoutBonus} {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return PayoutOther
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *PayoutType) UnmarshalText(text []byte) error {
	*t = ParsePayoutType(string(text))
	return nil
}

// PayoutStatus tracks whether a payout has happened
type PayoutStatus string

const (
	PayoutScheduled   PayoutStatus = "Scheduled"
	PayoutPaid        PayoutStatus = "Paid"
	PayoutMissed      PayoutStatus = "Missed"
	PayoutStatusOther PayoutStatus = "Other"
)

// ParsePayoutStatus defaults empty input to Scheduled and unknown input to Other
func ParsePayoutStatus(s string) PayoutStatus {
	s = strings.TrimSpace(s)
	if s == "" {
		return PayoutScheduled
	}
	for _, st := range []PayoutStatus{PayoutScheduled, PayoutPaid, PayoutMissed} {
		if strings.EqualFold(string(st), s) {
			return st
		}
	}
	return PayoutStatusOther
}

// UnmarshalText implements encoding.TextUnmarshaler
func (st *PayoutStatus) UnmarshalText(text []byte) error {
	*st = ParsePayoutStatus(string(text))
	return nil
}

// PayoutSchedule is one scheduled or realized cash event of an income source.
// Slices of payouts are unordered.
type PayoutSchedule struct {
	ID     string          `yaml:"id,omitempty" json:"id,omitempty"`
	Date   time.Time       `yaml:"date" json:"date"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Type   PayoutType      `yaml:"type" json:"type"`
	Status PayoutStatus    `yaml:"status,omitempty" json:"status,omitempty"`
}

// IsPrincipal is true for return-of-capital payouts; everything else is interest-like
func (p PayoutSchedule) IsPrincipal() bool {
	return p.Type == PayoutPrincipal
}
