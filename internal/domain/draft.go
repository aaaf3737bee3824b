package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const draftDateLayout = "2006-01-02"

// ValidationError reports a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IncomeDraft is the editable form state for creating or updating an income source.
// All mutation goes through Set so every change is parsed and typed on the way in.
type IncomeDraft struct {
	Name            string          `json:"name"`
	Category        Category        `json:"category"`
	Type            IncomeType      `json:"type"`
	Nature          Nature          `json:"nature"`
	PayoutFrequency string          `json:"payout_frequency,omitempty"`
	RiskFactor      int             `json:"risk_factor"`
	GrowthRate      decimal.Decimal `json:"growth_rate"`
	WeeklyHours     decimal.Decimal `json:"weekly_hours"`
	AmountInvested  decimal.Decimal `json:"amount_invested"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	InHand          bool            `json:"in_hand"`
	InvestmentDate  *time.Time      `json:"investment_date,omitempty"`
	InvestedUntil   *time.Time      `json:"invested_until,omitempty"`
	NextPayoutDate  *time.Time      `json:"next_payout_date,omitempty"`
	TDSDeducted     bool            `json:"tds_deducted"`
	TDSRate         decimal.Decimal `json:"tds_rate"`
}

// NewIncomeDraft returns an empty draft with the form defaults
func NewIncomeDraft() IncomeDraft {
	return IncomeDraft{
		Category:   CategoryOther,
		Type:       IncomeTypeActive,
		Nature:     NatureFixed,
		RiskFactor: 1,
	}
}

// DraftFromSource loads an existing source into a draft for editing
func DraftFromSource(s IncomeSource) IncomeDraft {
	return IncomeDraft{
		Name:            s.Name,
		Category:        s.Category,
		Type:            s.Type,
		Nature:          s.Nature,
		PayoutFrequency: s.PayoutFrequency,
		RiskFactor:      s.RiskFactor,
		GrowthRate:      s.GrowthRate,
		WeeklyHours:     s.WeeklyHours,
		AmountInvested:  s.AmountInvested,
		MonthlyIncome:   s.MonthlyIncome,
		InHand:          s.InHand,
		InvestmentDate:  copyTime(s.InvestmentDate),
		InvestedUntil:   copyTime(s.InvestedUntil),
		NextPayoutDate:  copyTime(s.NextPayoutDate),
		TDSDeducted:     s.TDSDeducted,
		TDSRate:         s.TDSRate,
	}
}

// Set parses raw form input for one field and returns the updated draft.
// The receiver is not modified.
func (d IncomeDraft) Set(field, value string) (IncomeDraft, error) {
	value = strings.TrimSpace(value)
	var err error
	switch field {
	case "name", "item":
		d.Name = value
	case "category":
		d.Category = ParseCategory(value)
	case "type":
		d.Type = ParseIncomeType(value)
	case "nature":
		d.Nature = ParseNature(value)
	case "payout_frequency":
		d.PayoutFrequency = value
	case "risk_factor":
		d.RiskFactor, err = strconv.Atoi(value)
	case "growth_rate":
		d.GrowthRate, err = parseDraftNumber(value)
	case "weekly_hours":
		d.WeeklyHours, err = parseDraftNumber(value)
	case "amount_invested":
		d.AmountInvested, err = parseDraftNumber(value)
	case "monthly_income":
		d.MonthlyIncome, err = parseDraftNumber(value)
	case "tds_rate":
		d.TDSRate, err = parseDraftNumber(value)
	case "in_hand":
		d.InHand, err = parseDraftBool(value)
	case "tds_deducted":
		d.TDSDeducted, err = parseDraftBool(value)
	case "investment_date":
		d.InvestmentDate, err = parseDraftDate(value)
	case "invested_until":
		d.InvestedUntil, err = parseDraftDate(value)
	case "next_payout_date":
		d.NextPayoutDate, err = parseDraftDate(value)
	default:
		return d, &ValidationError{Field: field, Message: "unknown field"}
	}
	if err != nil {
		return d, &ValidationError{Field: field, Message: err.Error()}
	}
	return d, nil
}

// Validate checks the draft is complete enough to save
func (d IncomeDraft) Validate() error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if d.RiskFactor < 1 || d.RiskFactor > 10 {
		return &ValidationError{Field: "risk_factor", Message: "must be between 1 and 10"}
	}
	if d.AmountInvested.IsNegative() {
		return &ValidationError{Field: "amount_invested", Message: "cannot be negative"}
	}
	if d.MonthlyIncome.IsNegative() {
		return &ValidationError{Field: "monthly_income", Message: "cannot be negative"}
	}
	if d.WeeklyHours.IsNegative() {
		return &ValidationError{Field: "weekly_hours", Message: "cannot be negative"}
	}
	if d.TDSRate.IsNegative() || d.TDSRate.GreaterThan(decimal.NewFromInt(100)) {
		return &ValidationError{Field: "tds_rate", Message: "must be between 0 and 100"}
	}
	if d.InvestmentDate != nil && d.InvestedUntil != nil && d.InvestedUntil.Before(*d.InvestmentDate) {
		return &ValidationError{Field: "invested_until", Message: "cannot be before investment date"}
	}
	return nil
}

// ToIncomeSource builds the persisted shape. Identity, ordering and payouts are left to the caller.
func (d IncomeDraft) ToIncomeSource(ownerID string) IncomeSource {
	category := d.Category
	if category == "" {
		category = CategoryOther
	}
	return IncomeSource{
		OwnerID:         ownerID,
		Name:            d.Name,
		Category:        category,
		Type:            d.Type,
		Nature:          d.Nature,
		PayoutFrequency: d.PayoutFrequency,
		AmountInvested:  d.AmountInvested,
		GrowthRate:      d.GrowthRate,
		MonthlyIncome:   d.MonthlyIncome,
		RiskFactor:      d.RiskFactor,
		WeeklyHours:     d.WeeklyHours,
		InHand:          d.InHand,
		InvestmentDate:  copyTime(d.InvestmentDate),
		InvestedUntil:   copyTime(d.InvestedUntil),
		NextPayoutDate:  copyTime(d.NextPayoutDate),
		TDSDeducted:     d.TDSDeducted,
		TDSRate:         d.TDSRate,
	}
}

func parseDraftNumber(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func parseDraftBool(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(value)
}

func parseDraftDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(draftDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD")
	}
	return &t, nil
}
