package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies what kind of asset or job an income source is
type Category string

const (
	CategoryJob         Category = "Job"
	CategoryBonds       Category = "Bonds"
	CategoryStocks      Category = "Stocks"
	CategoryBusiness    Category = "Business"
	CategoryRental      Category = "Rental"
	CategoryRealEstate  Category = "Real Estate"
	CategoryCrypto      Category = "Crypto"
	CategoryFDRD        Category = "FD/RD"
	CategoryP2PLending  Category = "P2P Lending"
	CategorySavings     Category = "Savings"
	CategoryMutualFunds Category = "Mutual Funds"
	CategoryOther       Category = "Other"
)

var knownCategories = []Category{
	CategoryJob, CategoryBonds, CategoryStocks, CategoryBusiness, CategoryRental,
	CategoryRealEstate, CategoryCrypto, CategoryFDRD, CategoryP2PLending,
	CategorySavings, CategoryMutualFunds, CategoryOther,
}

// ParseCategory maps free-form input onto the closed category set.
// Matching is case-insensitive; anything unrecognised becomes CategoryOther.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range knownCategories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return CategoryOther
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// IsDebtLike reports whether yields for this category are quoted as simple annual rates
func (c Category) IsDebtLike() bool {
	switch c {
	case CategoryBonds, CategoryFDRD, CategoryP2PLending, CategorySavings:
		return true
	default:
		return false
	}
}

// IncomeType describes how much ongoing effort a source needs
type IncomeType string

const (
	IncomeTypeUnset       IncomeType = ""
	IncomeTypeActive      IncomeType = "Active"
	IncomeTypeSemiActive  IncomeType = "Semi-Active"
	IncomeTypeSemiPassive IncomeType = "Semi-Passive"
	IncomeTypePassive     IncomeType = "Passive"
)

// ParseIncomeType returns IncomeTypeUnset for anything outside the four known types
func ParseIncomeType(s string) IncomeType {
	s = strings.TrimSpace(s)
	for _, t := range []IncomeType{IncomeTypeActive, IncomeTypeSemiActive, IncomeTypeSemiPassive, IncomeTypePassive} {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return IncomeTypeUnset
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *IncomeType) UnmarshalText(text []byte) error {
	*t = ParseIncomeType(string(text))
	return nil
}

// IsPassive is true for Passive and Semi-Passive sources
func (t IncomeType) IsPassive() bool {
	return t == IncomeTypePassive || t == IncomeTypeSemiPassive
}

// Nature says whether the monthly amount is fixed or fluctuates
type Nature string

const (
	NatureUnset    Nature = ""
	NatureFixed    Nature = "Fixed"
	NatureVariable Nature = "Variable"
)

// ParseNature returns NatureUnset for unknown values
func ParseNature(s string) Nature {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return NatureFixed
	case "variable":
		return NatureVariable
	default:
		return NatureUnset
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (n *Nature) UnmarshalText(text []byte) error {
	*n = ParseNature(string(text))
	return nil
}

// IncomeSource is one income-producing asset or job owned by a user.
// It owns its payout schedule; deleting the source deletes its payouts.
type IncomeSource struct {
	ID              string     `yaml:"id" json:"id"`
	OwnerID         string     `yaml:"owner_id,omitempty" json:"owner_id,omitempty"`
	Name            string     `yaml:"name" json:"name"`
	Category        Category   `yaml:"category" json:"category"`
	Type            IncomeType `yaml:"type" json:"type"`
	Nature          Nature     `yaml:"nature,omitempty" json:"nature,omitempty"`
	PayoutFrequency string     `yaml:"payout_frequency,omitempty" json:"payout_frequency,omitempty"`

	AmountInvested decimal.Decimal `yaml:"amount_invested" json:"amount_invested"`
	GrowthRate     decimal.Decimal `yaml:"growth_rate" json:"growth_rate"` // nominal annual percent
	MonthlyIncome  decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	RiskFactor     int             `yaml:"risk_factor" json:"risk_factor"` // 1-10, enforced by callers
	WeeklyHours    decimal.Decimal `yaml:"weekly_hours" json:"weekly_hours"`
	InHand         bool            `yaml:"in_hand" json:"in_hand"`

	InvestmentDate *time.Time `yaml:"investment_date,omitempty" json:"investment_date,omitempty"`
	CreatedAt      *time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	InvestedUntil  *time.Time `yaml:"invested_until,omitempty" json:"invested_until,omitempty"`
	NextPayoutDate *time.Time `yaml:"next_payout_date,omitempty" json:"next_payout_date,omitempty"`

	TDSDeducted bool            `yaml:"tds_deducted" json:"tds_deducted"`
	TDSRate     decimal.Decimal `yaml:"tds_rate" json:"tds_rate"`

	SortOrder int              `yaml:"sort_order" json:"sort_order"`
	Payouts   []PayoutSchedule `yaml:"payouts,omitempty" json:"payouts,omitempty"`
}

// StartDate is the start of the holding: investment date, else creation time, else now
func (s *IncomeSource) StartDate(now time.Time) time.Time {
	if s.InvestmentDate != nil && !s.InvestmentDate.IsZero() {
		return *s.InvestmentDate
	}
	if s.CreatedAt != nil && !s.CreatedAt.IsZero() {
		return *s.CreatedAt
	}
	return now
}

// HasMaturityEvent reports whether InvestedUntil is surfaced as a maturity event
func (s *IncomeSource) HasMaturityEvent() bool {
	if s.InvestedUntil == nil {
		return false
	}
	return s.Category == CategoryBonds || s.Category == CategoryStocks || strings.Contains(s.Name, "FD")
}

// DeepCopy returns a copy that shares no pointers or slices with s
func (s *IncomeSource) DeepCopy() *IncomeSource {
	if s == nil {
		return nil
	}
	cp := *s
	cp.InvestmentDate = copyTime(s.InvestmentDate)
	cp.CreatedAt = copyTime(s.CreatedAt)
	cp.InvestedUntil = copyTime(s.InvestedUntil)
	cp.NextPayoutDate = copyTime(s.NextPayoutDate)
	if s.Payouts != nil {
		cp.Payouts = make([]PayoutSchedule, len(s.Payouts))
		copy(cp.Payouts, s.Payouts)
	}
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
