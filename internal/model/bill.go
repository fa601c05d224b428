package model

import (
	"github.com/shopspring/decimal"
)

// Bill is a single expense belonging to exactly one group.
// Amount is kept as text in canonical decimal form.
type Bill struct {
	ID          int    `json:"id" gorm:"primaryKey"`
	Description string `json:"description" gorm:"not null"`
	Amount      string `json:"amount" gorm:"not null"`
	GroupID     int    `json:"group_id" gorm:"not null;index"`
	Group       *Group `json:"group,omitempty" gorm:"constraint:OnDelete:RESTRICT;"`
}

// Stored amounts are bounded by MaxAmount and AmountScale.
const (
	AmountScale       = 2
	maxAmountExponent = 12
)

// MaxAmount is the largest amount a bill may carry
var MaxAmount = decimal.New(1, maxAmountExponent)

// AmountInRange reports whether d is at most MaxAmount in magnitude and has no
// more than AmountScale significant decimal places.
func AmountInRange(d decimal.Decimal) bool {
	// Exponent and coefficient are bounded before any comparison rescales d.
	exp := d.Exponent()
	if exp > maxAmountExponent || exp < -32 || d.Coefficient().BitLen() > 128 {
		return false
	}
	return d.Abs().LessThanOrEqual(MaxAmount) && d.Round(AmountScale).Equal(d)
}

// AmountDecimal parses the stored amount. Rows written outside the application
// may hold garbage; those count as zero.
func (b Bill) AmountDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(b.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// GroupName returns the name of the owning group when it was loaded.
func (b Bill) GroupName() string {
	if b.Group == nil {
		return ""
	}
	return b.Group.Name
}

// SumAmounts totals the amounts of the given bills.
func SumAmounts(bills []Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.AmountDecimal())
	}
	return total
}
