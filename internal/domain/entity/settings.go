package entity

import (
	"time"

	"github.com/google/uuid"
)

// Settings holds the per-user costing configuration that drives every
// financial derivation.
type Settings struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	IsVATRegistered   bool      `gorm:"default:false" json:"is_vat_registered"`
	IsPWDSeniorActive bool      `gorm:"default:false" json:"is_pwd_senior_active"`
	OtherDiscountRate float64   `gorm:"default:0" json:"other_discount_rate"` // percent, 0-50
	DailySalesTarget  float64   `gorm:"default:0" json:"daily_sales_target"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}

// VATRate returns the VAT fraction applied when the business is registered.
// VAT is modeled as tax-inclusive in the listed price at a fixed 12%.
func (s *Settings) VATRate() float64 {
	if s.IsVATRegistered {
		return 0.12
	}
	return 0
}

// PWDRate returns the PWD/Senior discount fraction (fixed 20% when active).
func (s *Settings) PWDRate() float64 {
	if s.IsPWDSeniorActive {
		return 0.20
	}
	return 0
}

// OtherRate returns the configurable discount as a fraction.
func (s *Settings) OtherRate() float64 {
	return s.OtherDiscountRate / 100
}

// ClampDiscountRate keeps the configurable discount inside its 0-50% range.
func (s *Settings) ClampDiscountRate() {
	if s.OtherDiscountRate < 0 {
		s.OtherDiscountRate = 0
	}
	if s.OtherDiscountRate > 50 {
		s.OtherDiscountRate = 50
	}
}

// Expense is a monthly fixed operating expense. Amounts are monthly figures;
// period projections normalize them through a daily rate.
type Expense struct {
	ID        EntityID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Amount    float64   `gorm:"default:0" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
