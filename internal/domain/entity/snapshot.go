package entity

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotDateLayout is the calendar-day key format for daily snapshots.
const SnapshotDateLayout = "2006-01-02"

// DailySnapshot is an immutable record of one day's projected financials.
// Snapshots are appended by explicit capture and never updated or deleted.
type DailySnapshot struct {
	ID              EntityID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Date            string    `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	GrossSales      float64   `gorm:"default:0" json:"gross_sales"`
	TotalVAT        float64   `gorm:"default:0" json:"total_vat"`
	PWDDiscount     float64   `gorm:"default:0" json:"pwd_discount"`
	OtherDiscount   float64   `gorm:"default:0" json:"other_discount"`
	NetRevenue      float64   `gorm:"default:0" json:"net_revenue"`
	COGS            float64   `gorm:"default:0" json:"cogs"`
	GrossProfit     float64   `gorm:"default:0" json:"gross_profit"`
	Opex            float64   `gorm:"default:0" json:"opex"`
	NetProfit       float64   `gorm:"default:0" json:"net_profit"`
	OrderCount      float64   `gorm:"default:0" json:"order_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the table name for the DailySnapshot model
func (DailySnapshot) TableName() string {
	return "daily_snapshots"
}

// Day parses the snapshot's calendar-day key.
func (s *DailySnapshot) Day() (time.Time, error) {
	return time.Parse(SnapshotDateLayout, s.Date)
}
