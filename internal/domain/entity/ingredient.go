package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
)

// Ingredient represents a stocked ingredient with its pricing inputs. Cost is
// derived from the pricing inputs whenever any of them changes, or set
// manually when no package pricing is configured.
type Ingredient struct {
	ID          EntityID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	StockQty    float64   `gorm:"default:0" json:"stock_qty"`
	MinStock    float64   `gorm:"default:0" json:"min_stock"`
	Cost        float64   `gorm:"default:0" json:"cost"`
	PackageCost float64   `gorm:"default:0" json:"package_cost"`
	PackageQty  float64   `gorm:"default:0" json:"package_qty"`
	ShippingFee float64   `gorm:"default:0" json:"shipping_fee"`
	PriceBuffer float64   `gorm:"default:0" json:"price_buffer"` // percent on top of package cost
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}

// RecomputeCost derives the unit cost from the pricing inputs:
//
//	cost = (packageCost * (1 + priceBuffer/100) + shippingFee) / packageQty
//
// The cost is left untouched when packageQty is not positive.
func (i *Ingredient) RecomputeCost() {
	if i.PackageQty <= 0 {
		return
	}
	i.Cost = (i.PackageCost*(1+i.PriceBuffer/100) + i.ShippingFee) / i.PackageQty
}

// StockStatus classifies the current stock level and returns the indicator
// width (0-100) shown next to it. Reporting only; never mutates stock.
func (i *Ingredient) StockStatus() (enum.StockStatus, float64) {
	if i.StockQty <= 0 {
		return enum.StockCritical, 100
	}
	if i.MinStock <= 0 {
		return enum.StockGood, 100
	}
	if i.StockQty <= i.MinStock {
		width := i.StockQty / i.MinStock * 100
		if width < 10 {
			width = 10
		}
		return enum.StockLow, width
	}
	if i.StockQty <= 1.2*i.MinStock {
		return enum.StockReorder, i.StockQty / (1.2 * i.MinStock) * 100
	}
	return enum.StockGood, 100
}
