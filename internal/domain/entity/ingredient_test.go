package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kusinapp/kusina-api/internal/domain/enum"
)

func TestIngredient_RecomputeCost(t *testing.T) {
	ing := Ingredient{
		PackageCost: 500,
		PackageQty:  20,
		ShippingFee: 50,
		PriceBuffer: 10,
	}
	ing.RecomputeCost()
	assert.InDelta(t, 30, ing.Cost, 1e-9, "(500*1.10 + 50) / 20")
}

func TestIngredient_RecomputeCost_KeepsManualCostWithoutPackageQty(t *testing.T) {
	ing := Ingredient{Cost: 12.5, PackageCost: 500}
	ing.RecomputeCost()
	assert.InDelta(t, 12.5, ing.Cost, 1e-9)
}

func TestIngredient_StockStatus(t *testing.T) {
	tests := []struct {
		name     string
		stockQty float64
		minStock float64
		status   enum.StockStatus
		width    float64
	}{
		{"empty stock is critical", 0, 10, enum.StockCritical, 100},
		{"negative stock is critical", -1, 10, enum.StockCritical, 100},
		{"no threshold configured", 5, 0, enum.StockGood, 100},
		{"at half the threshold", 5, 10, enum.StockLow, 50},
		{"width floors at ten", 0.5, 10, enum.StockLow, 10},
		{"at the threshold", 10, 10, enum.StockLow, 100},
		{"inside the reorder band", 11, 10, enum.StockReorder, 11.0 / 12.0 * 100},
		{"at the reorder edge", 12, 10, enum.StockReorder, 100},
		{"above the reorder band", 12.1, 10, enum.StockGood, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := Ingredient{StockQty: tt.stockQty, MinStock: tt.minStock}
			status, width := ing.StockStatus()
			assert.Equal(t, tt.status, status)
			assert.InDelta(t, tt.width, width, 1e-9)
		})
	}
}
