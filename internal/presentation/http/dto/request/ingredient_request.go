package request

// CreateIngredientRequest represents the create ingredient payload
type CreateIngredientRequest struct {
	Name        string  `json:"name" binding:"required"`
	StockQty    float64 `json:"stock_qty"`
	MinStock    float64 `json:"min_stock"`
	Cost        float64 `json:"cost"`
	PackageCost float64 `json:"package_cost"`
	PackageQty  float64 `json:"package_qty"`
	ShippingFee float64 `json:"shipping_fee"`
	PriceBuffer float64 `json:"price_buffer"`
}

// UpdateIngredientRequest represents the partial ingredient update payload.
// Absent fields are left untouched.
type UpdateIngredientRequest struct {
	Name        *string  `json:"name"`
	StockQty    *float64 `json:"stock_qty"`
	MinStock    *float64 `json:"min_stock"`
	Cost        *float64 `json:"cost"`
	PackageCost *float64 `json:"package_cost"`
	PackageQty  *float64 `json:"package_qty"`
	ShippingFee *float64 `json:"shipping_fee"`
	PriceBuffer *float64 `json:"price_buffer"`
}
