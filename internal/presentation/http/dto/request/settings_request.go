package request

// UpdateSettingsRequest represents the settings update payload
type UpdateSettingsRequest struct {
	IsVATRegistered   *bool    `json:"is_vat_registered"`
	IsPWDSeniorActive *bool    `json:"is_pwd_senior_active"`
	OtherDiscountRate *float64 `json:"other_discount_rate"`
	DailySalesTarget  *float64 `json:"daily_sales_target"`
}

// CreateExpenseRequest represents the create expense payload
type CreateExpenseRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount"`
}

// UpdateExpenseRequest represents the partial expense update payload
type UpdateExpenseRequest struct {
	Category *string  `json:"category"`
	Amount   *float64 `json:"amount"`
}
