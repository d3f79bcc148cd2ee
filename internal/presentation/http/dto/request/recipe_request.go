package request

// RecipeIngredientRequest references an ingredient with a per-batch quantity
type RecipeIngredientRequest struct {
	IngredientID string  `json:"ingredient_id" binding:"required,uuid"`
	Qty          float64 `json:"qty"`
}

// CreateRecipeRequest represents the create recipe payload
type CreateRecipeRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Category    string                    `json:"category"`
	BatchSize   int                       `json:"batch_size"`
	Margin      float64                   `json:"margin"`
	Price       float64                   `json:"price"`
	DailyVolume float64                   `json:"daily_volume"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

// UpdateRecipeRequest represents the partial recipe update payload. A non-nil
// ingredients list replaces the whole reference list.
type UpdateRecipeRequest struct {
	Name        *string                    `json:"name"`
	Category    *string                    `json:"category"`
	BatchSize   *int                       `json:"batch_size"`
	Margin      *float64                   `json:"margin"`
	Price       *float64                   `json:"price"`
	DailyVolume *float64                   `json:"daily_volume"`
	Ingredients *[]RecipeIngredientRequest `json:"ingredients"`
}

// SuggestPriceRequest represents the price suggestion payload
type SuggestPriceRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
	BatchSize   int                       `json:"batch_size"`
	Margin      float64                   `json:"margin"`
}

// CookRequest represents the production run payload
type CookRequest struct {
	Portions float64 `json:"portions"`
}
