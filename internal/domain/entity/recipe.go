package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecipeIngredient references a stocked ingredient by id with the quantity a
// full batch consumes. Ingredients are referenced, never embedded.
type RecipeIngredient struct {
	IngredientID EntityID `json:"ingredient_id"`
	Qty          float64  `json:"qty"`
}

// Recipe represents a menu item produced in batches. BatchSize is the number
// of servings one production run yields; unit cost and stock consumption both
// scale relative to it.
type Recipe struct {
	ID          EntityID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string             `gorm:"size:255;not null" json:"name"`
	Category    string             `gorm:"size:100" json:"category"`
	BatchSize   int                `gorm:"default:1" json:"batch_size"`
	Margin      float64            `gorm:"default:0" json:"margin"` // percent
	Price       float64            `gorm:"default:0" json:"price"`
	DailyVolume float64            `gorm:"default:0" json:"daily_volume"`
	Ingredients []RecipeIngredient `gorm:"serializer:json" json:"ingredients"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// EffectiveBatchSize never drops below one serving per run.
func (r *Recipe) EffectiveBatchSize() int {
	if r.BatchSize < 1 {
		return 1
	}
	return r.BatchSize
}
