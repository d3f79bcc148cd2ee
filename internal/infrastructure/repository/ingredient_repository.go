package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) repository.Collection[entity.Ingredient] {
	return &ingredientRepository{db: db}
}

// List returns all ingredients owned by the session user
func (r *ingredientRepository) List(ctx context.Context) ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	err := r.db.WithContext(ctx).Scopes(UserScope(ctx)).Order("created_at ASC").Find(&out).Error
	return out, err
}

// Create persists the ingredient under a freshly assigned authoritative id.
// Pending placeholder ids never reach a row.
func (r *ingredientRepository) Create(ctx context.Context, item entity.Ingredient) (entity.Ingredient, error) {
	item.ID = entity.ConfirmedID(uuid.New())
	if userID, ok := GetUserID(ctx); ok {
		item.UserID = userID
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return entity.Ingredient{}, err
	}
	return item, nil
}

// Update applies a partial field set
func (r *ingredientRepository) Update(ctx context.Context, id entity.EntityID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&entity.Ingredient{}).Scopes(UserScope(ctx)).
		Where("id = ?", id.UUID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Ingredient")
	}
	return nil
}

// Delete removes the ingredient
func (r *ingredientRepository) Delete(ctx context.Context, id entity.EntityID) error {
	res := r.db.WithContext(ctx).Scopes(UserScope(ctx)).
		Where("id = ?", id.UUID).Delete(&entity.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Ingredient")
	}
	return nil
}
