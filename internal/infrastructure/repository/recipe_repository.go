package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) repository.Collection[entity.Recipe] {
	return &recipeRepository{db: db}
}

// List returns all recipes owned by the session user
func (r *recipeRepository) List(ctx context.Context) ([]entity.Recipe, error) {
	var out []entity.Recipe
	err := r.db.WithContext(ctx).Scopes(UserScope(ctx)).Order("created_at ASC").Find(&out).Error
	return out, err
}

// Create persists the recipe under a freshly assigned authoritative id
func (r *recipeRepository) Create(ctx context.Context, item entity.Recipe) (entity.Recipe, error) {
	item.ID = entity.ConfirmedID(uuid.New())
	if userID, ok := GetUserID(ctx); ok {
		item.UserID = userID
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return entity.Recipe{}, err
	}
	return item, nil
}

// Update applies a partial field set. The ingredient reference list is stored
// as a JSON column, so a replacement list is marshaled before the map update
// reaches the database.
func (r *recipeRepository) Update(ctx context.Context, id entity.EntityID, fields map[string]interface{}) error {
	if refs, ok := fields["ingredients"]; ok {
		encoded, err := json.Marshal(refs)
		if err != nil {
			return err
		}
		fields["ingredients"] = string(encoded)
	}

	res := r.db.WithContext(ctx).Model(&entity.Recipe{}).Scopes(UserScope(ctx)).
		Where("id = ?", id.UUID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Recipe")
	}
	return nil
}

// Delete removes the recipe
func (r *recipeRepository) Delete(ctx context.Context, id entity.EntityID) error {
	res := r.db.WithContext(ctx).Scopes(UserScope(ctx)).
		Where("id = ?", id.UUID).Delete(&entity.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("Recipe")
	}
	return nil
}
