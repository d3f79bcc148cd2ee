package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// RecipeService handles optimistic recipe mutations
type RecipeService struct {
	store *state.Store
	m     *mutator[entity.Recipe]
}

// NewRecipeService creates a new recipe service
func NewRecipeService(store *state.Store, remote repository.RemoteService, rec reconciler, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		store: store,
		m: &mutator[entity.Recipe]{
			resource: "Recipe",
			store:    store,
			remote:   remote.Recipes(),
			rec:      rec,
			logger:   logger,
			items:    func(ds *entity.Dataset) *[]entity.Recipe { return &ds.Recipes },
			id:       func(r entity.Recipe) entity.EntityID { return r.ID },
			setID:    func(r *entity.Recipe, id entity.EntityID) { r.ID = id },
		},
	}
}

// ListRecipes returns the current in-memory recipe collection
func (s *RecipeService) ListRecipes() []entity.Recipe {
	return s.store.Snapshot().Recipes
}

// GetRecipe returns one recipe from the current dataset
func (s *RecipeService) GetRecipe(id entity.EntityID) (*entity.Recipe, error) {
	ds := s.store.Snapshot()
	r, ok := ds.RecipeByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Recipe")
	}
	return r, nil
}

// RecipeIngredientInput references an ingredient with a per-batch quantity
type RecipeIngredientInput struct {
	IngredientID entity.EntityID
	Qty          float64
}

// CreateRecipeInput represents the create recipe input
type CreateRecipeInput struct {
	Name        string
	Category    string
	BatchSize   int
	Margin      float64
	Price       float64
	DailyVolume float64
	Ingredients []RecipeIngredientInput
}

// CreateRecipe optimistically inserts the recipe and confirms it against the
// remote store.
func (s *RecipeService) CreateRecipe(ctx context.Context, input *CreateRecipeInput) (entity.Recipe, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entity.Recipe{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if input.DailyVolume < 0 {
		return entity.Recipe{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "daily_volume", Message: "Daily volume cannot be negative"},
		})
	}

	batchSize := input.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	refs := make([]entity.RecipeIngredient, 0, len(input.Ingredients))
	for _, ref := range input.Ingredients {
		refs = append(refs, entity.RecipeIngredient{IngredientID: ref.IngredientID, Qty: ref.Qty})
	}

	recipe := entity.Recipe{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		BatchSize:   batchSize,
		Margin:      input.Margin,
		Price:       input.Price,
		DailyVolume: input.DailyVolume,
		Ingredients: refs,
	}

	return s.m.create(ctx, recipe)
}

// UpdateRecipeInput represents the partial update input. A non-nil
// Ingredients slice replaces the whole reference list.
type UpdateRecipeInput struct {
	Name        *string
	Category    *string
	BatchSize   *int
	Margin      *float64
	Price       *float64
	DailyVolume *float64
	Ingredients *[]RecipeIngredientInput
}

// UpdateRecipe merges the partial edit into memory synchronously, then issues
// the partial update remotely.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id entity.EntityID, input *UpdateRecipeInput) (entity.Recipe, error) {
	fields := map[string]interface{}{}

	apply := func(r *entity.Recipe) {
		if input.Name != nil {
			r.Name = *input.Name
			fields["name"] = *input.Name
		}
		if input.Category != nil {
			r.Category = *input.Category
			fields["category"] = *input.Category
		}
		if input.BatchSize != nil {
			size := *input.BatchSize
			if size < 1 {
				size = 1
			}
			r.BatchSize = size
			fields["batch_size"] = size
		}
		if input.Margin != nil {
			r.Margin = *input.Margin
			fields["margin"] = *input.Margin
		}
		if input.Price != nil {
			r.Price = *input.Price
			fields["price"] = *input.Price
		}
		if input.DailyVolume != nil {
			volume := *input.DailyVolume
			if volume < 0 {
				volume = 0
			}
			r.DailyVolume = volume
			fields["daily_volume"] = volume
		}
		if input.Ingredients != nil {
			refs := make([]entity.RecipeIngredient, 0, len(*input.Ingredients))
			for _, ref := range *input.Ingredients {
				refs = append(refs, entity.RecipeIngredient{IngredientID: ref.IngredientID, Qty: ref.Qty})
			}
			r.Ingredients = refs
			fields["ingredients"] = refs
		}
	}

	return s.m.update(ctx, id, apply, fields)
}

// DeleteRecipe removes the recipe optimistically
func (s *RecipeService) DeleteRecipe(ctx context.Context, id entity.EntityID) error {
	return s.m.delete(ctx, id)
}

// DuplicateRecipe copies a recipe under a "(Copy)" name
func (s *RecipeService) DuplicateRecipe(ctx context.Context, id entity.EntityID) (entity.Recipe, error) {
	return s.m.duplicate(ctx, id, func(src entity.Recipe) entity.Recipe {
		src.Name = src.Name + " (Copy)"
		refs := make([]entity.RecipeIngredient, len(src.Ingredients))
		copy(refs, src.Ingredients)
		src.Ingredients = refs
		return src
	})
}
