package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// StockService applies ingredient depletion when a recipe is produced and
// reports stock levels.
type StockService struct {
	store  *state.Store
	remote repository.RemoteService
	rec    reconciler
	logger *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(store *state.Store, remote repository.RemoteService, rec reconciler, logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		store:  store,
		remote: remote,
		rec:    rec,
		logger: logger,
	}
}

// IngredientDepletion records one ingredient's share of a cook.
type IngredientDepletion struct {
	IngredientID entity.EntityID `json:"ingredient_id"`
	Name         string          `json:"name"`
	Consumed     float64         `json:"consumed"`
	Remaining    float64         `json:"remaining"`
}

// CookResult summarizes a production run.
type CookResult struct {
	RecipeID  entity.EntityID       `json:"recipe_id"`
	Portions  float64               `json:"portions"`
	Depletion []IngredientDepletion `json:"depletion"`
}

// Cook depletes the recipe's ingredients for the given number of portions.
// All ingredient updates land in the dataset as a single batch; one remote
// update is issued per affected ingredient afterwards. Stock never drops
// below zero. There is no cross-ingredient transaction: a persist failure
// does not roll back ingredients already applied, but it does end in a
// reconciliation refresh so the dataset converges back to remote truth.
func (s *StockService) Cook(ctx context.Context, recipeID entity.EntityID, portions float64) (*CookResult, error) {
	if portions < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "portions", Message: "Portions cannot be negative"},
		})
	}

	result := &CookResult{RecipeID: recipeID, Portions: portions}
	found := false

	s.store.Update(func(ds *entity.Dataset) {
		recipe, ok := ds.RecipeByID(recipeID)
		if !ok {
			return
		}
		found = true

		ratio := portions / float64(recipe.EffectiveBatchSize())
		for _, ref := range recipe.Ingredients {
			ing, ok := ds.IngredientByID(ref.IngredientID)
			if !ok {
				continue
			}
			needed := ref.Qty * ratio
			remaining := ing.StockQty - needed
			if remaining < 0 {
				remaining = 0
			}
			consumed := ing.StockQty - remaining
			ing.StockQty = remaining

			result.Depletion = append(result.Depletion, IngredientDepletion{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Consumed:     consumed,
				Remaining:    remaining,
			})
		}
	})
	if !found {
		return nil, apperror.NewNotFoundError("Recipe")
	}

	failures := 0
	for _, d := range result.Depletion {
		err := s.remote.Ingredients().Update(ctx, d.IngredientID, map[string]interface{}{
			"stock_qty": d.Remaining,
		})
		if err != nil {
			failures++
			s.logger.Warn("stock persist failed",
				zap.String("ingredient", d.Name),
				zap.Error(err),
			)
		}
	}
	if failures > 0 {
		s.rec.Reconcile(ctx)
		return nil, apperror.NewMutationError("Ingredient stock", "update", nil)
	}

	return result, nil
}

// StockLevel is one row of the stock report.
type StockLevel struct {
	IngredientID   entity.EntityID  `json:"ingredient_id"`
	Name           string           `json:"name"`
	StockQty       float64          `json:"stock_qty"`
	MinStock       float64          `json:"min_stock"`
	Status         enum.StockStatus `json:"status"`
	IndicatorWidth float64          `json:"indicator_width"`
}

// StockReport classifies every ingredient's stock level. Reporting only;
// nothing is mutated.
func (s *StockService) StockReport() []StockLevel {
	ds := s.store.Snapshot()
	out := make([]StockLevel, 0, len(ds.Ingredients))
	for i := range ds.Ingredients {
		ing := &ds.Ingredients[i]
		status, width := ing.StockStatus()
		out = append(out, StockLevel{
			IngredientID:   ing.ID,
			Name:           ing.Name,
			StockQty:       ing.StockQty,
			MinStock:       ing.MinStock,
			Status:         status,
			IndicatorWidth: width,
		})
	}
	return out
}
