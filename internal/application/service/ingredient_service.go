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

// IngredientService handles optimistic ingredient mutations
type IngredientService struct {
	store *state.Store
	m     *mutator[entity.Ingredient]
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(store *state.Store, remote repository.RemoteService, rec reconciler, logger *zap.Logger) *IngredientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngredientService{
		store: store,
		m: &mutator[entity.Ingredient]{
			resource: "Ingredient",
			store:    store,
			remote:   remote.Ingredients(),
			rec:      rec,
			logger:   logger,
			items:    func(ds *entity.Dataset) *[]entity.Ingredient { return &ds.Ingredients },
			id:       func(i entity.Ingredient) entity.EntityID { return i.ID },
			setID:    func(i *entity.Ingredient, id entity.EntityID) { i.ID = id },
		},
	}
}

// ListIngredients returns the current in-memory ingredient collection
func (s *IngredientService) ListIngredients() []entity.Ingredient {
	return s.store.Snapshot().Ingredients
}

// GetIngredient returns one ingredient from the current dataset
func (s *IngredientService) GetIngredient(id entity.EntityID) (*entity.Ingredient, error) {
	ds := s.store.Snapshot()
	ing, ok := ds.IngredientByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Ingredient")
	}
	return ing, nil
}

// CreateIngredientInput represents the create ingredient input
type CreateIngredientInput struct {
	Name        string
	StockQty    float64
	MinStock    float64
	Cost        float64
	PackageCost float64
	PackageQty  float64
	ShippingFee float64
	PriceBuffer float64
}

// CreateIngredient optimistically inserts the ingredient and confirms it
// against the remote store.
func (s *IngredientService) CreateIngredient(ctx context.Context, input *CreateIngredientInput) (entity.Ingredient, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entity.Ingredient{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if input.StockQty < 0 {
		return entity.Ingredient{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "stock_qty", Message: "Stock quantity cannot be negative"},
		})
	}

	ing := entity.Ingredient{
		Name:        strings.TrimSpace(input.Name),
		StockQty:    input.StockQty,
		MinStock:    input.MinStock,
		Cost:        input.Cost,
		PackageCost: input.PackageCost,
		PackageQty:  input.PackageQty,
		ShippingFee: input.ShippingFee,
		PriceBuffer: input.PriceBuffer,
	}
	ing.RecomputeCost()

	return s.m.create(ctx, ing)
}

// UpdateIngredientInput represents the partial update input
type UpdateIngredientInput struct {
	Name        *string
	StockQty    *float64
	MinStock    *float64
	Cost        *float64
	PackageCost *float64
	PackageQty  *float64
	ShippingFee *float64
	PriceBuffer *float64
}

// UpdateIngredient merges the partial edit into memory synchronously. When a
// pricing input changes the derived cost is recomputed locally before the
// round trip returns, so the optimistic view stays numerically consistent.
func (s *IngredientService) UpdateIngredient(ctx context.Context, id entity.EntityID, input *UpdateIngredientInput) (entity.Ingredient, error) {
	fields := map[string]interface{}{}
	pricingChanged := input.PackageCost != nil || input.PackageQty != nil ||
		input.ShippingFee != nil || input.PriceBuffer != nil

	apply := func(ing *entity.Ingredient) {
		if input.Name != nil {
			ing.Name = *input.Name
			fields["name"] = *input.Name
		}
		if input.StockQty != nil {
			qty := *input.StockQty
			if qty < 0 {
				qty = 0
			}
			ing.StockQty = qty
			fields["stock_qty"] = qty
		}
		if input.MinStock != nil {
			ing.MinStock = *input.MinStock
			fields["min_stock"] = *input.MinStock
		}
		if input.Cost != nil {
			ing.Cost = *input.Cost
			fields["cost"] = *input.Cost
		}
		if input.PackageCost != nil {
			ing.PackageCost = *input.PackageCost
			fields["package_cost"] = *input.PackageCost
		}
		if input.PackageQty != nil {
			ing.PackageQty = *input.PackageQty
			fields["package_qty"] = *input.PackageQty
		}
		if input.ShippingFee != nil {
			ing.ShippingFee = *input.ShippingFee
			fields["shipping_fee"] = *input.ShippingFee
		}
		if input.PriceBuffer != nil {
			ing.PriceBuffer = *input.PriceBuffer
			fields["price_buffer"] = *input.PriceBuffer
		}
		if pricingChanged {
			ing.RecomputeCost()
			fields["cost"] = ing.Cost
		}
	}

	return s.m.update(ctx, id, apply, fields)
}

// DeleteIngredient removes the ingredient optimistically
func (s *IngredientService) DeleteIngredient(ctx context.Context, id entity.EntityID) error {
	return s.m.delete(ctx, id)
}

// DuplicateIngredient copies an ingredient under a "(Copy)" name
func (s *IngredientService) DuplicateIngredient(ctx context.Context, id entity.EntityID) (entity.Ingredient, error) {
	return s.m.duplicate(ctx, id, func(src entity.Ingredient) entity.Ingredient {
		src.Name = src.Name + " (Copy)"
		return src
	})
}
