package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

func newIngredientService(env *testEnv) *IngredientService {
	return NewIngredientService(env.store, env.remote, env.sync, zap.NewNop())
}

func TestIngredientService_Create_ConfirmsAuthoritativeID(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{
		Name:     "Flour",
		StockQty: 10,
	})
	require.NoError(t, err)
	assert.False(t, ing.ID.Pending, "a confirmed create must carry the authoritative id")

	ds := env.store.Snapshot()
	require.Len(t, ds.Ingredients, 1)
	assert.True(t, ds.Ingredients[0].ID.Equal(ing.ID))
	assert.False(t, ds.Ingredients[0].ID.Pending, "no pending id may survive a confirmed create")
}

func TestIngredientService_Create_FailureRevertsToRemoteTruth(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)
	env.remote.ingredients.failCreate = true

	_, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "Flour"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 502, appErr.Code)

	// The reconciliation refresh restored the (empty) remote truth.
	assert.Empty(t, env.store.Snapshot().Ingredients)
}

func TestIngredientService_Create_Validation(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	_, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "  "})
	require.Error(t, err)

	_, err = svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "Flour", StockQty: -1})
	require.Error(t, err)
}

func TestIngredientService_Create_DerivesCostFromPackagePricing(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	// (500 * 1.10 + 50) / 20 = 30
	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{
		Name:        "Chicken",
		PackageCost: 500,
		PackageQty:  20,
		ShippingFee: 50,
		PriceBuffer: 10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 30, ing.Cost, 1e-9)
}

func TestIngredientService_Update_RecomputesCostOnPricingChange(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{
		Name:        "Chicken",
		PackageCost: 500,
		PackageQty:  20,
	})
	require.NoError(t, err)

	newCost := 1000.0
	updated, err := svc.UpdateIngredient(context.Background(), ing.ID, &UpdateIngredientInput{
		PackageCost: &newCost,
	})
	require.NoError(t, err)
	assert.InDelta(t, 50, updated.Cost, 1e-9)

	ds := env.store.Snapshot()
	got, ok := ds.IngredientByID(ing.ID)
	require.True(t, ok)
	assert.InDelta(t, 50, got.Cost, 1e-9, "the optimistic view must already carry the derived cost")
}

func TestIngredientService_Update_FailureRevertsToRemoteTruth(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "Flour"})
	require.NoError(t, err)

	env.remote.ingredients.failUpdate = true
	name := "Bread Flour"
	_, err = svc.UpdateIngredient(context.Background(), ing.ID, &UpdateIngredientInput{Name: &name})
	require.Error(t, err)

	ds := env.store.Snapshot()
	got, ok := ds.IngredientByID(ing.ID)
	require.True(t, ok)
	assert.Equal(t, "Flour", got.Name, "reconciliation must discard the unconfirmed edit")
}

func TestIngredientService_Update_NotFound(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	name := "Ghost"
	_, err := svc.UpdateIngredient(context.Background(), entity.ConfirmedID(newUUID(t)), &UpdateIngredientInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestIngredientService_Delete_FailureRestoresEntity(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "Flour"})
	require.NoError(t, err)

	env.remote.ingredients.failDelete = true
	err = svc.DeleteIngredient(context.Background(), ing.ID)
	require.Error(t, err)

	ds := env.store.Snapshot()
	_, ok := ds.IngredientByID(ing.ID)
	assert.True(t, ok, "a failed delete must be undone by reconciliation")
}

func TestIngredientService_Delete_Success(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "Flour"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteIngredient(context.Background(), ing.ID))
	assert.Empty(t, env.store.Snapshot().Ingredients)
}

func TestIngredientService_Duplicate(t *testing.T) {
	env := newTestEnv()
	svc := newIngredientService(env)

	ing, err := svc.CreateIngredient(context.Background(), &CreateIngredientInput{Name: "Flour", Cost: 12})
	require.NoError(t, err)

	dup, err := svc.DuplicateIngredient(context.Background(), ing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour (Copy)", dup.Name)
	assert.InDelta(t, 12, dup.Cost, 1e-9)
	assert.False(t, dup.ID.Equal(ing.ID), "the copy gets its own identity")

	assert.Len(t, env.store.Snapshot().Ingredients, 2)
}
