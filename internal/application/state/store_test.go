package state

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
)

func TestStore_SnapshotIsIsolated(t *testing.T) {
	store := NewStore()
	store.Update(func(ds *entity.Dataset) {
		ds.Ingredients = append(ds.Ingredients, entity.Ingredient{
			ID:   entity.ConfirmedID(uuid.New()),
			Name: "Flour",
		})
	})

	snap := store.Snapshot()
	require.Len(t, snap.Ingredients, 1)
	snap.Ingredients[0].Name = "changed"

	assert.Equal(t, "Flour", store.Snapshot().Ingredients[0].Name, "a snapshot edit must not leak into the store")
}

func TestStore_SnapshotDeepCopiesRecipeRefs(t *testing.T) {
	store := NewStore()
	ingID := entity.ConfirmedID(uuid.New())
	store.Update(func(ds *entity.Dataset) {
		ds.Recipes = append(ds.Recipes, entity.Recipe{
			ID:          entity.ConfirmedID(uuid.New()),
			Name:        "Adobo",
			BatchSize:   4,
			Ingredients: []entity.RecipeIngredient{{IngredientID: ingID, Qty: 2}},
		})
	})

	snap := store.Snapshot()
	snap.Recipes[0].Ingredients[0].Qty = 99

	assert.InDelta(t, 2, store.Snapshot().Recipes[0].Ingredients[0].Qty, 1e-9)
}

func TestStore_UpdatesApplyInOrder(t *testing.T) {
	store := NewStore()
	id := entity.ConfirmedID(uuid.New())
	store.Update(func(ds *entity.Dataset) {
		ds.Ingredients = append(ds.Ingredients, entity.Ingredient{ID: id, StockQty: 10})
	})
	store.Update(func(ds *entity.Dataset) {
		ing, ok := ds.IngredientByID(id)
		require.True(t, ok)
		ing.StockQty -= 3
	})
	store.Update(func(ds *entity.Dataset) {
		ing, ok := ds.IngredientByID(id)
		require.True(t, ok)
		ing.StockQty -= 2
	})

	assert.InDelta(t, 5, store.Snapshot().Ingredients[0].StockQty, 1e-9)
}

func TestStore_ReplaceNormalizes(t *testing.T) {
	store := NewStore()
	store.Replace(entity.Dataset{
		Recipes: []entity.Recipe{{ID: entity.ConfirmedID(uuid.New()), BatchSize: 0}},
		Settings: entity.Settings{
			OtherDiscountRate: 80,
		},
	})

	ds := store.Snapshot()
	assert.NotNil(t, ds.Ingredients)
	assert.Equal(t, 1, ds.Recipes[0].BatchSize)
	assert.InDelta(t, 50, ds.Settings.OtherDiscountRate, 1e-9)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	store.Update(func(ds *entity.Dataset) {
		ds.Ingredients = append(ds.Ingredients, entity.Ingredient{ID: entity.ConfirmedID(uuid.New())})
		ds.LastSync = 1234
	})

	store.Clear()

	ds := store.Snapshot()
	assert.Empty(t, ds.Ingredients)
	assert.NotNil(t, ds.Ingredients, "cleared collections stay non-nil")
	assert.Zero(t, ds.LastSync)
}
