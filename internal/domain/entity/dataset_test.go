package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_NormalizeDefaults(t *testing.T) {
	ds := Dataset{
		Recipes: []Recipe{
			{ID: ConfirmedID(uuid.New()), BatchSize: 0, DailyVolume: -5},
		},
		Ingredients: []Ingredient{
			{ID: ConfirmedID(uuid.New()), StockQty: -2},
		},
		Settings: Settings{OtherDiscountRate: -10},
	}
	ds.Normalize()

	assert.NotNil(t, ds.Expenses)
	assert.NotNil(t, ds.Snapshots)
	assert.Equal(t, 1, ds.Recipes[0].BatchSize)
	assert.Zero(t, ds.Recipes[0].DailyVolume)
	assert.NotNil(t, ds.Recipes[0].Ingredients)
	assert.Zero(t, ds.Ingredients[0].StockQty)
	assert.Zero(t, ds.Settings.OtherDiscountRate)
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	ingID := ConfirmedID(uuid.New())
	ds := Dataset{
		Ingredients: []Ingredient{{ID: ingID, Name: "Flour", StockQty: 10}},
		Recipes: []Recipe{
			{
				ID:          ConfirmedID(uuid.New()),
				Name:        "Bread",
				Ingredients: []RecipeIngredient{{IngredientID: ingID, Qty: 3}},
			},
		},
		LastSync: 42,
	}

	clone := ds.Clone()
	clone.Ingredients[0].Name = "changed"
	clone.Recipes[0].Ingredients[0].Qty = 99

	assert.Equal(t, "Flour", ds.Ingredients[0].Name)
	assert.InDelta(t, 3, ds.Recipes[0].Ingredients[0].Qty, 1e-9)
	assert.Equal(t, int64(42), clone.LastSync)
}

func TestDataset_LookupsCompareByUUIDOnly(t *testing.T) {
	base := uuid.New()
	ds := Dataset{
		Ingredients: []Ingredient{{ID: EntityID{UUID: base, Pending: true}, Name: "Optimistic"}},
	}

	got, ok := ds.IngredientByID(ConfirmedID(base))
	require.True(t, ok, "a pending entry is still addressable by its uuid")
	assert.Equal(t, "Optimistic", got.Name)

	_, ok = ds.RecipeByID(ConfirmedID(uuid.New()))
	assert.False(t, ok)
}
