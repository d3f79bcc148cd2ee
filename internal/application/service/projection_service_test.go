package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

func newProjectionService(env *testEnv) *ProjectionService {
	return NewProjectionService(env.store, env.remote, env.sync, zap.NewNop())
}

// seedMenu loads one VAT-registered recipe: unit cost 50, price 100, ten
// servings a day.
func seedMenu(env *testEnv, t *testing.T) entity.EntityID {
	t.Helper()
	ingID := entity.ConfirmedID(newUUID(t))
	recipeID := entity.ConfirmedID(newUUID(t))
	env.store.Replace(entity.Dataset{
		Ingredients: []entity.Ingredient{
			{ID: ingID, Name: "Chicken", Cost: 25, StockQty: 100},
		},
		Recipes: []entity.Recipe{
			{
				ID:          recipeID,
				Name:        "Adobo",
				BatchSize:   1,
				Price:       100,
				DailyVolume: 10,
				Ingredients: []entity.RecipeIngredient{{IngredientID: ingID, Qty: 2}},
			},
		},
		Settings: entity.Settings{IsVATRegistered: true},
	})
	return recipeID
}

func TestProjectionService_Breakdown_VATRegistered(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)

	breakdowns := svc.GetBreakdowns()
	require.Len(t, breakdowns, 1)
	b := breakdowns[0]

	assert.InDelta(t, 50, b.UnitCost, 1e-9)
	assert.InDelta(t, 1000, b.GrossSales, 1e-9)
	assert.InDelta(t, 89.2857, b.NetPriceExVAT, 0.001)
	assert.InDelta(t, 107.1428, b.TotalVAT, 0.001)
	assert.InDelta(t, 892.8571, b.NetRevenue, 0.001)
	assert.InDelta(t, 500, b.COGS, 1e-9)
	assert.InDelta(t, 392.8571, b.GrossProfit, 0.001)
}

func TestProjectionService_Breakdown_Discounts(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)
	env.store.Update(func(ds *entity.Dataset) {
		ds.Settings.IsPWDSeniorActive = true
		ds.Settings.OtherDiscountRate = 5
	})

	b := svc.GetBreakdowns()[0]
	assert.InDelta(t, 200, b.PWDDiscount, 1e-9, "20% of gross sales")
	assert.InDelta(t, 50, b.OtherDiscount, 1e-9, "5% of gross sales")
	assert.InDelta(t, 1000-107.1428-200-50, b.NetRevenue, 0.001)
}

func TestProjectionService_Projection_WeeklyOpexAsymmetry(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)
	env.store.Update(func(ds *entity.Dataset) {
		ds.Expenses = []entity.Expense{
			{ID: entity.ConfirmedID(newUUID(t)), Category: "Rent", Amount: 2400},
			{ID: entity.ConfirmedID(newUUID(t)), Category: "Utilities", Amount: 600},
		}
	})

	daily := svc.GetProjection(enum.PeriodDaily)
	weekly := svc.GetProjection(enum.PeriodWeekly)

	// Revenue figures scale with the multiplier.
	assert.InDelta(t, daily.GrossSales*7, weekly.GrossSales, 1e-6)
	assert.InDelta(t, daily.GrossProfit*7, weekly.GrossProfit, 1e-6)

	// Opex runs through the daily rate: (3000/30) * 7, not 3000 * 7.
	assert.InDelta(t, 100, daily.Opex, 1e-9)
	assert.InDelta(t, 700, weekly.Opex, 1e-9)
	assert.InDelta(t, weekly.GrossProfit-700, weekly.OperatingProfit, 1e-6)
}

func TestProjectionService_Projection_IsPureDerivation(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)

	first := svc.GetProjection(enum.PeriodMonthly)
	second := svc.GetProjection(enum.PeriodMonthly)
	assert.Equal(t, first, second, "repeated derivation over unchanged state must agree")
}

func TestProjectionService_SuggestPrice(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)

	ingID := env.store.Snapshot().Ingredients[0].ID

	// cost 33, margin 0, VAT 12% -> ceil(33 * 1.12) = ceil(36.96) = 37
	got, err := svc.SuggestPrice(&SuggestPriceInput{
		Ingredients: []RecipeIngredientInput{{IngredientID: ingID, Qty: 1.32}},
		BatchSize:   1,
		Margin:      0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 33, got.CostPerServing, 1e-9)
	assert.InDelta(t, 37, got.MenuPrice, 1e-9)

	// cost 50, margin 50 -> net 100; VAT off -> menu price 100
	env.store.Update(func(ds *entity.Dataset) { ds.Settings.IsVATRegistered = false })
	got, err = svc.SuggestPrice(&SuggestPriceInput{
		Ingredients: []RecipeIngredientInput{{IngredientID: ingID, Qty: 2}},
		BatchSize:   1,
		Margin:      50,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, got.NetPrice, 1e-9)
	assert.InDelta(t, 100, got.MenuPrice, 1e-9)
}

func TestProjectionService_SuggestPrice_MarginBounds(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)

	_, err := svc.SuggestPrice(&SuggestPriceInput{Margin: 100})
	require.Error(t, err)

	_, err = svc.SuggestPrice(&SuggestPriceInput{Margin: -1})
	require.Error(t, err)
}

func TestProjectionService_CaptureSnapshot(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC) }

	snap, err := svc.CaptureSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", snap.Date)
	assert.InDelta(t, 1000, snap.GrossSales, 1e-9)
	assert.InDelta(t, 10, snap.OrderCount, 1e-9)
	assert.False(t, snap.ID.Pending)

	// The post-capture refresh pulled the stored copy back in.
	require.Len(t, env.store.Snapshot().Snapshots, 1)

	// Same day again is a conflict.
	_, err = svc.CaptureSnapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestProjectionService_CaptureSnapshot_FailureReconciles(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	seedMenu(env, t)
	env.remote.snapshots.failCreate = true

	_, err := svc.CaptureSnapshot(context.Background())
	require.Error(t, err)

	// Reconciliation replaced the dataset with remote truth, but the menu is
	// restored from the remote collections, which are empty in this setup.
	assert.Empty(t, env.store.Snapshot().Snapshots)
}

func weekSnapshot(t *testing.T, date string, netRevenue, netProfit float64) entity.DailySnapshot {
	t.Helper()
	return entity.DailySnapshot{
		ID:         entity.ConfirmedID(newUUID(t)),
		Date:       date,
		NetRevenue: netRevenue,
		NetProfit:  netProfit,
	}
}

func TestProjectionService_WeeklySummary(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	env.store.Update(func(ds *entity.Dataset) {
		ds.Snapshots = []entity.DailySnapshot{
			weekSnapshot(t, "2025-03-10", 1000, 300),
			weekSnapshot(t, "2025-03-12", 1500, 500),
			weekSnapshot(t, "2025-03-16", 800, 100),
			weekSnapshot(t, "2025-03-17", 2000, 900), // next week
		}
	})

	summary := svc.GetWeeklySummary(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-10", summary.WeekStart)
	assert.Equal(t, 3, summary.DaysCount)
	assert.InDelta(t, 3300, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 900, summary.TotalNetProfit, 1e-9)
	assert.InDelta(t, 1100, summary.AvgDailyRevenue, 1e-9)
	assert.InDelta(t, 300, summary.AvgDailyProfit, 1e-9)
	require.NotNil(t, summary.BestDay)
	require.NotNil(t, summary.WorstDay)
	assert.Equal(t, "2025-03-12", summary.BestDay.Date)
	assert.Equal(t, "2025-03-16", summary.WorstDay.Date)
}

func TestProjectionService_WeeklySummary_Empty(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)

	summary := svc.GetWeeklySummary(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, summary.DaysCount)
	assert.Zero(t, summary.TotalRevenue)
	assert.Nil(t, summary.BestDay)
	assert.Nil(t, summary.WorstDay)
}

func TestProjectionService_WeeklySummary_StableTieOrdering(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	env.store.Update(func(ds *entity.Dataset) {
		ds.Snapshots = []entity.DailySnapshot{
			weekSnapshot(t, "2025-03-10", 1000, 500),
			weekSnapshot(t, "2025-03-11", 1000, 500),
		}
	})

	summary := svc.GetWeeklySummary(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, summary.BestDay)
	assert.Equal(t, "2025-03-10", summary.BestDay.Date, "equal profits keep insertion order")
	assert.Equal(t, "2025-03-11", summary.WorstDay.Date)
}

func TestProjectionService_MonthlySummary(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)
	env.store.Update(func(ds *entity.Dataset) {
		ds.Snapshots = []entity.DailySnapshot{
			{ID: entity.ConfirmedID(newUUID(t)), Date: "2025-03-10", NetRevenue: 1000, GrossProfit: 400, NetProfit: 300, TotalVAT: 107, PWDDiscount: 50, OtherDiscount: 10},
			{ID: entity.ConfirmedID(newUUID(t)), Date: "2025-03-11", NetRevenue: 1000, GrossProfit: 400, NetProfit: 300, TotalVAT: 107, PWDDiscount: 50, OtherDiscount: 10},
			{ID: entity.ConfirmedID(newUUID(t)), Date: "2025-04-01", NetRevenue: 9999, GrossProfit: 1, NetProfit: 1},
		}
	})

	summary := svc.GetMonthlySummary("2025-03")
	assert.Equal(t, 2, summary.DaysCount)
	assert.InDelta(t, 2000, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 800, summary.TotalGross, 1e-9)
	assert.InDelta(t, 600, summary.TotalNetProfit, 1e-9)
	assert.InDelta(t, 120, summary.TotalDiscounts, 1e-9)
	assert.InDelta(t, 214, summary.TotalVAT, 1e-9)
	assert.InDelta(t, 40, summary.AvgMargin, 1e-9)
}

func TestProjectionService_MonthlySummary_Empty(t *testing.T) {
	env := newTestEnv()
	svc := newProjectionService(env)

	summary := svc.GetMonthlySummary("2025-03")
	assert.Equal(t, 0, summary.DaysCount)
	assert.Zero(t, summary.AvgMargin)
}
