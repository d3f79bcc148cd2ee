package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
	"github.com/kusinapp/kusina-api/internal/domain/repository"
	"github.com/kusinapp/kusina-api/pkg/apperror"
)

// ProjectionService derives financial metrics from the current dataset. Every
// call recomputes from scratch over a dataset snapshot; there is no cached
// derived state.
type ProjectionService struct {
	store  *state.Store
	remote repository.RemoteService
	sync   *SyncService
	logger *zap.Logger
	now    func() time.Time
}

// NewProjectionService creates a new projection service
func NewProjectionService(store *state.Store, remote repository.RemoteService, sync *SyncService, logger *zap.Logger) *ProjectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectionService{
		store:  store,
		remote: remote,
		sync:   sync,
		logger: logger,
		now:    time.Now,
	}
}

// RecipeBreakdown holds the per-recipe financials at the recipe's daily
// volume. Price is VAT-inclusive when the business is registered.
type RecipeBreakdown struct {
	RecipeID      entity.EntityID `json:"recipe_id"`
	Name          string          `json:"name"`
	UnitCost      float64         `json:"unit_cost"`
	GrossSales    float64         `json:"gross_sales"`
	NetPriceExVAT float64         `json:"net_price_ex_vat"`
	VATPerUnit    float64         `json:"vat_per_unit"`
	TotalVAT      float64         `json:"total_vat"`
	PWDDiscount   float64         `json:"pwd_discount"`
	OtherDiscount float64         `json:"other_discount"`
	NetRevenue    float64         `json:"net_revenue"`
	COGS          float64         `json:"cogs"`
	GrossProfit   float64         `json:"gross_profit"`
}

// Projection is the dataset-wide financial projection for one period.
type Projection struct {
	Period          enum.Period `json:"period"`
	GrossSales      float64     `json:"gross_sales"`
	TotalVAT        float64     `json:"total_vat"`
	PWDDiscount     float64     `json:"pwd_discount"`
	OtherDiscount   float64     `json:"other_discount"`
	NetRevenue      float64     `json:"net_revenue"`
	COGS            float64     `json:"cogs"`
	GrossProfit     float64     `json:"gross_profit"`
	Opex            float64     `json:"opex"`
	OperatingProfit float64     `json:"operating_profit"`
}

// unitCost is the ingredient cost of one serving:
// sum(ingredient cost x qty) / max(1, batchSize).
func unitCost(recipe entity.Recipe, costs map[uuid.UUID]float64) float64 {
	total := 0.0
	for _, ref := range recipe.Ingredients {
		total += costs[ref.IngredientID.UUID] * ref.Qty
	}
	return total / float64(recipe.EffectiveBatchSize())
}

// ingredientCosts indexes ingredient unit costs by id.
func ingredientCosts(ds *entity.Dataset) map[uuid.UUID]float64 {
	costs := make(map[uuid.UUID]float64, len(ds.Ingredients))
	for _, ing := range ds.Ingredients {
		costs[ing.ID.UUID] = ing.Cost
	}
	return costs
}

// breakdown derives the per-recipe financials. The price is known and the
// VAT/discount split is derived from it, the inverse of suggestPrice.
func breakdown(recipe entity.Recipe, costs map[uuid.UUID]float64, settings entity.Settings) RecipeBreakdown {
	vatRate := settings.VATRate()
	cost := unitCost(recipe, costs)

	grossSales := recipe.Price * recipe.DailyVolume
	netPriceExVAT := recipe.Price / (1 + vatRate)
	vatPerUnit := recipe.Price - netPriceExVAT
	totalVAT := vatPerUnit * recipe.DailyVolume
	pwdDiscount := grossSales * settings.PWDRate()
	otherDiscount := grossSales * settings.OtherRate()
	netRevenue := grossSales - totalVAT - pwdDiscount - otherDiscount
	cogs := cost * recipe.DailyVolume

	return RecipeBreakdown{
		RecipeID:      recipe.ID,
		Name:          recipe.Name,
		UnitCost:      cost,
		GrossSales:    grossSales,
		NetPriceExVAT: netPriceExVAT,
		VATPerUnit:    vatPerUnit,
		TotalVAT:      totalVAT,
		PWDDiscount:   pwdDiscount,
		OtherDiscount: otherDiscount,
		NetRevenue:    netRevenue,
		COGS:          cogs,
		GrossProfit:   netRevenue - cogs,
	}
}

// project sums the per-recipe breakdowns at daily volume, scales the revenue,
// cost, tax and discount figures by the period multiplier, and subtracts
// operating expenses normalized through a daily rate. Opex is deliberately
// sum(monthly)/30 x multiplier, not sum(monthly) x multiplier.
func project(ds *entity.Dataset, period enum.Period) Projection {
	costs := ingredientCosts(ds)
	mult := period.Multiplier()

	p := Projection{Period: period}
	for _, recipe := range ds.Recipes {
		b := breakdown(recipe, costs, ds.Settings)
		p.GrossSales += b.GrossSales
		p.TotalVAT += b.TotalVAT
		p.PWDDiscount += b.PWDDiscount
		p.OtherDiscount += b.OtherDiscount
		p.NetRevenue += b.NetRevenue
		p.COGS += b.COGS
		p.GrossProfit += b.GrossProfit
	}

	p.GrossSales *= mult
	p.TotalVAT *= mult
	p.PWDDiscount *= mult
	p.OtherDiscount *= mult
	p.NetRevenue *= mult
	p.COGS *= mult
	p.GrossProfit *= mult

	dailyOpex := 0.0
	for _, e := range ds.Expenses {
		dailyOpex += e.Amount
	}
	dailyOpex /= 30
	p.Opex = dailyOpex * mult
	p.OperatingProfit = p.GrossProfit - p.Opex

	return p
}

// GetBreakdowns returns the per-recipe financials for the current dataset
func (s *ProjectionService) GetBreakdowns() []RecipeBreakdown {
	ds := s.store.Snapshot()
	costs := ingredientCosts(&ds)
	out := make([]RecipeBreakdown, 0, len(ds.Recipes))
	for _, recipe := range ds.Recipes {
		out = append(out, breakdown(recipe, costs, ds.Settings))
	}
	return out
}

// GetProjection returns the dataset-wide projection for the period
func (s *ProjectionService) GetProjection(period enum.Period) Projection {
	ds := s.store.Snapshot()
	return project(&ds, period)
}

// SuggestPriceInput derives a menu price from cost and target margin when
// authoring a recipe, instead of deriving margin from a known price.
type SuggestPriceInput struct {
	Ingredients []RecipeIngredientInput
	BatchSize   int
	Margin      float64 // percent, < 100
}

// SuggestedPrice is the result of the inverse pricing pipeline.
type SuggestedPrice struct {
	CostPerServing float64 `json:"cost_per_serving"`
	NetPrice       float64 `json:"net_price"`
	MenuPrice      float64 `json:"menu_price"`
}

// SuggestPrice runs the inverse pipeline: cost per serving, margin markup,
// VAT gross-up, rounded up to the next whole amount.
func (s *ProjectionService) SuggestPrice(input *SuggestPriceInput) (SuggestedPrice, error) {
	if input.Margin >= 100 || input.Margin < 0 {
		return SuggestedPrice{}, apperror.NewValidationError([]apperror.FieldError{
			{Field: "margin", Message: "Margin must be between 0 and 99"},
		})
	}

	ds := s.store.Snapshot()
	costs := ingredientCosts(&ds)

	total := 0.0
	for _, ref := range input.Ingredients {
		total += costs[ref.IngredientID.UUID] * ref.Qty
	}
	batchSize := input.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	costPerServing := total / float64(batchSize)
	netPrice := costPerServing / (1 - input.Margin/100)
	menuPrice := math.Ceil(netPrice * (1 + ds.Settings.VATRate()))

	return SuggestedPrice{
		CostPerServing: costPerServing,
		NetPrice:       netPrice,
		MenuPrice:      menuPrice,
	}, nil
}

// CaptureSnapshot freezes today's projection and order volume as an immutable
// dated record, persists it remotely, then triggers a sync refresh so the
// stored copy becomes part of remote truth.
func (s *ProjectionService) CaptureSnapshot(ctx context.Context) (entity.DailySnapshot, error) {
	ds := s.store.Snapshot()
	date := s.now().Format(entity.SnapshotDateLayout)

	for _, snap := range ds.Snapshots {
		if snap.Date == date {
			return entity.DailySnapshot{}, apperror.NewConflictError("Snapshot for " + date + " already captured")
		}
	}

	daily := project(&ds, enum.PeriodDaily)
	orderCount := 0.0
	for _, recipe := range ds.Recipes {
		orderCount += recipe.DailyVolume
	}

	snap := entity.DailySnapshot{
		ID:            entity.NewPendingID(),
		Date:          date,
		GrossSales:    daily.GrossSales,
		TotalVAT:      daily.TotalVAT,
		PWDDiscount:   daily.PWDDiscount,
		OtherDiscount: daily.OtherDiscount,
		NetRevenue:    daily.NetRevenue,
		COGS:          daily.COGS,
		GrossProfit:   daily.GrossProfit,
		Opex:          daily.Opex,
		NetProfit:     daily.OperatingProfit,
		OrderCount:    orderCount,
	}

	s.store.Update(func(ds *entity.Dataset) {
		ds.Snapshots = append(ds.Snapshots, snap)
	})

	created, err := s.remote.Snapshots().Create(ctx, snap)
	if err != nil {
		s.logger.Warn("snapshot persist failed, reconciling", zap.Error(err))
		s.sync.Reconcile(ctx)
		return entity.DailySnapshot{}, apperror.NewMutationError("Snapshot", "create", err)
	}

	s.sync.Refresh(ctx, RefreshOptions{Force: true, Silent: true})
	return created, nil
}

// ListSnapshots returns the captured snapshots
func (s *ProjectionService) ListSnapshots() []entity.DailySnapshot {
	return s.store.Snapshot().Snapshots
}

// WeeklySummary aggregates the snapshots of one calendar week.
type WeeklySummary struct {
	WeekStart       string                `json:"week_start"`
	DaysCount       int                   `json:"days_count"`
	TotalRevenue    float64               `json:"total_revenue"`
	TotalNetProfit  float64               `json:"total_net_profit"`
	AvgDailyRevenue float64               `json:"avg_daily_revenue"`
	AvgDailyProfit  float64               `json:"avg_daily_profit"`
	BestDay         *entity.DailySnapshot `json:"best_day,omitempty"`
	WorstDay        *entity.DailySnapshot `json:"worst_day,omitempty"`
}

// GetWeeklySummary summarizes the snapshots inside [weekStart, weekStart+6].
// An empty week yields a zero-valued summary, not an error.
func (s *ProjectionService) GetWeeklySummary(weekStart time.Time) WeeklySummary {
	ds := s.store.Snapshot()
	start := weekStart.Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 6)

	summary := WeeklySummary{WeekStart: start.Format(entity.SnapshotDateLayout)}

	var week []entity.DailySnapshot
	for _, snap := range ds.Snapshots {
		day, err := snap.Day()
		if err != nil {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			week = append(week, snap)
		}
	}
	if len(week) == 0 {
		return summary
	}

	for _, snap := range week {
		summary.TotalRevenue += snap.NetRevenue
		summary.TotalNetProfit += snap.NetProfit
	}
	summary.DaysCount = len(week)
	summary.AvgDailyRevenue = summary.TotalRevenue / float64(len(week))
	summary.AvgDailyProfit = summary.TotalNetProfit / float64(len(week))

	// Stable sort keeps insertion order between equal-profit days.
	sort.SliceStable(week, func(i, j int) bool {
		return week[i].NetProfit > week[j].NetProfit
	})
	best := week[0]
	worst := week[len(week)-1]
	summary.BestDay = &best
	summary.WorstDay = &worst

	return summary
}

// MonthlySummary aggregates the snapshots of one calendar month.
type MonthlySummary struct {
	Month          string  `json:"month"`
	DaysCount      int     `json:"days_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalGross     float64 `json:"total_gross_profit"`
	TotalNetProfit float64 `json:"total_net_profit"`
	TotalDiscounts float64 `json:"total_discounts"`
	TotalVAT       float64 `json:"total_vat"`
	AvgMargin      float64 `json:"avg_margin"` // gross profit over revenue, percent
}

// GetMonthlySummary summarizes the snapshots whose date carries the month
// prefix (YYYY-MM). An empty month yields a zero-valued summary.
func (s *ProjectionService) GetMonthlySummary(month string) MonthlySummary {
	ds := s.store.Snapshot()
	summary := MonthlySummary{Month: month}

	for _, snap := range ds.Snapshots {
		if !strings.HasPrefix(snap.Date, month) {
			continue
		}
		summary.DaysCount++
		summary.TotalRevenue += snap.NetRevenue
		summary.TotalGross += snap.GrossProfit
		summary.TotalNetProfit += snap.NetProfit
		summary.TotalDiscounts += snap.PWDDiscount + snap.OtherDiscount
		summary.TotalVAT += snap.TotalVAT
	}
	if summary.TotalRevenue != 0 {
		summary.AvgMargin = summary.TotalGross / summary.TotalRevenue * 100
	}
	return summary
}
