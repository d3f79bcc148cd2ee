package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/config"
	"github.com/kusinapp/kusina-api/internal/presentation/http/handler"
	"github.com/kusinapp/kusina-api/internal/presentation/http/middleware"
	"github.com/kusinapp/kusina-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Ingredient *handler.IngredientHandler
	Recipe     *handler.RecipeHandler
	Expense    *handler.ExpenseHandler
	Settings   *handler.SettingsHandler
	Projection *handler.ProjectionHandler
	Stock      *handler.StockHandler
	Sync       *handler.SyncHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)

	// Sync
	protected.POST("/sync/refresh", h.Sync.Refresh)
	protected.GET("/sync/status", h.Sync.Status)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Ingredients
	registerIngredientRoutes(protected, h)

	// Recipes
	registerRecipeRoutes(protected, h)

	// Expenses
	registerExpenseRoutes(protected, h)

	// Projections and snapshots
	registerProjectionRoutes(protected, h)

	// Stock
	protected.GET("/stock", h.Stock.StockReport)
}

func registerIngredientRoutes(protected *gin.RouterGroup, h *Handlers) {
	ingredients := protected.Group("/ingredients")
	{
		ingredients.GET("", h.Ingredient.List)
		ingredients.POST("", h.Ingredient.Create)
		ingredients.GET("/:id", h.Ingredient.Get)
		ingredients.PUT("/:id", h.Ingredient.Update)
		ingredients.DELETE("/:id", h.Ingredient.Delete)
		ingredients.POST("/:id/duplicate", h.Ingredient.Duplicate)
	}
}

func registerRecipeRoutes(protected *gin.RouterGroup, h *Handlers) {
	recipes := protected.Group("/recipes")
	{
		recipes.GET("", h.Recipe.List)
		recipes.POST("", h.Recipe.Create)
		recipes.GET("/:id", h.Recipe.Get)
		recipes.PUT("/:id", h.Recipe.Update)
		recipes.DELETE("/:id", h.Recipe.Delete)
		recipes.POST("/:id/duplicate", h.Recipe.Duplicate)
		recipes.POST("/:id/cook", h.Stock.Cook)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerProjectionRoutes(protected *gin.RouterGroup, h *Handlers) {
	projections := protected.Group("/projections")
	{
		projections.GET("", h.Projection.GetProjection)
		projections.GET("/breakdowns", h.Projection.GetBreakdowns)
		projections.POST("/suggest-price", h.Projection.SuggestPrice)
	}

	snapshots := protected.Group("/snapshots")
	{
		snapshots.GET("", h.Projection.ListSnapshots)
		snapshots.POST("", h.Projection.CaptureSnapshot)
		snapshots.GET("/weekly", h.Projection.GetWeeklySummary)
		snapshots.GET("/monthly", h.Projection.GetMonthlySummary)
	}
}
