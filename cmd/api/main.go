package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/application/state"
	"github.com/kusinapp/kusina-api/internal/config"
	"github.com/kusinapp/kusina-api/internal/infrastructure/cache"
	"github.com/kusinapp/kusina-api/internal/infrastructure/connectivity"
	"github.com/kusinapp/kusina-api/internal/infrastructure/database"
	"github.com/kusinapp/kusina-api/internal/infrastructure/identity"
	"github.com/kusinapp/kusina-api/internal/infrastructure/repository"
	"github.com/kusinapp/kusina-api/internal/presentation/http/handler"
	"github.com/kusinapp/kusina-api/internal/presentation/http/routes"
	"github.com/kusinapp/kusina-api/internal/scheduler"
	"github.com/kusinapp/kusina-api/pkg/logger"
	"github.com/kusinapp/kusina-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger := logger.Must(logger.New(cfg.App.Debug))
	defer zapLogger.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Open the local dataset cache
	datasetCache, err := cache.NewSQLiteCache(cfg.Cache.Path)
	if err != nil {
		log.Fatalf("Failed to open dataset cache: %v", err)
	}
	defer datasetCache.Close()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize identity provider and connectivity probe
	provider := identity.NewProvider(db, jwtManager, cfg.Sync.LoginTimeout, zapLogger.Named("identity"))
	probe := connectivity.NewHTTPProbe(cfg.Sync.ProbeURL, cfg.Sync.ProbeTimeout)

	// Initialize remote service and in-memory dataset store
	remote := repository.NewRemoteService(db)
	store := state.NewStore()

	// Initialize services
	syncService := service.NewSyncService(store, remote, datasetCache, provider, probe, zapLogger.Named("sync"))
	ingredientService := service.NewIngredientService(store, remote, syncService, zapLogger.Named("ingredient"))
	recipeService := service.NewRecipeService(store, remote, syncService, zapLogger.Named("recipe"))
	expenseService := service.NewExpenseService(store, remote, syncService, zapLogger.Named("expense"))
	settingsService := service.NewSettingsService(store, remote, syncService, zapLogger.Named("settings"))
	projectionService := service.NewProjectionService(store, remote, syncService, zapLogger.Named("projection"))
	stockService := service.NewStockService(store, remote, syncService, zapLogger.Named("stock"))

	// Consume session events for the lifetime of the process
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go syncService.Run(ctx)

	// Start scheduled tasks
	sched := scheduler.NewScheduler(cfg, projectionService, syncService, provider, zapLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(provider),
		Ingredient: handler.NewIngredientHandler(ingredientService),
		Recipe:     handler.NewRecipeHandler(recipeService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Projection: handler.NewProjectionHandler(projectionService),
		Stock:      handler.NewStockHandler(stockService),
		Sync:       handler.NewSyncHandler(syncService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     zapLogger.Named("http"),
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	zapLogger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
