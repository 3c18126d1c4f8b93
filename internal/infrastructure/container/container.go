// Package container provides dependency injection setup using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appai "github.com/nugamoto/v2/internal/application/ai"
	"github.com/nugamoto/v2/internal/application/catalog"
	"github.com/nugamoto/v2/internal/application/conversion"
	"github.com/nugamoto/v2/internal/application/cooking"
	appinventory "github.com/nugamoto/v2/internal/application/inventory"
	apprecipe "github.com/nugamoto/v2/internal/application/recipe"
	aimock "github.com/nugamoto/v2/internal/infrastructure/ai/mock"
	aiopenai "github.com/nugamoto/v2/internal/infrastructure/ai/openai"
	"github.com/nugamoto/v2/internal/infrastructure/config"
	"github.com/nugamoto/v2/internal/infrastructure/http/apiserver"
	"github.com/nugamoto/v2/internal/infrastructure/http/handlers"
	"github.com/nugamoto/v2/internal/infrastructure/monitoring"
	gormstore "github.com/nugamoto/v2/internal/infrastructure/persistence/gorm"
	"github.com/nugamoto/v2/internal/infrastructure/persistence/memory"
	"github.com/nugamoto/v2/internal/infrastructure/persistence/postgres"
	redisstore "github.com/nugamoto/v2/internal/infrastructure/persistence/redis"
	"github.com/nugamoto/v2/internal/infrastructure/persistence/sqlite"
	"github.com/nugamoto/v2/internal/ports/inbound"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"github.com/nugamoto/v2/pkg/logger"
)

// ConfigModule provides configuration
var ConfigModule = fx.Options(
	fx.Provide(func() (*config.Config, error) {
		return config.Load("")
	}),
)

// LoggerModule provides the zap logger built from configuration
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	}),
)

// DatabaseModule provides the GORM database by configured driver
var DatabaseModule = fx.Options(
	fx.Provide(func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		var (
			db  *gorm.DB
			err error
		)
		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgres.SetupDatabase(cfg)
		case "sqlite":
			db, err = sqlite.SetupDatabase(cfg.Database.Database+".db", cfg.App.Debug)
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
		if err != nil {
			return nil, err
		}

		if cfg.Database.Seed {
			if err := gormstore.Seed(db); err != nil {
				return nil, err
			}
		}

		log.Info("Database ready", zap.String("driver", cfg.Database.Driver))
		return db, nil
	}),
)

// CacheModule provides the cache repository: Redis when enabled,
// otherwise the in-process cache
var CacheModule = fx.Options(
	fx.Provide(func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			client, err := redisstore.NewClient(cfg)
			if err != nil {
				return nil, err
			}
			log.Info("Using Redis cache",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
			return redisstore.NewCacheRepository(client), nil
		}
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	}),
)

// RepositoryModule provides all persistence repositories
var RepositoryModule = fx.Options(
	fx.Provide(
		fx.Annotate(gormstore.NewUnitRepository, fx.As(new(outbound.UnitRepository))),
		fx.Annotate(gormstore.NewUnitConversionRepository, fx.As(new(outbound.UnitConversionRepository))),
		fx.Annotate(gormstore.NewFoodRepository, fx.As(new(outbound.FoodRepository))),
		fx.Annotate(gormstore.NewFoodConversionRepository, fx.As(new(outbound.FoodConversionRepository))),
		fx.Annotate(gormstore.NewKitchenRepository, fx.As(new(outbound.KitchenRepository))),
		fx.Annotate(gormstore.NewInventoryRepository, fx.As(new(outbound.InventoryRepository))),
		fx.Annotate(gormstore.NewRecipeRepository, fx.As(new(outbound.RecipeRepository))),
		fx.Annotate(gormstore.NewAIOutputRepository, fx.As(new(outbound.AIOutputRepository))),
	),
)

// ServiceModule provides all application services
var ServiceModule = fx.Options(
	fx.Provide(
		fx.Annotate(conversion.NewService, fx.As(new(inbound.ConversionService))),
		fx.Annotate(cooking.NewService, fx.As(new(inbound.CookingService))),
		catalog.NewUnitService,
		catalog.NewFoodService,
	),
	fx.Provide(func(
		inventoryRepo outbound.InventoryRepository,
		kitchenRepo outbound.KitchenRepository,
		foodRepo outbound.FoodRepository,
		cfg *config.Config,
		log *zap.Logger,
	) *appinventory.Service {
		return appinventory.NewService(
			inventoryRepo, kitchenRepo, foodRepo,
			cfg.Inventory.ExpiringThresholdDays, log,
		)
	}),
	fx.Provide(func(
		recipeRepo outbound.RecipeRepository,
		foodRepo outbound.FoodRepository,
		inventoryRepo outbound.InventoryRepository,
		cache outbound.CacheRepository,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.RecipeService {
		return apprecipe.NewRecipeService(
			recipeRepo, foodRepo, inventoryRepo,
			cache, cfg.Cache.RecipeTTL, log,
		)
	}),
	fx.Provide(func(cfg *config.Config, log *zap.Logger) (outbound.AIClient, error) {
		switch cfg.AI.Provider {
		case "openai":
			return aiopenai.NewClient(cfg), nil
		case "mock":
			return aimock.NewClient(), nil
		default:
			return nil, fmt.Errorf("unsupported ai provider: %s", cfg.AI.Provider)
		}
	}),
	fx.Provide(appai.NewService),
)

// HTTPModule provides HTTP handlers and the API server
var HTTPModule = fx.Options(
	fx.Provide(
		validator.New,
		monitoring.NewMetrics,
		handlers.NewUnitsHandler,
		handlers.NewFoodsHandler,
		handlers.NewKitchensHandler,
		handlers.NewInventoryHandler,
		handlers.NewRecipesHandler,
		handlers.NewAIHandler,
		apiserver.NewServer,
	),
)

// LifecycleModule wires server start and stop into the FX lifecycle
var LifecycleModule = fx.Options(
	fx.Invoke(RegisterLifecycleHooks),
)

// RegisterLifecycleHooks starts the API server on application start and
// shuts it down gracefully on stop
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	server *apiserver.Server,
	cfg *config.Config,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("API server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// Module combines every application module
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)
