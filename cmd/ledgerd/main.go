package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/arthaworks/ledgerengine/internal/handlers"
	"github.com/arthaworks/ledgerengine/internal/middleware"
	"github.com/arthaworks/ledgerengine/internal/platform/config"
	"github.com/arthaworks/ledgerengine/internal/repositories/database/pgsql"
	"github.com/arthaworks/ledgerengine/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate := limiter.Rate{Period: time.Second, Limit: int64(cfg.RateLimitRPS)}
	limiterInstance := limiter.New(limitermemory.NewStore(), rate)
	r.Use(middleware.RateLimit(limiterInstance))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := buildServices(dbPool, cfg, logger)
	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func buildServices(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *portssvc.ServiceContainer {
	repos := pgsql.NewRepositoryProvider(dbPool)

	registry := services.NewDatabaseAccountRegistry(repos.AccountRepo)
	if err := registry.LoadAccountsFromDatabase(context.Background()); err != nil {
		logger.Warn("Failed to hydrate account cache", slog.String("error", err.Error()))
	}

	rates := services.NewStaticRateProvider(map[string]decimal.Decimal{
		"USD/IDR": decimal.NewFromInt(15500),
		"SGD/IDR": decimal.NewFromInt(11500),
		"EUR/IDR": decimal.NewFromInt(16800),
	})

	suggester := services.NewKeywordCategorySuggester()

	return &portssvc.ServiceContainer{
		Registry:  registry,
		Journal:   services.NewDatabaseJournalEntryManager(repos.LedgerRepo, registry, rates, cfg.BaseCurrency),
		Engine:    services.NewAccountingEngine(suggester),
		Suggester: suggester,
	}
}

// runMigrations applies all pending SQL migrations before the server starts.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}
