// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kpi-tracker/backend/config"
	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/application/usecase/action"
	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	"github.com/kpi-tracker/backend/internal/application/usecase/record"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
	"github.com/kpi-tracker/backend/internal/infra/server/router"
	"github.com/kpi-tracker/backend/internal/integration/cache"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/kpi-tracker/backend/internal/integration/gateway"
	"github.com/kpi-tracker/backend/internal/integration/memory"
	"github.com/kpi-tracker/backend/internal/integration/persistence"
)

const (
	SyncModeDatabase = "database"
	SyncModeHTTP     = "http"

	// CacheKeyPrefix namespaces the fallback cache keys in Redis.
	CacheKeyPrefix = "kpi:"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Catalog     *entity.Catalog
	Store       adapter.RecordStore
	Gateway     *gateway.Gateway
	Worker      *gateway.Worker
	RateLimiter *middleware.RateLimiter
	Router      *router.Router

	source atomic.Value
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, which disables the fallback cache.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, catalog *entity.Catalog) (*Injector, error) {
	bands, err := valueobject.StatusBandsFromConfig(cfg.KPI.BandPreset, cfg.KPI.OnTarget, cfg.KPI.Near)
	if err != nil {
		return nil, fmt.Errorf("status bands: %w", err)
	}

	// Create repositories
	recordRepo := persistence.NewMonthlyRecordRepository(db)
	statusRepo := persistence.NewMonthStatusRepository(db)

	// Create sync gateway
	remote, err := newRemote(&cfg.Sync, recordRepo, statusRepo)
	if err != nil {
		return nil, err
	}
	var snapshotCache adapter.SnapshotCache
	if redisClient != nil {
		snapshotCache = cache.NewRedisCache(redisClient, CacheKeyPrefix)
	}
	gw := gateway.NewGateway(remote, snapshotCache)
	worker := gateway.NewWorker(gw, gateway.WorkerConfig{
		QueueSize: cfg.Sync.QueueSize,
		Timeout:   cfg.Sync.Timeout,
	})

	store := memory.NewRecordStore()

	// Create scoring components
	resolver := performance.NewTargetResolver(catalog)
	calculator := performance.NewCalculator(resolver)
	engine := performance.NewEngine(catalog, resolver, calculator)

	// Create performance use cases
	listSectionsUseCase := performance.NewListSectionsUseCase(catalog)
	evolutionUseCase := performance.NewGetEvolutionUseCase(store, catalog, engine)
	leaderboardUseCase := performance.NewGetLeaderboardUseCase(store, catalog, engine, bands)
	sectionPerformanceUseCase := performance.NewGetSectionPerformanceUseCase(store, catalog, engine, bands)
	categoryGridUseCase := performance.NewGetCategoryGridUseCase(store, catalog, engine, bands)
	categorySummaryUseCase := performance.NewGetCategorySummaryUseCase(store, engine)
	resolveTargetUseCase := performance.NewResolveTargetUseCase(catalog, resolver)

	// Create record use cases
	updateRecordUseCase := record.NewUpdateRecordUseCase(store, worker)
	toggleLockUseCase := record.NewToggleMonthLockUseCase(store, worker)
	listMonthsUseCase := record.NewListMonthStatusUseCase(store, catalog, engine)

	// Create action use cases
	loadDataUseCase := action.NewLoadDataUseCase(recordRepo, statusRepo)
	saveDataUseCase := action.NewSaveDataUseCase(recordRepo, store)
	saveStatusUseCase := action.NewSaveStatusUseCase(statusRepo, store)

	// Create controllers
	injector := &Injector{
		Config:  cfg,
		DB:      db,
		Catalog: catalog,
		Store:   store,
		Gateway: gw,
		Worker:  worker,
	}

	healthController := controller.NewHealthController(controller.HealthProbes{
		Database:        dbHealthChecker(db),
		Cache:           cacheHealthChecker(snapshotCache),
		PendingSyncJobs: worker.Pending,
		RecordSource:    injector.recordSource,
	})

	actionController := controller.NewActionController(
		loadDataUseCase,
		saveDataUseCase,
		saveStatusUseCase,
	)

	performanceController := controller.NewPerformanceController(
		listSectionsUseCase,
		evolutionUseCase,
		leaderboardUseCase,
		sectionPerformanceUseCase,
		categoryGridUseCase,
		categorySummaryUseCase,
		resolveTargetUseCase,
	)

	recordController := controller.NewRecordController(
		updateRecordUseCase,
		toggleLockUseCase,
		listMonthsUseCase,
	)

	exportController := controller.NewExportController(leaderboardUseCase)

	// Create middleware
	// Disable write throttling for E2E/test environments to prevent flaky tests
	writeLimit := cfg.Sync.WriteLimit
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		writeLimit = 0
	}
	rateLimiter := middleware.NewRateLimiterWithConfig(writeLimit, cfg.Sync.WriteLimitWin)

	// Create router
	injector.RateLimiter = rateLimiter
	injector.Router = router.NewRouter(healthController, actionController, performanceController, recordController, exportController, rateLimiter)

	return injector, nil
}

// Hydrate fills the Record Store from the remote store, or its fallback.
func (i *Injector) Hydrate(ctx context.Context) gateway.Source {
	snapshot, source := i.Gateway.Load(ctx)
	i.Store.Replace(snapshot)
	i.source.Store(string(source))
	slog.Info("Record store hydrated",
		"source", source,
		"records", len(snapshot.Records),
		"statuses", len(snapshot.Statuses),
	)
	return source
}

func (i *Injector) recordSource() string {
	source, _ := i.source.Load().(string)
	return source
}

func newRemote(cfg *config.SyncConfig, recordRepo adapter.MonthlyRecordRepository, statusRepo adapter.MonthStatusRepository) (adapter.RemoteStore, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", SyncModeDatabase:
		return gateway.NewDatabaseRemote(recordRepo, statusRepo), nil
	case SyncModeHTTP:
		if cfg.RemoteURL == "" {
			return nil, errors.New("SYNC_REMOTE_URL is required when SYNC_MODE=http")
		}
		return gateway.NewHTTPRemote(cfg.RemoteURL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported sync mode %q", cfg.Mode)
	}
}

func dbHealthChecker(db *gorm.DB) func() bool {
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}
}

func cacheHealthChecker(c adapter.SnapshotCache) func() bool {
	if c == nil {
		return nil
	}
	return func() bool {
		return c.Ping(context.Background()) == nil
	}
}
