// Package app wires the configuration into stores, services and the router.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"beast-hub/internal/api"
	"beast-hub/internal/body"
	"beast-hub/internal/catalog"
	"beast-hub/internal/coach"
	"beast-hub/internal/config"
	"beast-hub/internal/database"
	"beast-hub/internal/habits"
	"beast-hub/internal/inventory"
	"beast-hub/internal/llm"
	"beast-hub/internal/metrics"
	"beast-hub/internal/planner"
	"beast-hub/internal/schedule"
	"beast-hub/internal/settings"
	"beast-hub/internal/shopping"
	"beast-hub/internal/store"
	"beast-hub/internal/summary"
	"beast-hub/internal/supplements"
	"beast-hub/internal/workouts"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	logger       logrus.FieldLogger
	db           *database.DB
	redis        *redis.Client
	textGen      llm.TextGenerator
	metricsStore *metrics.Store
	deps         api.Deps
}

// New opens the database and the document store selected by cfg and builds
// every service.
func New(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		metricsStore: metrics.NewStore(db.SQL),
	}

	docs, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.textGen, err = newTextGenerator(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	c := catalog.Default()
	settingsSvc := settings.NewService(docs, c, cfg.HeightInches, logger)
	habitsSvc := habits.NewService(docs, logger)
	bodySvc := body.NewService(docs, settingsSvc.Repository(), logger)
	plannerSvc := planner.NewService(c, docs, logger)
	workoutsSvc := workouts.NewService(docs, logger)
	summarySvc := summary.NewService(habitsSvc, plannerSvc, settingsSvc.Repository(), workoutsSvc, bodySvc, logger)

	a.deps = api.Deps{
		UserID:      cfg.ProfileID,
		DataPath:    filepath.Dir(cfg.DatabasePath),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Catalog:     c,
		Habits:      habitsSvc,
		Body:        bodySvc,
		Settings:    settingsSvc,
		Supplements: supplements.NewService(docs, logger),
		Schedule:    schedule.NewService(docs, logger),
		Planner:     plannerSvc,
		Shopping:    shopping.NewService(c, docs, logger),
		Inventory:   inventory.NewService(docs, logger),
		Workouts:    workoutsSvc,
		Summary:     summarySvc,
		Coach: coach.NewService(a.textGen, a.metricsStore, coach.Deps{
			Catalog:  c,
			Habits:   habitsSvc,
			Settings: settingsSvc.Repository(),
			Body:     bodySvc,
			Summary:  summarySvc,
		}, logger),
		Usage: a.metricsStore,
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) (store.Store, error) {
	switch a.cfg.StoreDriver {
	case config.StoreDriverRedis:
		client, err := store.NewRedisClient(ctx, a.cfg.RedisAddress)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.logger.WithField("address", a.cfg.RedisAddress).Info("using redis document store")
		return store.NewRedisStore(client), nil
	case config.StoreDriverMemory:
		a.logger.Warn("using in-memory document store, data is lost on exit")
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLiteStore(a.db.SQL), nil
	}
}

// newTextGenerator picks the configured provider. A missing key is not fatal:
// the AI endpoints report it per request.
func newTextGenerator(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (llm.TextGenerator, error) {
	if !cfg.LLMConfigured() {
		logger.WithField("provider", cfg.LLMProvider).Warn("AI key not configured")
		return llm.NewUnconfigured(), nil
	}
	if cfg.LLMProvider == config.ProviderGroq {
		return llm.NewGroqClient(cfg), nil
	}
	client, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return client, nil
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return api.NewRouter(a.deps)
}

// CleanupMetrics removes usage records older than days.
func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	return a.metricsStore.Cleanup(ctx, days)
}

// Close releases every connection the app opened.
func (a *App) Close() error {
	var errs []error
	if c, ok := a.textGen.(llm.Closer); ok {
		errs = append(errs, c.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
