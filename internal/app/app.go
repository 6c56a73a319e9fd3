package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/nhl-fa-projections/internal/config"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	cacherepo "github.com/riskibarqy/nhl-fa-projections/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nhl-fa-projections/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nhl-fa-projections/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nhl-fa-projections/internal/interfaces/httpapi"
	"github.com/riskibarqy/nhl-fa-projections/internal/metrics"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/cache"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
	"github.com/riskibarqy/nhl-fa-projections/internal/usecase"
)

// App is the composition root: one connection provider, one cache and one
// metrics registry shared by every request.
type App struct {
	cfg      config.Config
	logger   *logging.Logger
	db       *database.Provider
	metrics  *metrics.Service
	cache    *cache.Store
	handler  http.Handler
	services services
}

type services struct {
	players     *usecase.PlayerService
	playerStats *usecase.PlayerStatsService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, errors.New("http server addr cannot be empty")
	}

	a := &App{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}
	a.db = database.NewProvider(cfg.Database(), logger, database.WithQueryObserver(a.metrics))
	if cfg.CacheEnabled {
		a.cache = cache.NewStore(cfg.CacheTTL)
	}

	playerRepo, statsRepo, source := a.repositories()
	a.services = services{
		players: usecase.NewPlayerService(
			playerRepo, source,
			memory.NewPlayerRepository(memory.SeedPlayers()),
			logger, a.metrics,
		),
		playerStats: usecase.NewPlayerStatsService(
			statsRepo, source,
			memory.NewPlayerStatsRepository(memory.SeedWideRows()),
			logger, a.metrics,
		),
	}

	var cacheInspector httpapi.CacheInspector
	if a.cache != nil {
		cacheInspector = a.cache
	}
	handler := httpapi.NewHandler(
		a.services.players,
		a.services.playerStats,
		a.db,
		cacheInspector,
		httpapi.HandlerConfig{
			FallbackEnabled: cfg.MockFallbackEnabled,
			AppEnv:          cfg.AppEnv,
			ServiceVersion:  cfg.ServiceVersion,
			DataSource:      cfg.DataSource,
		},
		logger,
	)

	routerCfg := httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimit: httpapi.RateLimitConfig{
			Enabled:           cfg.RateLimitEnabled,
			RPS:               cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
			TrustProxyHeaders: cfg.RateLimitTrustProxy,
		},
		AdminAPIKey:    cfg.AdminAPIKey,
		SwaggerEnabled: cfg.SwaggerEnabled,
		Observer:       a.metrics,
	}
	if cfg.MetricsEnabled {
		routerCfg.Metrics = a.metrics.Handler()
	}
	a.handler = httpapi.NewRouter(handler, routerCfg, logger)

	logger.Info("app wired",
		"data_source", cfg.DataSource,
		"database_configured", a.db.Configured(),
		"database_url", cfg.Database().RedactedDSN(),
		"cache_enabled", cfg.CacheEnabled,
		"mock_fallback_enabled", cfg.MockFallbackEnabled,
	)
	return a, nil
}

// repositories picks the primary read path. DATA_SOURCE=mock serves the
// sample dataset directly and never opens a connection.
func (a *App) repositories() (player.Repository, playerstats.Repository, usecase.Source) {
	if a.cfg.DataSource == config.DataSourceMock {
		return memory.NewPlayerRepository(memory.SeedPlayers()),
			memory.NewPlayerStatsRepository(memory.SeedWideRows()),
			usecase.SourceMock
	}

	var (
		playerRepo player.Repository      = postgres.NewPlayerRepository(a.db)
		statsRepo  playerstats.Repository = postgres.NewPlayerStatsRepository(a.db)
	)
	if a.cache != nil {
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, a.cache)
		statsRepo = cacherepo.NewPlayerStatsRepository(statsRepo, a.cache)
	}
	return playerRepo, statsRepo, usecase.SourceStore
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}
}

// Close releases the connection pool.
func (a *App) Close(_ context.Context) error {
	if err := a.db.Close(); err != nil {
		return errors.Wrap(err, "close database provider")
	}
	return nil
}
