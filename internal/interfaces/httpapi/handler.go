package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/cache"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
	"github.com/riskibarqy/nhl-fa-projections/internal/usecase"
)

// DatabaseInspector is the slice of the connection provider the debug endpoint reads.
type DatabaseInspector interface {
	Configured() bool
	TestConnection(ctx context.Context) bool
	Stats() database.PoolStats
}

// CacheInspector exposes read-through cache counters.
type CacheInspector interface {
	Stats() cache.Stats
}

type HandlerConfig struct {
	// FallbackEnabled lets degraded results through. When false they are
	// answered with 503.
	FallbackEnabled bool
	AppEnv          string
	ServiceVersion  string
	DataSource      string
}

type Handler struct {
	playerService      *usecase.PlayerService
	playerStatsService *usecase.PlayerStatsService
	database           DatabaseInspector
	cache              CacheInspector
	cfg                HandlerConfig
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	playerStatsService *usecase.PlayerStatsService,
	db DatabaseInspector,
	cacheStats CacheInspector,
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:      playerService,
		playerStatsService: playerStatsService,
		database:           db,
		cache:              cacheStats,
		cfg:                cfg,
		logger:             logger.Named("httpapi"),
		validator:          validator.New(),
	}
}

// refuseDegraded answers 503 for fallback data when fallback is disabled and
// reports whether it did.
func (h *Handler) refuseDegraded(ctx context.Context, w http.ResponseWriter, meta responseMeta, causes ...error) bool {
	if !meta.Degraded || h.cfg.FallbackEnabled {
		return false
	}

	reasons := make([]string, 0, len(causes))
	for _, cause := range causes {
		if cause != nil {
			reasons = append(reasons, cause.Error())
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "data served from "+meta.Source+" fallback")
	}

	h.logger.WarnContext(ctx, "refusing degraded response", "source", meta.Source, "reasons", reasons)
	writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, strings.Join(reasons, "; ")))
	return true
}
