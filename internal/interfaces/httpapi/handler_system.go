package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/cache"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
)

type debugDTO struct {
	Success     bool                `json:"success"`
	Timestamp   string              `json:"timestamp"`
	DBConnected bool                `json:"dbConnected"`
	Environment debugEnvironmentDTO `json:"environment"`
	PoolInfo    *database.PoolStats `json:"poolInfo,omitempty"`
	Cache       *cache.Stats        `json:"cache,omitempty"`
}

type debugEnvironmentDTO struct {
	AppEnv          string `json:"appEnv"`
	ServiceVersion  string `json:"serviceVersion"`
	DataSource      string `json:"dataSource"`
	FallbackEnabled bool   `json:"mockFallbackEnabled"`
	DatabaseURL     string `json:"databaseUrl"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Debug reports connectivity and pool state for operators. Credentials in the
// DSN are masked.
func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Debug")
	defer span.End()

	out := debugDTO{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Environment: debugEnvironmentDTO{
			AppEnv:          h.cfg.AppEnv,
			ServiceVersion:  h.cfg.ServiceVersion,
			DataSource:      h.cfg.DataSource,
			FallbackEnabled: h.cfg.FallbackEnabled,
			DatabaseURL:     "Not set",
		},
	}

	if h.database != nil {
		stats := h.database.Stats()
		if stats.DSN != "" {
			out.Environment.DatabaseURL = stats.DSN
		}
		if h.database.Configured() {
			out.DBConnected = h.database.TestConnection(ctx)
		}
		if out.DBConnected {
			stats = h.database.Stats()
			out.PoolInfo = &stats
		}
	}
	if h.cache != nil {
		stats := h.cache.Stats()
		out.Cache = &stats
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
