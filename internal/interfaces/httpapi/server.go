package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimit          RateLimitConfig
	AdminAPIKey        string
	SwaggerEnabled     bool
	// Metrics is mounted on /metrics when non-nil.
	Metrics  http.Handler
	Observer RequestObserver
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerPublicRoutes(mux, handler)
	registerAdminRoutes(mux, handler, cfg.AdminAPIKey)

	chain := recoverPanic(logger, mux)
	chain = RateLimit(cfg.RateLimit, chain)
	chain = CORS(cfg.CORSAllowedOrigins, chain)
	chain = RequestLogging(logger, cfg.Observer, mux, chain)
	chain = RequestID(chain)
	return RequestTracing(chain)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
