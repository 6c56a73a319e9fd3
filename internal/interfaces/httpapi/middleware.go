package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
	"github.com/riskibarqy/nhl-fa-projections/internal/usecase"
)

// RequestObserver records per-route request latency.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, took time.Duration)
}

// RequireAdminKey guards operator endpoints with a static bearer key.
func RequireAdminKey(key string, next http.Handler) http.Handler {
	expected := []byte(strings.TrimSpace(key))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireAdminKey")
		defer span.End()

		if len(expected) == 0 {
			writeError(ctx, w, fmt.Errorf("%w: admin api key is not configured", usecase.ErrDependencyUnavailable))
			return
		}

		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		scheme, provided, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(provided) == "" {
			writeError(ctx, w, fmt.Errorf("%w: missing bearer token", usecase.ErrUnauthorized))
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), expected) != 1 {
			writeError(ctx, w, fmt.Errorf("%w: invalid admin api key", usecase.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID propagates a caller supplied X-Request-ID or mints a UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(headerRequestID))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogging logs one line per request and feeds the latency histogram
// keyed by the mux pattern, so path parameters do not explode label cardinality.
func RequestLogging(logger *logging.Logger, observer RequestObserver, routes *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		took := time.Since(started)

		route := ""
		if routes != nil {
			_, route = routes.Handler(r)
		}
		if observer != nil {
			observer.ObserveRequest(route, r.Method, rec.status, took)
		}

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.status,
			"remote_addr", resolveClientIP(r),
			"request_id", requestIDFromContext(ctx),
			"duration_ms", took.Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "nhl-fa-projections-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz", "/metrics":
		return false
	default:
		return true
	}
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		allowed := allowAll
		if !allowed {
			_, allowed = allowMap[origin]
		}
		if allowed {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Accept,X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", "X-Data-Source,X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitConfig keys buckets on the socket address. TrustProxyHeaders
// switches to the edge's client IP headers and is only safe behind a proxy
// that overwrites them.
type RateLimitConfig struct {
	Enabled           bool
	RPS               float64
	Burst             int
	TrustProxyHeaders bool
}

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepAfter = 4096
	limiterSweepEvery = time.Minute
	limiterMaxClients = 65536
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Once the table grows
// past limiterSweepAfter idle buckets are dropped at most once per
// limiterSweepEvery, and new clients are refused at limiterMaxClients.
type ipRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ipRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) >= limiterSweepAfter && now.Sub(l.lastSweep) >= limiterSweepEvery {
		l.lastSweep = now
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
	}

	c, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= limiterMaxClients {
			return false
		}
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func RateLimit(cfg RateLimitConfig, next http.Handler) http.Handler {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return next
	}
	limiter := newIPRateLimiter(cfg.RPS, cfg.Burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RateLimit")
		defer span.End()

		if !shouldTraceRequest(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		key := remoteIP(r)
		if cfg.TrustProxyHeaders {
			key = resolveClientIP(r)
		}
		if !limiter.allow(key) {
			w.Header().Set("Retry-After", "1")
			writeError(ctx, w, errRateLimited)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
