package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// DataSourcePostgres serves projections from the database and falls back to
// the sample dataset on failure. DataSourceMock never touches the database.
const (
	DataSourcePostgres = "postgres"
	DataSourceMock     = "mock"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv          string
	ServiceName     string
	ServiceVersion  string
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	DataSource          string
	MockFallbackEnabled bool

	DBURL                   string
	DBHost                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBPort                  int
	DBSSLMode               string
	DBMaxOpenConns          int
	DBMaxIdleConns          int
	DBConnMaxLifetime       time.Duration
	DBProbeTimeout          time.Duration
	DBCircuitEnabled        bool
	DBCircuitFailureCount   int
	DBCircuitOpenTimeout    time.Duration
	DBCircuitHalfOpenMaxReq int

	CacheEnabled bool
	CacheTTL     time.Duration

	CORSAllowedOrigins  []string
	RateLimitEnabled    bool
	RateLimitRPS        float64
	RateLimitBurst      int
	RateLimitTrustProxy bool
	AdminAPIKey         string
	MetricsEnabled      bool
	SwaggerEnabled      bool

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("SERVICE_NAME", "nhl-fa-projections"),
		ServiceVersion:             getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DATABASE_URL", "")),
		DBHost:                     strings.TrimSpace(getEnv("DATABASE_HOST", "")),
		DBUser:                     strings.TrimSpace(getEnv("DATABASE_USER", "")),
		DBPassword:                 os.Getenv("DATABASE_PASSWORD"),
		DBName:                     strings.TrimSpace(getEnv("DATABASE_NAME", "")),
		DBSSLMode:                  strings.TrimSpace(getEnv("DB_SSLMODE", database.DefaultSSLMode)),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AdminAPIKey:                strings.TrimSpace(getEnv("ADMIN_API_KEY", "")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: os.Getenv("PYROSCOPE_BASIC_AUTH_PASSWORD"),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if cfg.DataSource, err = parseDataSource(getEnv("DATA_SOURCE", DataSourcePostgres)); err != nil {
		return Config{}, err
	}

	fallbackDefault := "true"
	if appEnv == EnvProd {
		fallbackDefault = "false"
	}
	if cfg.MockFallbackEnabled, err = strconv.ParseBool(getEnv("MOCK_FALLBACK_ENABLED", fallbackDefault)); err != nil {
		return Config{}, fmt.Errorf("parse MOCK_FALLBACK_ENABLED: %w", err)
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "15s", &cfg.WriteTimeout},
		{"APP_SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"DB_PROBE_TIMEOUT", "5s", &cfg.DBProbeTimeout},
		{"DB_CIRCUIT_OPEN_TIMEOUT", "30s", &cfg.DBCircuitOpenTimeout},
		{"CACHE_TTL", "60s", &cfg.CacheTTL},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if v <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = v
	}

	if cfg.DBConnMaxLifetime, err = time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "0s")); err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}
	if cfg.DBConnMaxLifetime < 0 {
		return Config{}, fmt.Errorf("DB_CONN_MAX_LIFETIME must be >= 0")
	}

	ints := []struct {
		key      string
		fallback int
		min      int
		dst      *int
	}{
		{"DATABASE_PORT", database.DefaultPort, 1, &cfg.DBPort},
		{"DB_MAX_OPEN_CONNS", database.DefaultMaxOpenConns, 1, &cfg.DBMaxOpenConns},
		{"DB_MAX_IDLE_CONNS", database.DefaultMaxOpenConns, 0, &cfg.DBMaxIdleConns},
		{"DB_CIRCUIT_FAILURE_COUNT", 3, 1, &cfg.DBCircuitFailureCount},
		{"DB_CIRCUIT_HALF_OPEN_MAX_REQ", 1, 1, &cfg.DBCircuitHalfOpenMaxReq},
		{"RATE_LIMIT_BURST", 40, 1, &cfg.RateLimitBurst},
	}
	for _, n := range ints {
		v, err := getEnvAsInt(n.key, n.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", n.key, err)
		}
		if v < n.min {
			return Config{}, fmt.Errorf("%s must be >= %d", n.key, n.min)
		}
		*n.dst = v
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"DB_CIRCUIT_ENABLED", "true", &cfg.DBCircuitEnabled},
		{"CACHE_ENABLED", "true", &cfg.CacheEnabled},
		{"RATE_LIMIT_ENABLED", "true", &cfg.RateLimitEnabled},
		{"RATE_LIMIT_TRUST_PROXY", "false", &cfg.RateLimitTrustProxy},
		{"METRICS_ENABLED", "true", &cfg.MetricsEnabled},
		{"SWAGGER_ENABLED", swaggerDefault, &cfg.SwaggerEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
	}
	for _, b := range bools {
		v, err := strconv.ParseBool(getEnv(b.key, b.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", b.key, err)
		}
		*b.dst = v
	}

	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitRPS <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be > 0")
	}

	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if cfg.DataSource == DataSourcePostgres && !cfg.Database().Configured() && appEnv == EnvProd {
		return Config{}, fmt.Errorf("DATABASE_URL or DATABASE_HOST/DATABASE_USER/DATABASE_NAME is required when DATA_SOURCE=postgres in %s", EnvProd)
	}

	return cfg, nil
}

// Database maps the DB_* and DATABASE_* settings onto the connection provider config.
func (c Config) Database() database.Config {
	return database.Config{
		URL:             c.DBURL,
		Host:            c.DBHost,
		User:            c.DBUser,
		Password:        c.DBPassword,
		Name:            c.DBName,
		Port:            c.DBPort,
		SSLMode:         c.DBSSLMode,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
		ProbeTimeout:    c.DBProbeTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          c.DBCircuitEnabled,
			FailureThreshold: c.DBCircuitFailureCount,
			OpenTimeout:      c.DBCircuitOpenTimeout,
			HalfOpenMaxReq:   c.DBCircuitHalfOpenMaxReq,
		},
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseDataSource(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case DataSourcePostgres, DataSourceMock:
		return value, nil
	default:
		return "", fmt.Errorf("invalid DATA_SOURCE %q: valid values are %s, %s", v, DataSourcePostgres, DataSourceMock)
	}
}
