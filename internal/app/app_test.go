package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nhl-fa-projections/internal/config"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

func mockConfig() config.Config {
	return config.Config{
		AppEnv:              config.EnvDev,
		ServiceVersion:      "test",
		HTTPAddr:            ":0",
		ReadTimeout:         time.Second,
		WriteTimeout:        time.Second,
		DataSource:          config.DataSourceMock,
		MockFallbackEnabled: true,
		CacheEnabled:        true,
		CacheTTL:            time.Minute,
		MetricsEnabled:      true,
		CORSAllowedOrigins:  []string{"*"},
		DBProbeTimeout:      time.Second,
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNew_MockDataSourceServesSampleDataset(t *testing.T) {
	a, err := New(mockConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	rec := get(t, a.Handler(), "/v1/players")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "mock", rec.Header().Get("X-Data-Source"))
	assert.Contains(t, rec.Body.String(), "Connor McDavid")

	rec = get(t, a.Handler(), "/v1/players/1/gar")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"season":"2022-23"`)
}

func TestNew_UnconfiguredPostgresFallsBack(t *testing.T) {
	cfg := mockConfig()
	cfg.DataSource = config.DataSourcePostgres
	cfg.CacheEnabled = false

	a, err := New(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	rec := get(t, a.Handler(), "/v1/players")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mock", rec.Header().Get("X-Data-Source"))

	rec = get(t, a.Handler(), "/v1/players/1/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "empty", rec.Header().Get("X-Data-Source"))

	metricsBody := get(t, a.Handler(), "/metrics").Body.String()
	assert.Contains(t, metricsBody, `nhl_fa_data_fallbacks_total{op="list_players"`)
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := mockConfig()
	cfg.HTTPAddr = " "

	_, err := New(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestHTTPServer_UsesConfiguredTimeouts(t *testing.T) {
	a, err := New(mockConfig(), logging.NewNop())
	require.NoError(t, err)

	srv := a.HTTPServer()
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}
