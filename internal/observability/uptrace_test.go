package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nhl-fa-projections/internal/config"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	cases := []config.Config{
		{UptraceEnabled: false, ServiceName: "nhl-fa-projections", AppEnv: config.EnvDev},
		{UptraceEnabled: true, UptraceDSN: "", ServiceName: "nhl-fa-projections", AppEnv: config.EnvDev},
	}
	for _, cfg := range cases {
		shutdown, err := InitUptrace(cfg, logging.NewNop())
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	require.NoError(t, err)
	assert.NoError(t, stop())
}

func TestPprof_DisabledAndMux(t *testing.T) {
	srv := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	assert.Nil(t, srv)
	assert.NoError(t, StopPprofServer(context.Background(), srv))

	rec := httptest.NewRecorder()
	NewPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
