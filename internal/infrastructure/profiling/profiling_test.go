package profiling_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhellmund/redo/internal/infrastructure/logger"
	"github.com/amhellmund/redo/internal/infrastructure/profiling"
)

func TestDisabledProfilersAreNoops(t *testing.T) {
	t.Parallel()

	cfg := profiling.Config{}
	cfg.SetDefaults()

	assert.Nil(t, profiling.StartPprofServer(cfg, logger.NewNop()))

	p, err := profiling.StartPyroscope(cfg, "redo", "0.1.0", logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Stop())
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := profiling.Config{}
	cfg.SetDefaults()

	assert.Equal(t, 6060, cfg.PprofPort)
	assert.Equal(t, "http://pyroscope:4040", cfg.PyroscopeURL)
	assert.Equal(t, "development", cfg.Environment)
}

func TestPyroscopeConfig_Tags(t *testing.T) {
	t.Parallel()

	cfg := profiling.Config{Environment: "staging", PyroscopeURL: "http://localhost:4040"}
	pcfg := profiling.PyroscopeConfig(cfg, "api", "1.2.3")

	assert.Equal(t, "redo.api", pcfg.ApplicationName)
	assert.Equal(t, "http://localhost:4040", pcfg.ServerAddress)
	assert.Equal(t, "staging", pcfg.Tags["environment"])
	assert.Equal(t, "1.2.3", pcfg.Tags["version"])
	assert.NotEmpty(t, pcfg.ProfileTypes)
}

func TestPprofHandler_ServesIndex(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	profiling.NewPprofHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutine")
}
