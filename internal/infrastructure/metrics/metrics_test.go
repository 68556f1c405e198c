package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhellmund/redo/internal/infrastructure/metrics"
)

func newRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
	return router
}

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	t.Parallel()

	m := metrics.New("redo")
	router := newRouter(m)

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/123", http.NoBody))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.InDelta(t, 3, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.InFlight), 0)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	t.Parallel()

	m := metrics.New("redo")
	router := newRouter(m)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `redo_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, "redo_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	t.Parallel()

	// Two instances must not collide on registration.
	a := metrics.New("redo")
	b := metrics.New("redo")
	assert.NotSame(t, a.Registry(), b.Registry())
}
