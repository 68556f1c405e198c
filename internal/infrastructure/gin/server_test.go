package gin_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	ginpkg "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infragin "github.com/amhellmund/redo/internal/infrastructure/gin"
	"github.com/amhellmund/redo/internal/infrastructure/logger"
	"github.com/amhellmund/redo/internal/infrastructure/metrics"
)

func TestServerBuilder_RegistersStandardRoutes(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("redo", 3000).
		WithLogger(logger.NewNop()).
		WithVersion("9.9.9").
		WithMetrics(metrics.New("redo")).
		WithRoutes(func(router *ginpkg.Engine) {
			router.GET("/ping", func(c *ginpkg.Context) { c.String(http.StatusOK, "pong") })
		}).
		Build()

	routes := map[string]bool{}
	for _, r := range server.Router().Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"HEAD /health",
		"GET /health/ready",
		"GET /health/memory",
		"GET /metrics",
		"GET /ping",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}

	assert.Equal(t, "9.9.9", server.Config().ServiceVersion)
	assert.Equal(t, ":3000", server.Addr())
}

func TestServerBuilder_TimeoutsKeepDefaultsForZero(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("redo", 3000).
		WithHost("127.0.0.1").
		WithTimeouts(5*time.Second, 0, 0).
		WithShutdownTimeout(0).
		Build()

	cfg := server.Config()
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, infragin.DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, infragin.DefaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, infragin.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, "127.0.0.1:3000", server.Addr())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("redo", 0).
		WithRoutes(func(router *ginpkg.Engine) {
			router.GET("/ping", func(c *ginpkg.Context) { c.String(http.StatusOK, "pong") })
		}).
		Build()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- server.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
	assert.NotEmpty(t, resp.Header.Get(infragin.RequestIDHeader))

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}

func TestServer_RunWithGracefulShutdownStopsOnCancel(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("redo", 0).WithHost("127.0.0.1").Build()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunWithGracefulShutdown(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	server := infragin.NewServerBuilder("redo", port).WithHost("127.0.0.1").Build()

	err = server.RunWithGracefulShutdown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}
