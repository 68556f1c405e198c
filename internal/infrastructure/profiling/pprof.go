// Package profiling starts the optional pprof endpoint and Pyroscope agent.
package profiling

import (
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/amhellmund/redo/internal/infrastructure/logger"
)

const pprofReadHeaderTimeout = 5 * time.Second

// Config controls both profilers. Everything is off by default.
type Config struct {
	PprofEnabled     bool   `env:"ENABLE_PROFILING"             yaml:"pprof_enabled"`
	PprofPort        int    `env:"PPROF_PORT"                   yaml:"pprof_port"`
	PyroscopeEnabled bool   `env:"ENABLE_CONTINUOUS_PROFILING"  yaml:"pyroscope_enabled"`
	PyroscopeURL     string `env:"PYROSCOPE_SERVER_URL"         yaml:"pyroscope_url"`
	Environment      string `env:"PYROSCOPE_ENVIRONMENT"        yaml:"environment"`
}

// SetDefaults fills ports and URLs.
func (c *Config) SetDefaults() {
	if c.PprofPort == 0 {
		c.PprofPort = 6060
	}
	if c.PyroscopeURL == "" {
		c.PyroscopeURL = "http://pyroscope:4040"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// NewPprofHandler returns a mux carrying the /debug/pprof endpoints.
func NewPprofHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// StartPprofServer serves pprof on localhost when enabled. It returns the
// server so callers can shut it down, or nil when disabled.
func StartPprofServer(cfg Config, log logger.Logger) *http.Server {
	if !cfg.PprofEnabled {
		return nil
	}

	// localhost only
	addr := net.JoinHostPort("localhost", strconv.Itoa(cfg.PprofPort))
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewPprofHandler(),
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server error", logger.Error(err))
		}
	}()

	return srv
}
