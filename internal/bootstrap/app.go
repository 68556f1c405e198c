// Package bootstrap handles initialization and lifecycle of the redo service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/amhellmund/redo/internal/api"
	infralogger "github.com/amhellmund/redo/internal/infrastructure/logger"
	"github.com/amhellmund/redo/internal/infrastructure/profiling"
)

// Options configure a service run.
type Options struct {
	// ConfigPath overrides CONFIG_PATH.
	ConfigPath string
	// Debug forces debug mode regardless of configuration.
	Debug bool
}

// Start runs the service until ctx is cancelled or a shutdown signal arrives.
func Start(ctx context.Context, opts Options) error {
	cfg, configErr := LoadConfig(opts.ConfigPath)
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}
	if opts.Debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, logErr := CreateLogger(cfg)
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	if pprofSrv := profiling.StartPprofServer(cfg.Profiling, log); pprofSrv != nil {
		defer func() { _ = pprofSrv.Close() }()
	}
	profiler, profErr := profiling.StartPyroscope(cfg.Profiling, cfg.Service.Name, cfg.Service.Version, log)
	if profErr != nil {
		// profiling is optional
		log.Warn("Continuous profiling unavailable", infralogger.Error(profErr))
	}
	defer func() { _ = profiler.Stop() }()

	log.Info("Starting redo",
		infralogger.String("version", cfg.Service.Version),
		infralogger.Int("port", cfg.Service.Port),
	)

	deps, cleanup, depsErr := SetupDependencies(ctx, cfg, log)
	if depsErr != nil {
		return fmt.Errorf("dependencies: %w", depsErr)
	}
	defer cleanup()

	server, serverErr := api.NewServer(cfg, log, deps)
	if serverErr != nil {
		return fmt.Errorf("server: %w", serverErr)
	}

	if runErr := server.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return fmt.Errorf("server: %w", runErr)
	}

	log.Info("redo stopped")
	return nil
}
