// Package config holds the redo service configuration.
package config

import (
	"time"

	infraconfig "github.com/amhellmund/redo/internal/infrastructure/config"
	"github.com/amhellmund/redo/internal/infrastructure/database"
	"github.com/amhellmund/redo/internal/infrastructure/profiling"
	"github.com/amhellmund/redo/internal/infrastructure/redis"
)

// Default configuration values.
const (
	defaultServiceName     = "redo"
	defaultServicePort     = 3000
	defaultVersion         = "0.1.0"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFmt      = "json"
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig    `yaml:"service"`
	Server    ServerConfig     `yaml:"server"`
	CORS      CORSConfig       `yaml:"cors"`
	Logging   LoggingConfig    `yaml:"logging"`
	Redis     redis.Config     `yaml:"redis"`
	Database  database.Config  `yaml:"database"`
	Profiling profiling.Config `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `env:"APP_VERSION" yaml:"version"`
	Host    string `env:"HOST"        yaml:"host"`
	Port    int    `env:"PORT"        yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"   yaml:"debug"`
}

// ServerConfig holds HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ORIGINS" yaml:"allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from path. A missing file is allowed.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setServerDefaults(&cfg.Server)
	setLoggingDefaults(&cfg.Logging)
	if cfg.Database.Enabled() {
		cfg.Database.SetDefaults()
	}
	cfg.Profiling.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setServerDefaults(srv *ServerConfig) {
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = defaultReadTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = defaultWriteTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = defaultIdleTimeout
	}
	if srv.ShutdownTimeout == 0 {
		srv.ShutdownTimeout = defaultShutdownTimeout
	}
}

func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateLogLevel("logging.level", c.Logging.Level); err != nil {
		return err
	}
	if err := infraconfig.ValidateLogFormat("logging.format", c.Logging.Format); err != nil {
		return err
	}
	if err := infraconfig.ValidateDuration("server.shutdown_timeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if c.Database.Enabled() {
		if err := infraconfig.ValidatePort("database.port", c.Database.Port); err != nil {
			return err
		}
	}
	if c.Profiling.PprofEnabled {
		if err := infraconfig.ValidatePort("profiling.pprof_port", c.Profiling.PprofPort); err != nil {
			return err
		}
	}
	return nil
}
