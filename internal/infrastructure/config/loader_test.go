package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhellmund/redo/internal/infrastructure/config"
)

type testConfig struct {
	Service struct {
		Name    string        `yaml:"name"`
		Port    int           `env:"TEST_REDO_PORT"    yaml:"port"`
		Debug   bool          `env:"TEST_REDO_DEBUG"   yaml:"debug"`
		Timeout time.Duration `env:"TEST_REDO_TIMEOUT" yaml:"timeout"`
	} `yaml:"service"`
	Origins []string `env:"TEST_REDO_ORIGINS" yaml:"origins"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeFile(t, "service:\n  name: redo\n  port: 4000\n  timeout: 5s\n")

	cfg, err := config.Load[testConfig](path)
	require.NoError(t, err)

	assert.Equal(t, "redo", cfg.Service.Name)
	assert.Equal(t, 4000, cfg.Service.Port)
	assert.Equal(t, 5*time.Second, cfg.Service.Timeout)
}

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("TEST_REDO_PORT", "4321")

	cfg, err := config.Load[testConfig](filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, 4321, cfg.Service.Port)
	assert.Empty(t, cfg.Service.Name)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "service:\n  port: 4000\n  debug: false\n")
	t.Setenv("TEST_REDO_PORT", "5000")
	t.Setenv("TEST_REDO_DEBUG", "yes")
	t.Setenv("TEST_REDO_TIMEOUT", "250ms")
	t.Setenv("TEST_REDO_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load[testConfig](path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Service.Port)
	assert.True(t, cfg.Service.Debug)
	assert.Equal(t, 250*time.Millisecond, cfg.Service.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
}

func TestLoad_InvalidEnvValueIsIgnored(t *testing.T) {
	path := writeFile(t, "service:\n  port: 4000\n")
	t.Setenv("TEST_REDO_PORT", "not-a-number")

	cfg, err := config.Load[testConfig](path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Service.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "service: [unterminated\n")

	_, err := config.Load[testConfig](path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadWithDefaults_EnvWinsOverDefaults(t *testing.T) {
	t.Setenv("TEST_REDO_PORT", "8088")

	cfg, err := config.LoadWithDefaults[testConfig](
		filepath.Join(t.TempDir(), "absent.yml"),
		func(c *testConfig) {
			if c.Service.Port == 0 {
				c.Service.Port = 3000
			}
			c.Service.Name = "redo"
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Service.Port)
	assert.Equal(t, "redo", cfg.Service.Name)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, config.DefaultConfigPath, config.GetConfigPath(config.DefaultConfigPath))

	t.Setenv("CONFIG_PATH", "/etc/redo/config.yml")
	assert.Equal(t, "/etc/redo/config.yml", config.GetConfigPath(config.DefaultConfigPath))
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{name: "zero", port: 0, wantErr: true},
		{name: "lowest", port: 1},
		{name: "default", port: 3000},
		{name: "highest", port: 65535},
		{name: "too high", port: 65536, wantErr: true},
		{name: "negative", port: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := config.ValidatePort("service.port", tt.port)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var vErr *config.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "service.port", vErr.Field)
		})
	}
}

func TestValidateLogLevelAndFormat(t *testing.T) {
	t.Parallel()

	assert.NoError(t, config.ValidateLogLevel("logging.level", "debug"))
	assert.EqualError(t, config.ValidateLogLevel("logging.level", "loud"),
		"logging.level: must be one of: debug, info, warn, error, fatal")

	assert.NoError(t, config.ValidateLogFormat("logging.format", "console"))
	assert.Error(t, config.ValidateLogFormat("logging.format", "xml"))

	assert.NoError(t, config.ValidateDuration("server.read_timeout", time.Second))
	assert.Error(t, config.ValidateDuration("server.read_timeout", 0))
}
