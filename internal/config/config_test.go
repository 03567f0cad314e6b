package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gofers/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvConfig, config.EnvLogLevel, config.EnvEnvironment, config.EnvSamplePoints} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 20, cfg.Deflection.SamplePoints)
	assert.Equal(t, 1.0, cfg.Deflection.Scale)
	assert.Equal(t, "xz", cfg.Diagram.Plane)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, []string{"defaults"}, cfg.Sources)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
log_level: debug
deflection:
  sample_points: 50
  scale: 100
diagram:
  plane: xy
export:
  format: yaml
`)
	t.Setenv(config.EnvSamplePoints, "8")
	t.Setenv(config.EnvEnvironment, "PRODUCTION")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8, cfg.Deflection.SamplePoints)
	assert.Equal(t, 100.0, cfg.Deflection.Scale)
	assert.Equal(t, "xy", cfg.Diagram.Plane)
	assert.Equal(t, 6.0, cfg.Diagram.HeightIn, "unset keys keep their default")
	assert.Equal(t, "yaml", cfg.Export.Format)
	assert.Equal(t, []string{"defaults", path, "environment"}, cfg.Sources)
}

func TestLoad_ConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "log_level: warn\n")
	t.Setenv(config.EnvConfig, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, err = config.Load("")
	require.NoError(t, err, "a missing FERS_CONFIG file falls back to defaults")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad level", body: "log_level: loud\n"},
		{name: "too few points", body: "deflection:\n  sample_points: 1\n"},
		{name: "bad plane", body: "diagram:\n  plane: xx\n"},
		{name: "unknown key", body: "colour: red\n"},
		{name: "malformed yaml", body: "log_level: [\n"},
		{name: "bad env int", body: "", env: map[string]string{config.EnvSamplePoints: "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
