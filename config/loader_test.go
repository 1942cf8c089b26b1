package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	p := writeConfig(t, "storage:\n  inMemory: true\n")

	cfg, err := LoadAppConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 16181, cfg.Server.Port)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "m", cfg.GTFS.ShapeDistUnit)
	assert.Equal(t, 5000, cfg.Server.ReadHeaderTimeoutMS)
	assert.True(t, cfg.Storage.InMemory)
}

func TestLoadAppConfig_Full(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 8080
storage:
  path: /var/lib/line-sections
cache:
  size: 16
logging:
  level: debug
  format: json
gtfs:
  staticURL: https://example.org/gtfs.zip
  agency_id: MTA
  shapeDistUnit: km
gtfsrt:
  vehiclePositionsURL: https://example.org/vp
  timeoutMS: 2500
`)
	cfg, err := LoadAppConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/var/lib/line-sections", cfg.Storage.Path)
	assert.Equal(t, 16, cfg.Cache.Size)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "MTA", cfg.GTFS.AgencyID)
	assert.Equal(t, "km", cfg.GTFS.ShapeDistUnit)
	assert.Equal(t, 2500, cfg.GTFSRT.TimeoutMS)
}

func TestLoadAppConfig_FallsThroughPaths(t *testing.T) {
	p := writeConfig(t, "storage:\n  inMemory: true\n")
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml"), p)
	require.NoError(t, err)
	assert.True(t, cfg.Storage.InMemory)
}

func TestLoadAppConfig_Missing(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "server: [\n"},
		{"no storage path", "server:\n  port: 80\n"},
		{"bad port", "storage:\n  inMemory: true\nserver:\n  port: 70000\n"},
		{"bad level", "storage:\n  inMemory: true\nlogging:\n  level: loud\n"},
		{"bad unit", "storage:\n  inMemory: true\ngtfs:\n  shapeDistUnit: miles\n"},
		{"bad url", "storage:\n  inMemory: true\ngtfsrt:\n  vehiclePositionsURL: not a url\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, 16181, cfg.Server.Port)
}
