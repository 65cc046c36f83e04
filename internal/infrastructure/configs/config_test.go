package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 20, cfg.RateLimiter.RequestsPerTimeFrame)
	assert.Equal(t, 5*time.Second, cfg.RateLimiter.TimeFrame)
	assert.Equal(t, uint(100), cfg.RoomStore.Capacity)
	assert.Equal(t, 30*time.Minute, cfg.RoomStore.IdleExpiry)
	assert.Equal(t, 60, cfg.Game.RoundSeconds)
	assert.Empty(t, cfg.Game.Words)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
http:
  port: 9090
game:
  round_seconds: 30
  words:
    - dragon
    - castle
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, 30, cfg.Game.RoundSeconds)
	assert.Equal(t, []string{"dragon", "castle"}, cfg.Game.Words)

	// Untouched keys still fall back to defaults.
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, uint(100), cfg.RoomStore.Capacity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
