package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:12345", cfg.Network.BindAddress)
	assert.Equal(t, int32(56345), cfg.World.MapSeed)
	assert.True(t, cfg.World.FreezeTime)
	assert.True(t, cfg.World.PvPEnabled)
	assert.False(t, cfg.Audit.Enabled)
	assert.Positive(t, cfg.Network.OutQueueSize)
	assert.Positive(t, cfg.Network.WriteTimeout)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	content := `
[server]
name = "testland"
welcome = "hi"

[network]
bind_address = "127.0.0.1:9999"

[world]
map_seed = 7
freeze_time = false

[rate_limit]
enabled = true
packets_per_second = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testland", cfg.Server.Name)
	assert.Equal(t, "hi", cfg.Server.Welcome)
	assert.Equal(t, "127.0.0.1:9999", cfg.Network.BindAddress)
	assert.Equal(t, int32(7), cfg.World.MapSeed)
	assert.False(t, cfg.World.FreezeTime)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.PacketsPerSecond)

	// Untouched sections keep their defaults.
	assert.True(t, cfg.World.PvPEnabled)
}

func TestLoadRejectsBrokenToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nname="), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteTimeoutParsesDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("[network]\nwrite_timeout = \"3s\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Network.WriteTimeout)
}
