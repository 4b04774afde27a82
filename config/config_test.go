package config

import (
	"os"
	"testing"

	"kcore/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BOOT_SOURCE", "BOOT_BUFFER_SIZE", "BOOT_REGION_CAPACITY", "BOOT_IDLE"} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceDemo, cfg.Source)
	assert.Equal(t, inventory.DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, inventory.DefaultCapacity, cfg.Capacity)
	assert.False(t, cfg.Idle)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOT_SOURCE", SourceHost)
	t.Setenv("BOOT_BUFFER_SIZE", "32768")
	t.Setenv("BOOT_REGION_CAPACITY", "64")
	t.Setenv("BOOT_IDLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceHost, cfg.Source)
	assert.Equal(t, 32768, cfg.BufferSize)
	assert.Equal(t, 64, cfg.Capacity)
	assert.True(t, cfg.Idle)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOT_SOURCE", "floppy")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BOOT_SOURCE")
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOT_BUFFER_SIZE", "lots")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("BOOT_REGION_CAPACITY", "-3")
	_, err = Load()
	assert.Error(t, err)
}
