package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "./media", cfg.MediaDir)
	assert.False(t, cfg.Seed)
	assert.EqualValues(t, 8<<20, cfg.MaxUploadBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STOREKEEPER_PORT", "9000")
	t.Setenv("STOREKEEPER_DATA_DIR", "/var/lib/storekeeper")
	t.Setenv("STOREKEEPER_SEED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/var/lib/storekeeper", cfg.DataDir)
	assert.True(t, cfg.Seed)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STOREKEEPER_SEED", "maybe")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("STOREKEEPER_SEED", "false")
	t.Setenv("STOREKEEPER_MAX_UPLOAD_BYTES", "0")
	_, err = config.Load()
	assert.Error(t, err)
}
