package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: db.internal\nJWT_TTL_MINUTES: 30\nAPP_PORT: \"9000\"\n"), 0o600))

	LoadConfigFile(path)
	t.Cleanup(func() { config = Config{} })

	t.Run("file value", func(t *testing.T) {
		assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
		assert.Equal(t, 30, GetConfigInt("JWT_TTL_MINUTES"))
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("APP_PORT", "7000")
		assert.Equal(t, "7000", GetConfig("APP_PORT"))
	})

	t.Run("default", func(t *testing.T) {
		assert.Equal(t, "disable", GetConfig("DB_SSLMODE"))
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Empty(t, GetConfig("NOPE"))
		assert.Zero(t, GetConfigInt("NOPE"))
	})
}

func TestLoadConfigFileMissing(t *testing.T) {
	LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, "8000", GetConfig("APP_PORT"))
}
