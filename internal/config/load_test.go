package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests use t.Setenv and therefore cannot run in parallel.

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRAFTFORGE_DATABASE_URL", "postgres://localhost:5432/draftforge_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 100, cfg.Task.QueueSize)
	assert.Equal(t, "postgres://localhost:5432/draftforge_test", cfg.Database.URL)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DRAFTFORGE_DATABASE_URL", "postgres://localhost:5432/draftforge_test")
	t.Setenv("DRAFTFORGE_SERVER_PORT", "9090")
	t.Setenv("DRAFTFORGE_SERVER_LOG_LEVEL", "debug")
	t.Setenv("DRAFTFORGE_TASK_WORKER_COUNT", "8")
	t.Setenv("DRAFTFORGE_DATABASE_MAX_OPEN_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 8, cfg.Task.WorkerCount)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing database URL", func(t *testing.T) {
		t.Setenv("DRAFTFORGE_DATABASE_URL", "")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("DRAFTFORGE_DATABASE_URL", "postgres://localhost:5432/draftforge_test")
		t.Setenv("DRAFTFORGE_SERVER_PORT", "70000")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("zero max open connections", func(t *testing.T) {
		t.Setenv("DRAFTFORGE_DATABASE_URL", "postgres://localhost:5432/draftforge_test")
		t.Setenv("DRAFTFORGE_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("DRAFTFORGE_DATABASE_URL", "postgres://localhost:5432/draftforge_test")
		t.Setenv("DRAFTFORGE_SERVER_LOG_LEVEL", "verbose")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
