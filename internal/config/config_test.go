package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"COMPASS_STORE", "DATABASE_URL", "BADGER_PATH", "LOG_LEVEL", "LOG_FORMAT", "EXPORT_DIR", "COMPASS_CONFIG"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "compass.db", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "compass.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: badger\nbadger_path: /tmp/rocks\nlog_level: debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreBadger, cfg.Store)
	assert.Equal(t, "/tmp/rocks", cfg.BadgerPath)
	assert.Equal(t, "warn", cfg.LogLevel)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestPostgresDSNSelectsPostgres(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://compass@localhost/compass")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cfg := defaults()
	cfg.Store = "etcd"
	assert.Error(t, cfg.Validate())

	cfg = defaults()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = defaults()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())
}

func TestPostgresStoreNeedsPostgresDSN(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("COMPASS_STORE", "postgres")

	_, err := Load("")
	assert.ErrorContains(t, err, "needs a postgres DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgresql://compass@localhost/compass")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)

	cfg = defaults()
	cfg.DatabaseURL = "postgres://compass@localhost/compass"
	assert.Error(t, cfg.Validate())
}
