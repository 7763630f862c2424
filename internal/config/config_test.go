package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DESKBOOK_CONFIG", "DESKBOOK_PORT", "DESKBOOK_STORE", "DESKBOOK_DATABASE_URL", "DATABASE_URL",
	"DESKBOOK_SQLITE_PATH", "DESKBOOK_REDIS_URL", "DESKBOOK_SESSION_SECRET", "DESKBOOK_SESSION_TTL_HOURS",
	"DESKBOOK_SESSION_PURGE_MINUTES", "DESKBOOK_SECURE_COOKIES", "DESKBOOK_ADMIN_USERNAME",
	"DESKBOOK_ADMIN_PASSWORD", "DESKBOOK_LOGIN_ATTEMPTS_PER_MINUTE", "DESKBOOK_LOGIN_BURST",
	"DESKBOOK_BANNER", "DESKBOOK_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "deskbook.db", cfg.SQLitePath)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin", cfg.AdminPassword)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, ":5000", cfg.ListenAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESKBOOK_PORT", "8081")
	t.Setenv("DESKBOOK_STORE", "Memory")
	t.Setenv("DESKBOOK_SESSION_TTL_HOURS", "2")
	t.Setenv("DESKBOOK_SECURE_COOKIES", "true")
	t.Setenv("DESKBOOK_LOGIN_ATTEMPTS_PER_MINUTE", "0")
	t.Setenv("DESKBOOK_ADMIN_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 0, cfg.LoginAttemptsPerMinute)
	assert.Equal(t, "s3cret", cfg.AdminPassword)
}

func TestLoad_InvalidPortIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESKBOOK_PORT", "99999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoad_DatabaseURLSelectsPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "deskbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 7000
store: memory
banner: "**Manutenção** às 22h"
log_level: debug
`), 0o600))
	t.Setenv("DESKBOOK_CONFIG", path)
	t.Setenv("DESKBOOK_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "**Manutenção** às 22h", cfg.Banner)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESKBOOK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store = "mongo"
	assert.Error(t, cfg.Validate())

	cfg.Store = StorePostgres
	assert.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgres://localhost/db"
	assert.NoError(t, cfg.Validate())

	cfg.AdminPassword = ""
	assert.Error(t, cfg.Validate())
}
