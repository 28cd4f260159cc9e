package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-farmacia/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	// Viper trata la variable vacía como no definida.
	t.Setenv("LEDGER_STORAGE", "")
	t.Setenv("LEDGER_STORAGE_TIMEOUT", "")
	t.Setenv("REDIS_ADDR", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Ledger.Storage)
	assert.Equal(t, 5*time.Second, cfg.Ledger.StorageTimeout)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_DesdeVariablesDeEntorno(t *testing.T) {
	t.Setenv("LEDGER_STORAGE", "Postgres")
	t.Setenv("LEDGER_STORAGE_TIMEOUT", "1500ms")
	t.Setenv("LEDGER_LOCK_TIMEOUT", "250")
	t.Setenv("LEDGER_MAX_APPEND_RETRIES", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoragePostgres, cfg.Ledger.Storage)
	assert.Equal(t, 1500*time.Millisecond, cfg.Ledger.StorageTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Ledger.LockTimeout)
	assert.Equal(t, 5, cfg.Ledger.MaxAppendRetries)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("LEDGER_STORAGE", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "kardex", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/kardex?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
