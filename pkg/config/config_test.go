package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-ledger/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.Storage)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.Engine.LockTimeout)
	assert.Equal(t, "inventory.events", cfg.AMQP.Exchange)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ENGINE_LOCK_TIMEOUT_MS", "250")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.App.Storage)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.LockTimeout)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 5*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_StorageInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "wms", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/wms?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

// chdir cambia el directorio de trabajo durante el test y lo restaura al terminar (equivalente a t.Chdir de Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
