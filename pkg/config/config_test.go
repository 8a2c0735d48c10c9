package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 3333, cfg.HTTP.Port)
	assert.Equal(t, "America/Sao_Paulo", cfg.Ledger.TimeZone)
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/estoque-test.db")
	t.Setenv("LEDGER_TIMEZONE", "UTC")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/estoque-test.db", cfg.DB.SQLitePath)
	assert.Equal(t, "UTC", cfg.Ledger.TimeZone)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "estoque", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/estoque?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", " ")
	_, err := config.Load()
	assert.Error(t, err, "sqlite sin ruta")

	t.Setenv("SQLITE_PATH", "estoque.db")
	t.Setenv("HTTP_PORT", "70000")
	_, err = config.Load()
	assert.Error(t, err, "puerto fuera de rango")

	t.Setenv("HTTP_PORT", "3333")
	t.Setenv("DB_FORCE_IPV4", "false")
	t.Setenv("DB_MAX_CONNS", "8")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 8, cfg.DB.MaxConns)
}
