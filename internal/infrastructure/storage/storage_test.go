package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	"github.com/jhoicas/estoque-api/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	b, err := storage.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "storage.db"),
	})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.DriverSQLite, b.Driver)
	require.NoError(t, b.Ping(ctx))

	now := time.Now()
	u := &entity.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, b.Users.Create(ctx, u))
	got, err := b.Users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "mongo"})
	assert.Error(t, err)
}
