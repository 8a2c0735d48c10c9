package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Requiere una base PostgreSQL desechable: TEST_DATABASE_URL=postgres://... go test ./...
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE movements, products, users RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestPostgres_ProductoYLedger(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	user := &entity.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, user))

	dup := *user
	err := postgres.NewUserRepository(pool).Create(ctx, &dup)
	field, ok := domain.ConflictField(err)
	require.True(t, ok)
	assert.Equal(t, domain.FieldEmail, field)

	p := &entity.Product{Name: "Caneta", Description: "azul", Value: decimal.RequireFromString("12.50"), MinimumValue: 5, CreatedAt: now, UpdatedAt: now}
	err = postgres.NewTxRunner(pool).Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		locked, err := products.GetForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		require.NotNil(t, locked)
		if err := products.UpdateQuantity(ctx, p.ID, 3); err != nil {
			return err
		}
		return movements.Append(ctx, &entity.Movement{
			TransactionID: uuid.New().String(), ProductID: p.ID, UserID: user.ID,
			Type: entity.MovementTypeEntrada, Quantity: 3, Balance: 3, Date: now,
		})
	})
	require.NoError(t, err)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.Quantity)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Value))

	movs, err := postgres.NewMovementRepository(pool).ListByProductAsc(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(3), movs[0].Balance)

	// nombre duplicado
	again := &entity.Product{Name: "Caneta", Description: "otra", CreatedAt: now, UpdatedAt: now}
	field, ok = domain.ConflictField(postgres.NewProductRepository(pool).Create(ctx, again))
	require.True(t, ok)
	assert.Equal(t, domain.FieldName, field)

	// usuario inexistente
	err = postgres.NewMovementRepository(pool).Append(ctx, &entity.Movement{
		TransactionID: uuid.New().String(), ProductID: p.ID, UserID: 999,
		Type: entity.MovementTypeEntrada, Quantity: 1, Balance: 4, Date: now,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// borrado lógico
	require.NoError(t, postgres.NewProductRepository(pool).SoftDelete(ctx, p.ID))
	assert.ErrorIs(t, postgres.NewProductRepository(pool).SoftDelete(ctx, p.ID), domain.ErrProductNotFound)
	exists, err := postgres.NewProductRepository(pool).Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgres_RollbackSinEfectos(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	now := time.Now()

	err := postgres.NewTxRunner(pool).Run(ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		if err := products.Create(ctx, &entity.Product{Name: "Lapis", Description: "HB", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return domain.ErrInvalidQuantity
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	list, err := postgres.NewProductRepository(pool).List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
