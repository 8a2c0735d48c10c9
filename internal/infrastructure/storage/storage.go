// Package storage selecciona el backend de persistencia (PostgreSQL o SQLite) según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Backend repositorios y TxRunner de un mismo almacenamiento.
type Backend struct {
	Driver    string
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Users     repository.UserRepository
	TxRunner  inventory.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Open conecta al driver configurado y aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Driver:    cfg.Driver,
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:    cfg.Driver,
			Products:  sqlite.NewProductRepository(store),
			Movements: sqlite.NewMovementRepository(store),
			Users:     sqlite.NewUserRepository(store),
			TxRunner:  sqlite.NewTxRunner(store),
			ping:      store.Ping,
			close:     func() { _ = store.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}

// Ping verifica la conexión (health check).
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// Close libera las conexiones.
func (b *Backend) Close() { b.close() }
