package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, transaction_id::text, product_id, user_id, type, quantity, balance, date`

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx). Solo inserta, nunca modifica.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento y asigna su ID (secuencia creciente).
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (transaction_id, product_id, user_id, type, quantity, balance, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.ProductID, m.UserID, m.Type, m.Quantity, m.Balance, m.Date,
	).Scan(&m.ID)
	if err != nil {
		if constraint, ok := isForeignKeyViolation(err); ok {
			if constraint == "fk_movements_user" {
				return domain.ErrUserNotFound
			}
			return domain.ErrProductNotFound
		}
		return domain.NewStorageError("insert movement", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más reciente primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 ORDER BY id DESC`
	return r.list(ctx, "list movements by product", query, productID)
}

// ListByProductAsc lista movimientos de un producto en orden cronológico.
func (r *MovementRepo) ListByProductAsc(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 ORDER BY id ASC`
	return r.list(ctx, "list movements by product asc", query, productID)
}

// ListByUser lista movimientos registrados por un usuario, más reciente primero.
func (r *MovementRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE user_id = $1 ORDER BY id DESC`
	return r.list(ctx, "list movements by user", query, userID)
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan movement", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Balance, &m.Date)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
