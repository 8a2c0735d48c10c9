package sqlite

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, transaction_id, product_id, user_id, type, quantity, balance, date`

// MovementRepo ledger de movimientos sobre SQLite. Solo inserta.
type MovementRepo struct {
	q querier
}

// NewMovementRepository construye el repositorio sobre la base del store.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{q: s.db}
}

// Append inserta el movimiento. El producto ya fue validado dentro de la tx,
// así que una violación de llave foránea corresponde al usuario.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (transaction_id, product_id, user_id, type, quantity, balance, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.ProductID, m.UserID, m.Type, m.Quantity, m.Balance, formatTime(m.Date),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return domain.NewStorageError("insert movement", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.NewStorageError("insert movement", err)
	}
	m.ID = id
	return nil
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	return r.list(ctx, "list movements by product",
		`SELECT `+movementColumns+` FROM movements WHERE product_id = ? ORDER BY id DESC`, productID)
}

func (r *MovementRepo) ListByProductAsc(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	return r.list(ctx, "list movements by product asc",
		`SELECT `+movementColumns+` FROM movements WHERE product_id = ? ORDER BY id ASC`, productID)
}

func (r *MovementRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Movement, error) {
	return r.list(ctx, "list movements by user",
		`SELECT `+movementColumns+` FROM movements WHERE user_id = ? ORDER BY id DESC`, userID)
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var (
			m    entity.Movement
			date string
		)
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Balance, &date); err != nil {
			return nil, domain.NewStorageError("scan movement", err)
		}
		if m.Date, err = parseTime(date); err != nil {
			return nil, domain.NewStorageError("scan movement", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return list, nil
}
