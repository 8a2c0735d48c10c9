package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, value, minimum_value, quantity, image, created_at, updated_at, deleted_at`

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q querier
}

// NewProductRepository construye el repositorio sobre la base del store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{q: s.db}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products (name, description, value, minimum_value, quantity, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Value.String(), p.MinimumValue, p.Quantity, p.Image,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictFromUnique(err, domain.FieldName)
		}
		return domain.NewStorageError("insert product", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.NewStorageError("insert product", err)
	}
	p.ID = id
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get product", err)
	}
	return p, nil
}

// GetForUpdate equivale a GetByID: la transacción ya tiene la única conexión.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, "list products",
		`SELECT `+productColumns+` FROM products WHERE deleted_at IS NULL ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
}

func (r *ProductRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list products below minimum",
		`SELECT `+productColumns+` FROM products WHERE deleted_at IS NULL AND quantity < minimum_value ORDER BY id`)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return list, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, value = ?, minimum_value = ?, image = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		p.Name, p.Description, p.Value.String(), p.MinimumValue, p.Image, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictFromUnique(err, domain.FieldName)
		}
		return domain.NewStorageError("update product", err)
	}
	return requireAffected(res, "update product")
}

func (r *ProductRepo) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET quantity = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		quantity, formatTime(time.Now()), id)
	if err != nil {
		return domain.NewStorageError("update product quantity", err)
	}
	return requireAffected(res, "update product quantity")
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	now := formatTime(time.Now())
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, now, now, id)
	if err != nil {
		return domain.NewStorageError("delete product", err)
	}
	return requireAffected(res, "delete product")
}

func (r *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)`, id).Scan(&ok); err != nil {
		return false, domain.NewStorageError("product exists", err)
	}
	return ok, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p                    entity.Product
		value                string
		createdAt, updatedAt string
		deletedAt            sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &value, &p.MinimumValue, &p.Quantity,
		&p.Image, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	if err := p.Value.Scan(value); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t, err := parseTime(deletedAt.String)
		if err != nil {
			return nil, err
		}
		p.DeletedAt = &t
	}
	return &p, nil
}
