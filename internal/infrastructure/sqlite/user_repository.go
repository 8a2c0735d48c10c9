package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre SQLite.
type UserRepo struct {
	q querier
}

// NewUserRepository construye el repositorio sobre la base del store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{q: s.db}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Active, formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict(domain.FieldEmail)
		}
		return domain.NewStorageError("insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.NewStorageError("insert user", err)
	}
	u.ID = id
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `WHERE id = ?`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `WHERE email = ?`, email)
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	var (
		u                    entity.User
		createdAt, updatedAt string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, active, created_at, updated_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError(op, err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return &u, nil
}
