package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo PostgreSQL adapter for users.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass a pool or a tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByUsername fetches one user; nil when it does not exist.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	var baseID *int64
	err := r.q.QueryRow(ctx,
		`SELECT id, username, name, password_hash, role, base_id, created_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &baseID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", mapStorageErr(err))
	}
	if baseID != nil {
		u.BaseID = *baseID
	}
	return &u, nil
}

// Create inserts a user (seeding only).
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	var baseID *int64
	if u.BaseID != 0 {
		baseID = &u.BaseID
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (id, username, name, password_hash, role, base_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.Name, u.PasswordHash, u.Role, baseID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Invalid("username", "already exists")
		}
		return fmt.Errorf("create user: %w", mapStorageErr(err))
	}
	return nil
}
