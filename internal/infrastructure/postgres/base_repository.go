package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
)

var _ repository.BaseRepository = (*BaseRepo)(nil)

// BaseRepo PostgreSQL adapter for Base reference data.
type BaseRepo struct {
	q Querier
}

// NewBaseRepository builds the adapter. Pass a pool or a tx (Querier).
func NewBaseRepository(q Querier) *BaseRepo {
	return &BaseRepo{q: q}
}

// GetByID fetches one base; nil when it does not exist.
func (r *BaseRepo) GetByID(ctx context.Context, id int64) (*entity.Base, error) {
	var b entity.Base
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at FROM bases WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get base: %w", mapStorageErr(err))
	}
	return &b, nil
}

// List returns all bases ordered by id.
func (r *BaseRepo) List(ctx context.Context) ([]*entity.Base, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM bases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list bases: %w", mapStorageErr(err))
	}
	defer rows.Close()

	var list []*entity.Base
	for rows.Next() {
		var b entity.Base
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Create inserts a base (administrative seeding only).
func (r *BaseRepo) Create(ctx context.Context, b *entity.Base) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO bases (name) VALUES ($1) RETURNING id, created_at`, b.Name,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create base: %w", mapStorageErr(err))
	}
	return nil
}
