package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo PostgreSQL adapter for the equipment catalog.
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository builds the adapter. Pass a pool or a tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// GetByID fetches one equipment type; nil when it does not exist.
func (r *EquipmentRepo) GetByID(ctx context.Context, id int64) (*entity.EquipmentType, error) {
	var e entity.EquipmentType
	err := r.q.QueryRow(ctx,
		`SELECT id, name, category, created_at FROM equipment_types WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Category, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment type: %w", mapStorageErr(err))
	}
	return &e, nil
}

// List returns the catalog ordered by id.
func (r *EquipmentRepo) List(ctx context.Context) ([]*entity.EquipmentType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, category, created_at FROM equipment_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list equipment types: %w", mapStorageErr(err))
	}
	defer rows.Close()

	var list []*entity.EquipmentType
	for rows.Next() {
		var e entity.EquipmentType
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment type: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Create inserts a catalog entry (administrative seeding only).
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.EquipmentType) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO equipment_types (name, category) VALUES ($1, $2) RETURNING id, created_at`,
		e.Name, e.Category,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create equipment type: %w", mapStorageErr(err))
	}
	return nil
}
