package repository

import (
	"context"

	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// EquipmentRepository is the persistence port for the equipment catalog.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.EquipmentType, error)
	List(ctx context.Context) ([]*entity.EquipmentType, error)
	Create(ctx context.Context, e *entity.EquipmentType) error
}
