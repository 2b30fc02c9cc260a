package repository

import (
	"context"

	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// BaseRepository is the persistence port for Base reference data.
type BaseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Base, error)
	List(ctx context.Context) ([]*entity.Base, error)
	Create(ctx context.Context, b *entity.Base) error
}
