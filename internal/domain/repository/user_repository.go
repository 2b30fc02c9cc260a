package repository

import (
	"context"

	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// UserRepository is the persistence port for users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}
