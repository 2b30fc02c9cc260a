// Package reference serves the base and equipment lookup lists. Reference
// data is seeded administratively and only read here.
package reference

import (
	"context"

	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
)

// UseCase lists reference data for any authenticated role.
type UseCase struct {
	baseRepo  repository.BaseRepository
	equipRepo repository.EquipmentRepository
}

// NewUseCase builds the usecase.
func NewUseCase(baseRepo repository.BaseRepository, equipRepo repository.EquipmentRepository) *UseCase {
	return &UseCase{baseRepo: baseRepo, equipRepo: equipRepo}
}

// Bases lists all bases.
func (uc *UseCase) Bases(ctx context.Context) ([]*entity.Base, error) {
	return uc.baseRepo.List(ctx)
}

// Equipment lists the equipment catalog.
func (uc *UseCase) Equipment(ctx context.Context) ([]*entity.EquipmentType, error) {
	return uc.equipRepo.List(ctx)
}
