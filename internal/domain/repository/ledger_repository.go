package repository

import (
	"context"
	"time"

	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// LedgerFilter narrows a ledger scan. Zero values mean "no filter".
type LedgerFilter struct {
	BaseID      int64
	EquipmentID int64
	Kinds       []entity.Kind
	From        *time.Time // inclusive entry-date lower bound
	To          *time.Time // inclusive entry-date upper bound
	Limit       int        // 0 = no limit
	Offset      int
}

// LedgerRepository is the persistence port for the append-only stock ledger.
// Appends are visible to any List issued after Create returns.
type LedgerRepository interface {
	// Create appends an entry. The entry's id and timestamps must already be
	// assigned by the caller; the row is never updated afterwards.
	Create(ctx context.Context, e *entity.LedgerEntry) error

	// List returns matching entries ordered by entry date ascending, then id
	// ascending, so aggregation over the result is deterministic.
	List(ctx context.Context, f LedgerFilter) ([]*entity.LedgerEntry, error)
}
