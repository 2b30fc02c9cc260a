package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/access"
	"github.com/jcastell/milasset-api/internal/domain/entity"
	dledger "github.com/jcastell/milasset-api/internal/domain/ledger"
	"github.com/jcastell/milasset-api/internal/domain/repository"
	"github.com/jcastell/milasset-api/pkg/metrics"
)

// IDGenerator hands out monotonically increasing ledger entry ids.
type IDGenerator interface {
	NextID() int64
}

// UseCase records the four transaction kinds against the append-only ledger.
// Stock-decreasing kinds pass through the per-key StockGuard, which recomputes
// on-hand from the ledger inside the critical section so no interleaving can
// drive a (base, equipment) pair negative.
type UseCase struct {
	ledgerRepo repository.LedgerRepository
	baseRepo   repository.BaseRepository
	equipRepo  repository.EquipmentRepository
	txRunner   TxRunner
	guard      *StockGuard
	idGen      IDGenerator
}

// NewUseCase builds the usecase.
func NewUseCase(
	ledgerRepo repository.LedgerRepository,
	baseRepo repository.BaseRepository,
	equipRepo repository.EquipmentRepository,
	txRunner TxRunner,
	guard *StockGuard,
	idGen IDGenerator,
) *UseCase {
	return &UseCase{
		ledgerRepo: ledgerRepo,
		baseRepo:   baseRepo,
		equipRepo:  equipRepo,
		txRunner:   txRunner,
		guard:      guard,
		idGen:      idGen,
	}
}

// PurchaseInput parameters for RecordPurchase.
type PurchaseInput struct {
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        time.Time
}

// TransferInput parameters for RecordTransfer.
type TransferInput struct {
	SourceBaseID int64
	DestBaseID   int64
	EquipmentID  int64
	Quantity     int64
	Date         time.Time
}

// AssignmentInput parameters for RecordAssignment.
type AssignmentInput struct {
	BaseID        int64
	EquipmentID   int64
	PersonnelName string
	Quantity      int64
	Date          time.Time
}

// ExpenditureInput parameters for RecordExpenditure.
type ExpenditureInput struct {
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        time.Time
}

// RecordPurchase appends a purchase. Purchases only move stock upward, so
// they bypass the guard but still go through full reference validation.
func (uc *UseCase) RecordPurchase(ctx context.Context, scope access.Scope, in PurchaseInput) (*entity.LedgerEntry, error) {
	if !scope.CanWrite(access.OpRecordPurchase, in.BaseID) {
		metrics.ForbiddenTotal.Inc()
		return nil, domain.ErrForbidden
	}
	if err := uc.validateCommon(ctx, in.BaseID, in.EquipmentID, in.Quantity, in.Date, "purchase_date"); err != nil {
		return nil, err
	}

	e := uc.newEntry(entity.KindPurchase, in.BaseID, in.EquipmentID, in.Quantity, in.Date, scope.UserID)
	if err := uc.ledgerRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	metrics.LedgerEntriesTotal.WithLabelValues(string(entity.KindPurchase)).Inc()
	return e, nil
}

// RecordTransfer appends both legs of a transfer atomically: a transfer_out
// at the source and a transfer_in at the destination sharing one transfer id.
// The source key is guarded; the destination only ever gains stock.
func (uc *UseCase) RecordTransfer(ctx context.Context, scope access.Scope, in TransferInput) (out, dest *entity.LedgerEntry, err error) {
	if !scope.CanWrite(access.OpRecordTransfer, in.SourceBaseID) {
		metrics.ForbiddenTotal.Inc()
		return nil, nil, domain.ErrForbidden
	}
	if in.SourceBaseID == in.DestBaseID {
		return nil, nil, domain.Invalid("dest_base_id", "must differ from source_base_id")
	}
	if err := uc.validateCommon(ctx, in.SourceBaseID, in.EquipmentID, in.Quantity, in.Date, "transfer_date"); err != nil {
		return nil, nil, err
	}
	if destBase, err := uc.baseRepo.GetByID(ctx, in.DestBaseID); err != nil {
		return nil, nil, err
	} else if destBase == nil {
		return nil, nil, domain.Invalid("dest_base_id", "unknown base")
	}

	release, err := uc.guard.Acquire(ctx, in.SourceBaseID, in.EquipmentID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	onHand, _, err := uc.currentStock(ctx, in.SourceBaseID, in.EquipmentID)
	if err != nil {
		return nil, nil, err
	}
	if onHand-in.Quantity < 0 {
		metrics.InsufficientStockTotal.Inc()
		return nil, nil, domain.ErrInsufficientStock
	}

	transferID := uuid.New().String()
	outLeg := uc.newEntry(entity.KindTransferOut, in.SourceBaseID, in.EquipmentID, in.Quantity, in.Date, scope.UserID)
	outLeg.TransferID = transferID
	outLeg.OtherBaseID = in.DestBaseID
	inLeg := uc.newEntry(entity.KindTransferIn, in.DestBaseID, in.EquipmentID, in.Quantity, in.Date, scope.UserID)
	inLeg.TransferID = transferID
	inLeg.OtherBaseID = in.SourceBaseID

	// Both legs commit together or not at all.
	err = uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository) error {
		if err := ledgerRepo.Create(ctx, outLeg); err != nil {
			return err
		}
		return ledgerRepo.Create(ctx, inLeg)
	})
	if err != nil {
		return nil, nil, err
	}
	metrics.LedgerEntriesTotal.WithLabelValues(string(entity.KindTransferOut)).Inc()
	metrics.LedgerEntriesTotal.WithLabelValues(string(entity.KindTransferIn)).Inc()
	return outLeg, inLeg, nil
}

// RecordAssignment allocates on-hand stock to named personnel. The allocation
// does not move stock, but the cumulative assigned quantity may never exceed
// what is physically on hand.
func (uc *UseCase) RecordAssignment(ctx context.Context, scope access.Scope, in AssignmentInput) (*entity.LedgerEntry, error) {
	if !scope.CanWrite(access.OpRecordAssignment, in.BaseID) {
		metrics.ForbiddenTotal.Inc()
		return nil, domain.ErrForbidden
	}
	if in.PersonnelName == "" {
		return nil, domain.Invalid("personnel_name", "required")
	}
	if err := uc.validateCommon(ctx, in.BaseID, in.EquipmentID, in.Quantity, in.Date, "assigned_date"); err != nil {
		return nil, err
	}

	release, err := uc.guard.Acquire(ctx, in.BaseID, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	onHand, assigned, err := uc.currentStock(ctx, in.BaseID, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if assigned+in.Quantity > onHand {
		metrics.InsufficientStockTotal.Inc()
		return nil, domain.ErrInsufficientStock
	}

	e := uc.newEntry(entity.KindAssignment, in.BaseID, in.EquipmentID, in.Quantity, in.Date, scope.UserID)
	e.PersonnelName = in.PersonnelName
	if err := uc.ledgerRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	metrics.LedgerEntriesTotal.WithLabelValues(string(entity.KindAssignment)).Inc()
	return e, nil
}

// RecordExpenditure permanently removes stock (consumed or destroyed).
func (uc *UseCase) RecordExpenditure(ctx context.Context, scope access.Scope, in ExpenditureInput) (*entity.LedgerEntry, error) {
	if !scope.CanWrite(access.OpRecordExpenditure, in.BaseID) {
		metrics.ForbiddenTotal.Inc()
		return nil, domain.ErrForbidden
	}
	if err := uc.validateCommon(ctx, in.BaseID, in.EquipmentID, in.Quantity, in.Date, "expended_date"); err != nil {
		return nil, err
	}

	release, err := uc.guard.Acquire(ctx, in.BaseID, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	onHand, _, err := uc.currentStock(ctx, in.BaseID, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if onHand-in.Quantity < 0 {
		metrics.InsufficientStockTotal.Inc()
		return nil, domain.ErrInsufficientStock
	}

	e := uc.newEntry(entity.KindExpenditure, in.BaseID, in.EquipmentID, in.Quantity, in.Date, scope.UserID)
	if err := uc.ledgerRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	metrics.LedgerEntriesTotal.WithLabelValues(string(entity.KindExpenditure)).Inc()
	return e, nil
}

// ListInput parameters for List.
type ListInput struct {
	Kinds       []entity.Kind
	BaseID      int64 // 0 = all bases the scope may see
	EquipmentID int64
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// List returns ledger entries visible to the scope, ordered by entry date
// then id. Commanders asking for "all bases" are narrowed to their own.
func (uc *UseCase) List(ctx context.Context, scope access.Scope, in ListInput) ([]*entity.LedgerEntry, error) {
	baseID := scope.NarrowBase(in.BaseID)
	if baseID != 0 && !scope.CanRead(baseID) {
		metrics.ForbiddenTotal.Inc()
		return nil, domain.ErrForbidden
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return nil, domain.Invalid("start_date", "must not be after end_date")
	}
	return uc.ledgerRepo.List(ctx, repository.LedgerFilter{
		BaseID:      baseID,
		EquipmentID: in.EquipmentID,
		Kinds:       in.Kinds,
		From:        in.From,
		To:          in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
}

// currentStock scans the full (base, equipment) history and derives on-hand
// and assigned totals. Called only while holding the guard key.
func (uc *UseCase) currentStock(ctx context.Context, baseID, equipmentID int64) (onHand, assigned int64, err error) {
	entries, err := uc.ledgerRepo.List(ctx, repository.LedgerFilter{
		BaseID:      baseID,
		EquipmentID: equipmentID,
	})
	if err != nil {
		return 0, 0, err
	}
	return dledger.OnHand(entries), dledger.AssignedTotal(entries), nil
}

// validateCommon checks quantity, date and the base/equipment references.
func (uc *UseCase) validateCommon(ctx context.Context, baseID, equipmentID, quantity int64, date time.Time, dateField string) error {
	if quantity <= 0 {
		return domain.Invalid("quantity", "must be a positive integer")
	}
	if date.IsZero() {
		return domain.Invalid(dateField, "required")
	}
	base, err := uc.baseRepo.GetByID(ctx, baseID)
	if err != nil {
		return err
	}
	if base == nil {
		return domain.Invalid("base_id", "unknown base")
	}
	equip, err := uc.equipRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if equip == nil {
		return domain.Invalid("equipment_id", "unknown equipment type")
	}
	return nil
}

func (uc *UseCase) newEntry(kind entity.Kind, baseID, equipmentID, quantity int64, date time.Time, userID string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          uc.idGen.NextID(),
		Kind:        kind,
		BaseID:      baseID,
		EquipmentID: equipmentID,
		Quantity:    quantity,
		EntryDate:   date,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   userID,
	}
}
