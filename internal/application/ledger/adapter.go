package ledger

import (
	"context"
	"time"

	"github.com/jcastell/milasset-api/internal/application/dto"
	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/access"
	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// Adapters from the HTTP request DTOs to the usecase inputs. Dates arrive as
// YYYY-MM-DD strings and are normalized to UTC midnight, which is also how
// the ledger stores them.

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date field, reporting the offending field on error.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.Invalid(field, "required")
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "must be YYYY-MM-DD")
	}
	return t, nil
}

// ParseOptionalDate parses a date filter; empty means unset.
func ParseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RecordPurchaseFromRequest adapts the HTTP body to RecordPurchase.
func (uc *UseCase) RecordPurchaseFromRequest(ctx context.Context, scope access.Scope, in dto.CreatePurchaseRequest) (*entity.LedgerEntry, error) {
	date, err := ParseDate("purchase_date", in.PurchaseDate)
	if err != nil {
		return nil, err
	}
	return uc.RecordPurchase(ctx, scope, PurchaseInput{
		BaseID:      in.BaseID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		Date:        date,
	})
}

// RecordTransferFromRequest adapts the HTTP body to RecordTransfer.
func (uc *UseCase) RecordTransferFromRequest(ctx context.Context, scope access.Scope, in dto.CreateTransferRequest) (out, dest *entity.LedgerEntry, err error) {
	date, err := ParseDate("transfer_date", in.TransferDate)
	if err != nil {
		return nil, nil, err
	}
	return uc.RecordTransfer(ctx, scope, TransferInput{
		SourceBaseID: in.SourceBaseID,
		DestBaseID:   in.DestBaseID,
		EquipmentID:  in.EquipmentID,
		Quantity:     in.Quantity,
		Date:         date,
	})
}

// RecordAssignmentFromRequest adapts the HTTP body to RecordAssignment.
func (uc *UseCase) RecordAssignmentFromRequest(ctx context.Context, scope access.Scope, in dto.CreateAssignmentRequest) (*entity.LedgerEntry, error) {
	date, err := ParseDate("assigned_date", in.AssignedDate)
	if err != nil {
		return nil, err
	}
	return uc.RecordAssignment(ctx, scope, AssignmentInput{
		BaseID:        in.BaseID,
		EquipmentID:   in.EquipmentID,
		PersonnelName: in.PersonnelName,
		Quantity:      in.Quantity,
		Date:          date,
	})
}

// RecordExpenditureFromRequest adapts the HTTP body to RecordExpenditure.
func (uc *UseCase) RecordExpenditureFromRequest(ctx context.Context, scope access.Scope, in dto.CreateExpenditureRequest) (*entity.LedgerEntry, error) {
	date, err := ParseDate("expended_date", in.ExpendedDate)
	if err != nil {
		return nil, err
	}
	return uc.RecordExpenditure(ctx, scope, ExpenditureInput{
		BaseID:      in.BaseID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		Date:        date,
	})
}
