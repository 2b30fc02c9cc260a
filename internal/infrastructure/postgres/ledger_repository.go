package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo PostgreSQL adapter for the ledger (usable with pool or tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the adapter. Pass a pool or a tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, kind, base_id, equipment_id, quantity, transfer_id, other_base_id, personnel_name, entry_date, created_at, created_by`

// Create appends one immutable ledger row. Rows are never updated or deleted.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var transferID *string
	if e.TransferID != "" {
		transferID = &e.TransferID
	}
	var otherBaseID *int64
	if e.OtherBaseID != 0 {
		otherBaseID = &e.OtherBaseID
	}
	var personnel *string
	if e.PersonnelName != "" {
		personnel = &e.PersonnelName
	}
	var createdBy *string
	if e.CreatedBy != "" {
		createdBy = &e.CreatedBy
	}

	_, err := r.q.Exec(ctx, query,
		e.ID, string(e.Kind), e.BaseID, e.EquipmentID, e.Quantity,
		transferID, otherBaseID, personnel, e.EntryDate, e.CreatedAt, createdBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("base_id", "unknown reference")
		}
		return fmt.Errorf("create ledger entry: %w", mapStorageErr(err))
	}
	return nil
}

// List scans matching entries ordered by entry date ascending, id ascending.
// The fixed order makes aggregation over the result deterministic.
func (r *LedgerRepo) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE 1=1`
	var args []any
	pos := 1

	if f.BaseID != 0 {
		query += fmt.Sprintf(" AND base_id = $%d", pos)
		args = append(args, f.BaseID)
		pos++
	}
	if f.EquipmentID != 0 {
		query += fmt.Sprintf(" AND equipment_id = $%d", pos)
		args = append(args, f.EquipmentID)
		pos++
	}
	if len(f.Kinds) > 0 {
		placeholders := make([]string, 0, len(f.Kinds))
		for _, k := range f.Kinds {
			placeholders = append(placeholders, fmt.Sprintf("$%d", pos))
			args = append(args, string(k))
			pos++
		}
		query += " AND kind IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}

	query += " ORDER BY entry_date ASC, id ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", mapStorageErr(err))
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var kind string
		var transferID, personnel, createdBy *string
		var otherBaseID *int64
		if err := rows.Scan(&e.ID, &kind, &e.BaseID, &e.EquipmentID, &e.Quantity,
			&transferID, &otherBaseID, &personnel, &e.EntryDate, &e.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Kind = entity.Kind(kind)
		if transferID != nil {
			e.TransferID = *transferID
		}
		if otherBaseID != nil {
			e.OtherBaseID = *otherBaseID
		}
		if personnel != nil {
			e.PersonnelName = *personnel
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
