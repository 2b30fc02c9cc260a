// Package report renders ledger data into downloadable spreadsheets.
package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
	"github.com/jcastell/milasset-api/internal/domain/access"
)

const sheetName = "Ledger"

// Exporter builds the Excel ledger report on top of the scoped list usecase,
// so exports honor the same role restrictions as the JSON endpoints.
type Exporter struct {
	ledgerUC *appledger.UseCase
}

// NewExporter builds the exporter.
func NewExporter(ledgerUC *appledger.UseCase) *Exporter {
	return &Exporter{ledgerUC: ledgerUC}
}

// LedgerWorkbook returns an .xlsx with one row per ledger entry matching the
// filter, ordered the way the ledger orders them.
func (e *Exporter) LedgerWorkbook(ctx context.Context, scope access.Scope, baseID int64, from, to *time.Time) ([]byte, error) {
	entries, err := e.ledgerUC.List(ctx, scope, appledger.ListInput{BaseID: baseID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Kind", "Base", "Equipment", "Quantity", "Counterparty Base", "Personnel", "Date", "Recorded At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.ID,
			string(entry.Kind),
			entry.BaseID,
			entry.EquipmentID,
			entry.Quantity,
			entry.OtherBaseID,
			entry.PersonnelName,
			entry.EntryDate.Format("2006-01-02"),
			entry.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
