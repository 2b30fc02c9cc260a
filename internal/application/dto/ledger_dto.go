package dto

import (
	"time"

	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// CreatePurchaseRequest body of POST /api/purchases.
type CreatePurchaseRequest struct {
	BaseID       int64  `json:"base_id"`
	EquipmentID  int64  `json:"equipment_id"`
	Quantity     int64  `json:"quantity"`
	PurchaseDate string `json:"purchase_date"` // YYYY-MM-DD
}

// CreateTransferRequest body of POST /api/transfers.
type CreateTransferRequest struct {
	SourceBaseID int64  `json:"source_base_id"`
	DestBaseID   int64  `json:"dest_base_id"`
	EquipmentID  int64  `json:"equipment_id"`
	Quantity     int64  `json:"quantity"`
	TransferDate string `json:"transfer_date"` // YYYY-MM-DD
}

// CreateAssignmentRequest body of POST /api/assignments.
type CreateAssignmentRequest struct {
	BaseID        int64  `json:"base_id"`
	EquipmentID   int64  `json:"equipment_id"`
	PersonnelName string `json:"personnel_name"`
	Quantity      int64  `json:"quantity"`
	AssignedDate  string `json:"assigned_date"` // YYYY-MM-DD
}

// CreateExpenditureRequest body of POST /api/expenditures.
type CreateExpenditureRequest struct {
	BaseID       int64  `json:"base_id"`
	EquipmentID  int64  `json:"equipment_id"`
	Quantity     int64  `json:"quantity"`
	ExpendedDate string `json:"expended_date"` // YYYY-MM-DD
}

// LedgerEntryResponse is one ledger row as returned by the list endpoints.
type LedgerEntryResponse struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind"`
	BaseID        int64  `json:"base_id"`
	EquipmentID   int64  `json:"equipment_id"`
	Quantity      int64  `json:"quantity"`
	TransferID    string `json:"transfer_id,omitempty"`
	OtherBaseID   int64  `json:"other_base_id,omitempty"`
	PersonnelName string `json:"personnel_name,omitempty"`
	Date          string `json:"date"`
	CreatedAt     string `json:"created_at"`
}

// NewLedgerEntryResponse maps a domain entry to its response shape.
func NewLedgerEntryResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		BaseID:        e.BaseID,
		EquipmentID:   e.EquipmentID,
		Quantity:      e.Quantity,
		TransferID:    e.TransferID,
		OtherBaseID:   e.OtherBaseID,
		PersonnelName: e.PersonnelName,
		Date:          e.EntryDate.Format("2006-01-02"),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

// NewLedgerEntryResponses maps a slice of entries.
func NewLedgerEntryResponses(entries []*entity.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewLedgerEntryResponse(e))
	}
	return out
}
