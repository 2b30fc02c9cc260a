package entity

import "time"

// Kind of ledger entry. A logical transfer is stored as two entries
// (transfer_out at the source, transfer_in at the destination) sharing
// a TransferID.
type Kind string

const (
	KindPurchase    Kind = "purchase"
	KindTransferIn  Kind = "transfer_in"
	KindTransferOut Kind = "transfer_out"
	KindAssignment  Kind = "assignment"
	KindExpenditure Kind = "expenditure"
)

// Valid reports whether k is one of the five ledger kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPurchase, KindTransferIn, KindTransferOut, KindAssignment, KindExpenditure:
		return true
	}
	return false
}

// Delta returns the signed effect of the kind on on-hand stock.
// Assignments allocate stock without moving it, so their delta is zero.
func (k Kind) Delta() int64 {
	switch k {
	case KindPurchase, KindTransferIn:
		return 1
	case KindTransferOut, KindExpenditure:
		return -1
	}
	return 0
}

// LedgerEntry is one immutable row in the append-only stock ledger.
// Entries are never mutated or deleted; corrections are new offsetting entries.
type LedgerEntry struct {
	// ID is assigned by the server and increases monotonically; within a
	// transaction date it is the ordering tie-breaker.
	ID          int64
	Kind        Kind
	BaseID      int64
	EquipmentID int64
	// Quantity is strictly positive for every kind; the sign of the stock
	// effect comes from Kind.Delta.
	Quantity int64

	// TransferID links the out and in legs of a transfer. Empty otherwise.
	TransferID string
	// OtherBaseID is the counterparty base of a transfer leg. Zero otherwise.
	OtherBaseID int64

	// PersonnelName is set on assignments only.
	PersonnelName string

	// EntryDate is the calendar date the transaction is effective on.
	EntryDate time.Time
	// CreatedAt is the server-assigned append timestamp.
	CreatedAt time.Time
	CreatedBy string // user id
}
