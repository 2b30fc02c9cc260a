// Package ledger holds the pure balance arithmetic over ordered ledger scans.
// It is the correctness reference for every stock figure the API reports:
// whatever the storage layer does for speed must agree with these functions.
package ledger

import (
	"time"

	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// Summary is the dashboard aggregate for one base over a date window.
type Summary struct {
	OpeningBalance int64
	Purchases      int64
	TransferIn     int64
	TransferOut    int64
	Assigned       int64
	Expended       int64
	NetMovement    int64
	ClosingBalance int64
}

// Summarize computes the aggregate from a single ordered scan.
// Entries must be sorted by entry date ascending, id ascending, and already
// filtered to one base. start/end bound the window; nil means unbounded.
// Entries dated strictly before start feed the opening balance; entries after
// end are ignored.
func Summarize(entries []*entity.LedgerEntry, start, end *time.Time) Summary {
	var s Summary
	for _, e := range entries {
		if start != nil && e.EntryDate.Before(*start) {
			s.OpeningBalance += e.Kind.Delta() * e.Quantity
			continue
		}
		if end != nil && e.EntryDate.After(*end) {
			continue
		}
		switch e.Kind {
		case entity.KindPurchase:
			s.Purchases += e.Quantity
		case entity.KindTransferIn:
			s.TransferIn += e.Quantity
		case entity.KindTransferOut:
			s.TransferOut += e.Quantity
		case entity.KindAssignment:
			s.Assigned += e.Quantity
		case entity.KindExpenditure:
			s.Expended += e.Quantity
		}
	}
	s.NetMovement = s.Purchases + s.TransferIn - s.TransferOut
	s.ClosingBalance = s.OpeningBalance + s.NetMovement - s.Expended
	return s
}

// OnHand is the net physical quantity implied by the entries
// (purchases and transfers in minus transfers out and expenditures).
// Assignments do not move stock and contribute nothing.
func OnHand(entries []*entity.LedgerEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Kind.Delta() * e.Quantity
	}
	return total
}

// AssignedTotal is the quantity currently allocated to personnel.
func AssignedTotal(entries []*entity.LedgerEntry) int64 {
	var total int64
	for _, e := range entries {
		if e.Kind == entity.KindAssignment {
			total += e.Quantity
		}
	}
	return total
}
