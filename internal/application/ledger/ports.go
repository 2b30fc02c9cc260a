package ledger

import (
	"context"

	"github.com/jcastell/milasset-api/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction, passing a ledger
// repository bound to that transaction. Used so the two legs of a transfer
// are appended atomically.
type TxRunner interface {
	Run(ctx context.Context, fn func(ledgerRepo repository.LedgerRepository) error) error
}
