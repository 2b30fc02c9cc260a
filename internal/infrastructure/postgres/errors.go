package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jcastell/milasset-api/internal/domain"
)

// pg error codes of interest.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// mapStorageErr classifies driver failures. Connectivity problems become
// ErrStorageUnavailable so the transport layer can answer 503 and the caller
// knows the whole operation is safe to retry.
func mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStorageUnavailable
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return domain.ErrStorageUnavailable
	}
	return err
}
