package dberrors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

// SQLSTATE codes that mean the server cannot take the query right now
const (
	classConnectionException = "08"
	codeAdminShutdown        = "57P01"
	codeCannotConnectNow     = "57P03"
	codeTooManyConnections   = "53300"
)

// IsUnavailable reports whether err means PostgreSQL could not be reached
// or refused to serve the query, as opposed to rejecting the query itself.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, classConnectionException) ||
			pgErr.Code == codeAdminShutdown ||
			pgErr.Code == codeCannotConnectNow ||
			pgErr.Code == codeTooManyConnections
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// Wrap marks unavailability errors with apperrors.ErrDatabaseUnavailable.
// Other errors are returned unchanged.
func Wrap(err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("%w: %w", apperrors.ErrDatabaseUnavailable, err)
	}
	return err
}
