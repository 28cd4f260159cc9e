package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
)

// Códigos SQLSTATE usados por el kardex.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeQueryCanceled        = "57014" // statement_timeout
	codeAdminShutdown        = "57P01"
	codeTooManyConnections   = "53300"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// mapError traduce errores de PostgreSQL y de red a los errores de dominio del kardex.
// op describe la operación para el mensaje.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeCheckViolation:
			if pgErr.ConstraintName == "stock_movements_sign_check" {
				return fmt.Errorf("%s: %w", op, domain.ErrSignMismatch)
			}
			return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrUnknownProduct)
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConcurrentModification, pgErr.Code)
		case codeQueryCanceled, codeAdminShutdown, codeTooManyConnections:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrStorageUnavailable, pgErr.Code)
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" { // connection_exception
			return fmt.Errorf("%s: %w: %s", op, domain.ErrStorageUnavailable, pgErr.Code)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
