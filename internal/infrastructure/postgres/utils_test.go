package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
)

func TestMapError_CodigosPostgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"lock_timeout", &pgconn.PgError{Code: codeLockNotAvailable}, domain.ErrConcurrentModification},
		{"serialización", &pgconn.PgError{Code: codeSerializationFailure}, domain.ErrConcurrentModification},
		{"deadlock", &pgconn.PgError{Code: codeDeadlockDetected}, domain.ErrConcurrentModification},
		{"statement_timeout", &pgconn.PgError{Code: codeQueryCanceled}, domain.ErrStorageUnavailable},
		{"conexión", &pgconn.PgError{Code: "08006"}, domain.ErrStorageUnavailable},
		{"fk producto", &pgconn.PgError{Code: codeForeignKeyViolation}, domain.ErrUnknownProduct},
		{"check signo", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "stock_movements_sign_check"}, domain.ErrSignMismatch},
		{"check cantidad", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "stock_movements_quantity_check"}, domain.ErrInvalidInput},
		{"único", &pgconn.PgError{Code: codeUniqueViolation}, domain.ErrConflict},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), domain.ErrStorageUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("op", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_Otros(t *testing.T) {
	assert.Nil(t, mapError("op", nil))

	boom := errors.New("boom")
	got := mapError("op", boom)
	assert.ErrorIs(t, got, boom)
	assert.False(t, domain.IsRetryable(got))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
