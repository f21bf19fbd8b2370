package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/wms-ledger/internal/domain"
)

// Códigos SQLSTATE que el ledger traduce a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeQueryCanceled        = "57014"
	codeInvalidText          = "22P02"
)

const itemQuantityCheck = "inventory_items_quantity_check"

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// translate envuelve el error del driver con la operación y, si corresponde, con el error de dominio
// equivalente para que los handlers puedan usar errors.Is.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	code, constraint := pgCode(err)
	var sentinel error
	switch code {
	case codeUniqueViolation:
		sentinel = domain.ErrDuplicate
	case codeForeignKeyViolation, codeDeadlockDetected, codeSerializationFailure:
		sentinel = domain.ErrConflict
	case codeCheckViolation:
		if constraint == itemQuantityCheck {
			sentinel = domain.ErrInsufficientStock
		} else {
			sentinel = domain.ErrInvalidInput
		}
	case codeInvalidText:
		sentinel = domain.ErrInvalidInput
	case codeLockNotAvailable, codeQueryCanceled:
		sentinel = domain.ErrLockTimeout
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			sentinel = domain.ErrLockTimeout
		}
	}
	if sentinel != nil {
		return fmt.Errorf("%s: %w: %w", op, sentinel, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
