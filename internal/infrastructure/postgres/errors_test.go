package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-ledger/internal/domain"
)

func TestTranslate_CodigosPostgres(t *testing.T) {
	cases := []struct {
		code       string
		constraint string
		want       error
	}{
		{codeUniqueViolation, "warehouses_name_key", domain.ErrDuplicate},
		{codeForeignKeyViolation, "inventory_items_bin_fkey", domain.ErrConflict},
		{codeCheckViolation, itemQuantityCheck, domain.ErrInsufficientStock},
		{codeCheckViolation, "storage_rules_temp_range", domain.ErrInvalidInput},
		{codeLockNotAvailable, "", domain.ErrLockTimeout},
		{codeDeadlockDetected, "", domain.ErrConflict},
		{codeSerializationFailure, "", domain.ErrConflict},
		{codeInvalidText, "", domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tc.code, ConstraintName: tc.constraint}
			err := translate("op", fmt.Errorf("driver: %w", pgErr))
			assert.ErrorIs(t, err, tc.want)
			var got *pgconn.PgError
			assert.True(t, errors.As(err, &got))
		})
	}
}

func TestTranslate_DeadlineYNil(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.ErrorIs(t, translate("op", context.DeadlineExceeded), domain.ErrLockTimeout)

	plain := errors.New("otro")
	err := translate("op", plain)
	assert.ErrorIs(t, err, plain)
	assert.False(t, domain.IsNotFound(err))
}

func TestSchema_Embebido(t *testing.T) {
	s := Schema()
	for _, table := range []string{"warehouses", "storage_rules", "bin_locations", "inventory_items", "inventory_movements"} {
		assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, s, itemQuantityCheck)
}
