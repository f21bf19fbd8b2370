package http

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-ledger/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, 400, "INVALID_INPUT"},
		{domain.ErrBinNotFound, 404, "NOT_FOUND"},
		{domain.ErrStorageRuleNotFound, 404, "NOT_FOUND"},
		{fmt.Errorf("insert warehouse: %w", domain.ErrDuplicate), 409, "DUPLICATE"},
		{domain.ErrConflict, 409, "CONFLICT"},
		{domain.ErrInsufficientStock, 409, "INSUFFICIENT_STOCK"},
		{&domain.AllocationRaceError{ProductID: 1, Requested: 5, Allocated: 3}, 500, "ALLOCATION_RACE"},
		{fmt.Errorf("lock items: %w", domain.ErrLockTimeout), 503, "LOCK_TIMEOUT"},
		{domain.ErrForbidden, 403, "FORBIDDEN"},
		{context.Canceled, 500, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
