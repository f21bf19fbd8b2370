package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout acota la espera por cada bloqueo de fila
// (SET LOCAL lock_timeout); 0 deja la espera limitada solo por el contexto.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido cubre errores, retornos anticipados y pánicos.
func (r *TxRunner) Run(ctx context.Context, fn func(tx inventory.TxRepositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if r.lockTimeout > 0 {
		ms := strconv.FormatInt(r.lockTimeout.Milliseconds(), 10) + "ms"
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", ms); err != nil {
			return translate("set lock_timeout", err)
		}
	}

	if err := fn(inventory.TxRepositories{
		Items:      NewInventoryItemRepository(tx),
		Movements:  NewInventoryMovementRepository(tx),
		Warehouses: NewWarehouseRepository(tx),
		Bins:       NewBinLocationRepository(tx),
	}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translate("commit transaction", err)
	}
	return nil
}

// String ayuda en los logs de arranque.
func (r *TxRunner) String() string {
	return fmt.Sprintf("postgres(lock_timeout=%s)", r.lockTimeout)
}
