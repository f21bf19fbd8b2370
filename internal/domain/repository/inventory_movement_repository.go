package repository

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos.
type MovementFilter struct {
	ProductID     *int64
	WarehouseID   *int64 // origen o destino
	TransactionID string
	Limit         int
	Offset        int
}

// InventoryMovementRepository puerto del log de movimientos. Solo inserta y consulta:
// no existe actualización ni borrado.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
	// NetByProduct reconstruye el total de un producto desde el log: Σ entradas a bins − Σ salidas de bins.
	NetByProduct(ctx context.Context, productID int64) (int64, error)
}
