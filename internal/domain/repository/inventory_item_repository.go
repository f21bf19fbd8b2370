package repository

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// ItemFilter filtros opcionales para listar filas del ledger.
type ItemFilter struct {
	ProductID   *int64
	WarehouseID *int64
	BinID       *int64
}

// InventoryItemRepository puerto del ledger (product × bin × quantity).
// Los métodos ...ForUpdate solo tienen sentido dentro de una transacción: bloquean las filas
// devueltas hasta el Commit/Rollback y esperan si otra transacción las tiene.
type InventoryItemRepository interface {
	// SumByProducts suma la cantidad por producto sin bloquear. Productos sin filas devuelven 0.
	SumByProducts(ctx context.Context, productIDs []int64) (map[int64]int64, error)

	// ListForUpdate bloquea todas las filas del producto, en orden ascendente de id.
	ListForUpdate(ctx context.Context, productID int64) ([]*entity.InventoryItem, error)

	// LockBins bloquea las filas del producto en los bins indicados, en orden ascendente de id.
	LockBins(ctx context.Context, productID int64, binIDs []int64) ([]*entity.InventoryItem, error)

	// Ensure crea la fila en cero si no existe (no la bloquea si ya existía).
	Ensure(ctx context.Context, productID, warehouseID, binID int64) error

	// AddQuantity suma delta (>0) a la fila, creándola si no existe; devuelve la fila resultante.
	AddQuantity(ctx context.Context, productID, warehouseID, binID, delta int64) (*entity.InventoryItem, error)

	// SetQuantity fija la cantidad de una fila ya bloqueada.
	SetQuantity(ctx context.Context, id, quantity int64) error

	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, error)
	Totals(ctx context.Context) ([]entity.ProductTotal, error)
}
