package inventory

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

// TxRepositories repositorios atados a una misma transacción.
// Todo lo que se escribe a través de ellos se confirma o se revierte junto.
type TxRepositories struct {
	Items      repository.InventoryItemRepository
	Movements  repository.InventoryMovementRepository
	Warehouses repository.WarehouseRepository
	Bins       repository.BinLocationRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error (o entra en pánico) la transacción se revierte; si no, se confirma.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepositories) error) error
}

// EventPublisher publica eventos del ledger ya confirmados (p. ej. RabbitMQ).
type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

// TotalsCache caché de totales por producto para los endpoints de lectura.
type TotalsCache interface {
	GetProductTotal(ctx context.Context, productID int64) (total int64, found bool, err error)
	SetProductTotal(ctx context.Context, productID, total int64) error
	Invalidate(ctx context.Context, productIDs ...int64) error
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entity.LedgerEvent) error { return nil }

// NopCache caché deshabilitada: siempre miss.
type NopCache struct{}

func (NopCache) GetProductTotal(context.Context, int64) (int64, bool, error) { return 0, false, nil }
func (NopCache) SetProductTotal(context.Context, int64, int64) error         { return nil }
func (NopCache) Invalidate(context.Context, ...int64) error                  { return nil }
