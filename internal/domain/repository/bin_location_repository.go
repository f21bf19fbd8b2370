package repository

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// BinLocationRepository puerto de persistencia para bins.
type BinLocationRepository interface {
	Create(ctx context.Context, bin *entity.BinLocation) error
	GetByID(ctx context.Context, id int64) (*entity.BinLocation, error)
	// ListWithStock lista bins (opcionalmente de una bodega) con el primer producto almacenado.
	ListWithStock(ctx context.Context, warehouseID *int64) ([]*entity.BinStock, error)
	Delete(ctx context.Context, id int64) error
}
