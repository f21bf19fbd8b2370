package inventory

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

// AvailabilityUseCase verifica si hay stock suficiente sumando todas las filas de cada producto,
// sin importar bodega ni bin. No bloquea filas: el resultado es orientativo y el commit vuelve
// a verificar bajo bloqueo.
type AvailabilityUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(itemRepo repository.InventoryItemRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{itemRepo: itemRepo}
}

// Check devuelve todos los productos en faltante (no solo el primero), en orden de product_id.
func (uc *AvailabilityUseCase) Check(ctx context.Context, lines []entity.OrderLine) (*entity.AvailabilityResult, error) {
	normalized, err := inventory.NormalizeLines(lines)
	if err != nil {
		return nil, err
	}
	return uc.check(ctx, normalized)
}

// check asume líneas ya normalizadas.
func (uc *AvailabilityUseCase) check(ctx context.Context, lines []entity.OrderLine) (*entity.AvailabilityResult, error) {
	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	available, err := uc.itemRepo.SumByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	shortages := inventory.Shortages(lines, available)
	return &entity.AvailabilityResult{OK: len(shortages) == 0, Shortages: shortages}, nil
}
