package inventory

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

const (
	DefaultMovementLimit = 50
	MaxMovementLimit     = 500
)

// QueryUseCase consultas de solo lectura sobre el ledger y el log de movimientos.
type QueryUseCase struct {
	itemRepo     repository.InventoryItemRepository
	movementRepo repository.InventoryMovementRepository
	cache        TotalsCache
	group        singleflight.Group
	log          zerolog.Logger
}

// NewQueryUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewQueryUseCase(
	itemRepo repository.InventoryItemRepository,
	movementRepo repository.InventoryMovementRepository,
	cache TotalsCache,
	log zerolog.Logger,
) *QueryUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	return &QueryUseCase{itemRepo: itemRepo, movementRepo: movementRepo, cache: cache, log: log}
}

// ListItems filas del ledger ordenadas por product_id, bin_id.
func (uc *QueryUseCase) ListItems(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.List(ctx, filter)
}

// ProductTotal total de un producto en todas las bodegas (0 si no existe).
// Lee de la caché; los misses concurrentes del mismo producto se resuelven con una sola consulta.
func (uc *QueryUseCase) ProductTotal(ctx context.Context, productID int64) (*entity.ProductTotal, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	total, found, err := uc.cache.GetProductTotal(ctx, productID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("product_id", productID).Msg("leer caché de totales")
	}
	if err == nil && found {
		return &entity.ProductTotal{ProductID: productID, TotalQuantity: total}, nil
	}

	// El cálculo no depende del ctx de quien lo inició: si ese pedido se cancela, los demás
	// que esperan el mismo producto siguen recibiendo el total.
	ch := uc.group.DoChan(strconv.FormatInt(productID, 10), func() (interface{}, error) {
		return uc.loadTotal(context.WithoutCancel(ctx), productID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return &entity.ProductTotal{ProductID: productID, TotalQuantity: r.Val.(int64)}, nil
	}
}

// loadTotal suma el ledger y lo guarda en la caché. Si el total cambió mientras se escribía
// (un commit invalidó antes del Set), se invalida de nuevo para no dejar un valor viejo.
func (uc *QueryUseCase) loadTotal(ctx context.Context, productID int64) (int64, error) {
	fresh, err := uc.sum(ctx, productID)
	if err != nil {
		return 0, err
	}
	if err := uc.cache.SetProductTotal(ctx, productID, fresh); err != nil {
		uc.log.Warn().Err(err).Int64("product_id", productID).Msg("escribir caché de totales")
		return fresh, nil
	}
	again, err := uc.sum(ctx, productID)
	if err != nil {
		return 0, err
	}
	if again != fresh {
		if err := uc.cache.Invalidate(ctx, productID); err != nil {
			uc.log.Warn().Err(err).Int64("product_id", productID).Msg("invalidar caché de totales")
		}
	}
	return again, nil
}

func (uc *QueryUseCase) sum(ctx context.Context, productID int64) (int64, error) {
	sums, err := uc.itemRepo.SumByProducts(ctx, []int64{productID})
	if err != nil {
		return 0, err
	}
	return sums[productID], nil
}

// AllTotals totales de todos los productos con filas en el ledger, en orden de product_id.
func (uc *QueryUseCase) AllTotals(ctx context.Context) ([]entity.ProductTotal, error) {
	return uc.itemRepo.Totals(ctx)
}

// ListMovements historial, más reciente primero. Limit 0 usa el valor por defecto; se acota a MaxMovementLimit.
func (uc *QueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultMovementLimit
	}
	if filter.Limit > MaxMovementLimit {
		filter.Limit = MaxMovementLimit
	}
	return uc.movementRepo.List(ctx, filter)
}

// Reconcile compara el total actual del producto con el neto reconstruido desde el log.
func (uc *QueryUseCase) Reconcile(ctx context.Context, productID int64) (*entity.Reconciliation, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sums, err := uc.itemRepo.SumByProducts(ctx, []int64{productID})
	if err != nil {
		return nil, err
	}
	net, err := uc.movementRepo.NetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	r := &entity.Reconciliation{
		ProductID:     productID,
		LedgerTotal:   sums[productID],
		MovementTotal: net,
	}
	r.Consistent = r.LedgerTotal == r.MovementTotal
	if !r.Consistent {
		uc.log.Error().
			Int64("product_id", productID).
			Int64("ledger_total", r.LedgerTotal).
			Int64("movement_total", r.MovementTotal).
			Msg("ledger y log de movimientos no coinciden")
	}
	return r, nil
}
