package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
	"github.com/jhoicas/wms-ledger/internal/infrastructure/memory"
)

// recordingPublisher guarda los eventos publicados.
type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.LedgerEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e entity.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) all() []entity.LedgerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.LedgerEvent(nil), p.events...)
}

// mapCache caché de totales en memoria que cuenta invalidaciones.
type mapCache struct {
	mu          sync.Mutex
	totals      map[int64]int64
	invalidated []int64
}

func newMapCache() *mapCache { return &mapCache{totals: map[int64]int64{}} }

func (c *mapCache) GetProductTotal(_ context.Context, id int64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.totals[id]
	return v, ok, nil
}

func (c *mapCache) SetProductTotal(_ context.Context, id, total int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[id] = total
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, ids ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.totals, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

// engine arma los casos de uso sobre un almacén en memoria.
type engine struct {
	store        *memory.Store
	availability *inventory.AvailabilityUseCase
	allocation   *inventory.AllocationUseCase
	stock        *inventory.StockUseCase
	query        *inventory.QueryUseCase
	publisher    *recordingPublisher
	cache        *mapCache
}

func newEngine() *engine {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	cache := newMapCache()
	log := zerolog.Nop()
	availability := inventory.NewAvailabilityUseCase(store.Items())
	return &engine{
		store:        store,
		availability: availability,
		allocation:   inventory.NewAllocationUseCase(store, availability, pub, cache, log),
		stock:        inventory.NewStockUseCase(store, pub, cache, log),
		query:        inventory.NewQueryUseCase(store.Items(), store.Movements(), cache, log),
		publisher:    pub,
		cache:        cache,
	}
}

func (e *engine) warehouse(t *testing.T, name string) *entity.Warehouse {
	t.Helper()
	wh := &entity.Warehouse{Name: name, Address: "Calle " + name}
	require.NoError(t, e.store.Warehouses().Create(context.Background(), wh))
	return wh
}

func (e *engine) bin(t *testing.T, warehouseID int64, code string) *entity.BinLocation {
	t.Helper()
	b := &entity.BinLocation{WarehouseID: warehouseID, Zone: "Z", Aisle: "01", Rack: "R1", BinCode: code}
	require.NoError(t, e.store.Bins().Create(context.Background(), b))
	return b
}

func (e *engine) add(t *testing.T, productID int64, bin *entity.BinLocation, qty int64) {
	t.Helper()
	_, _, err := e.stock.AddStock(context.Background(), inventory.AddStockInput{
		ProductID: productID, WarehouseID: bin.WarehouseID, BinID: bin.ID, Quantity: qty,
	})
	require.NoError(t, err)
}

func (e *engine) qtyAt(t *testing.T, productID int64, bin *entity.BinLocation) int64 {
	t.Helper()
	items, err := e.store.Items().List(context.Background(), repository.ItemFilter{ProductID: &productID, BinID: &bin.ID})
	require.NoError(t, err)
	if len(items) == 0 {
		return 0
	}
	return items[0].Quantity
}

func (e *engine) total(t *testing.T, productID int64) int64 {
	t.Helper()
	sums, err := e.store.Items().SumByProducts(context.Background(), []int64{productID})
	require.NoError(t, err)
	return sums[productID]
}

func (e *engine) movementCount(t *testing.T) int {
	t.Helper()
	movs, err := e.store.Movements().List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return len(movs)
}
