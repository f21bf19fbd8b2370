package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository     = (*ItemRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
)

// ItemRepo ledger en memoria. Los bloqueos de fila no existen aparte: dentro de Run el semáforo
// ya excluye a cualquier otra transacción.
type ItemRepo struct{ acc access }

func (r *ItemRepo) SumByProducts(ctx context.Context, productIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(productIDs))
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range productIDs {
			out[id] = 0
		}
		for _, it := range st.items {
			if _, ok := out[it.ProductID]; ok {
				out[it.ProductID] += it.Quantity
			}
		}
		return nil
	})
	return out, err
}

func (r *ItemRepo) ListForUpdate(ctx context.Context, productID int64) ([]*entity.InventoryItem, error) {
	return r.collect(ctx, func(it *entity.InventoryItem) bool { return it.ProductID == productID })
}

func (r *ItemRepo) LockBins(ctx context.Context, productID int64, binIDs []int64) ([]*entity.InventoryItem, error) {
	want := make(map[int64]struct{}, len(binIDs))
	for _, b := range binIDs {
		want[b] = struct{}{}
	}
	return r.collect(ctx, func(it *entity.InventoryItem) bool {
		_, ok := want[it.BinID]
		return it.ProductID == productID && ok
	})
}

func (r *ItemRepo) Ensure(ctx context.Context, productID, warehouseID, binID int64) error {
	return r.acc.write(ctx, func(st *state) error {
		_, err := upsert(st, productID, warehouseID, binID, 0)
		return err
	})
}

func (r *ItemRepo) AddQuantity(ctx context.Context, productID, warehouseID, binID, delta int64) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.acc.write(ctx, func(st *state) error {
		it, err := upsert(st, productID, warehouseID, binID, delta)
		if err != nil {
			return err
		}
		cp := *it
		out = &cp
		return nil
	})
	return out, err
}

func (r *ItemRepo) SetQuantity(ctx context.Context, id, quantity int64) error {
	return r.acc.write(ctx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return domain.ErrInsufficientStock
		}
		it.Quantity = quantity
		it.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	out, err := r.collect(ctx, func(it *entity.InventoryItem) bool {
		return (f.ProductID == nil || it.ProductID == *f.ProductID) &&
			(f.WarehouseID == nil || it.WarehouseID == *f.WarehouseID) &&
			(f.BinID == nil || it.BinID == *f.BinID)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].BinID < out[j].BinID
	})
	return out, nil
}

func (r *ItemRepo) Totals(ctx context.Context) ([]entity.ProductTotal, error) {
	sums := map[int64]int64{}
	err := r.acc.read(ctx, func(st *state) error {
		for _, it := range st.items {
			sums[it.ProductID] += it.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.ProductTotal, 0, len(sums))
	for _, id := range sortedKeys(sums) {
		out = append(out, entity.ProductTotal{ProductID: id, TotalQuantity: sums[id]})
	}
	return out, nil
}

// collect devuelve copias de las filas que cumplen match, en orden ascendente de id.
func (r *ItemRepo) collect(ctx context.Context, match func(*entity.InventoryItem) bool) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.items) {
			if it := st.items[id]; match(it) {
				cp := *it
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

// upsert busca la fila (producto, bin) y le suma delta; si no existe la crea.
func upsert(st *state, productID, warehouseID, binID, delta int64) (*entity.InventoryItem, error) {
	bin, ok := st.bins[binID]
	if !ok || bin.WarehouseID != warehouseID {
		return nil, domain.ErrConflict
	}
	for _, it := range st.items {
		if it.ProductID == productID && it.BinID == binID {
			if it.Quantity+delta < 0 {
				return nil, domain.ErrInsufficientStock
			}
			if delta != 0 {
				it.Quantity += delta
				it.UpdatedAt = time.Now().UTC()
			}
			return it, nil
		}
	}
	if delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	st.seq.item++
	it := &entity.InventoryItem{
		ID:          st.seq.item,
		ProductID:   productID,
		WarehouseID: warehouseID,
		BinID:       binID,
		Quantity:    delta,
		UpdatedAt:   time.Now().UTC(),
	}
	st.items[it.ID] = it
	return it, nil
}

// MovementRepo log de movimientos en memoria (solo inserción).
type MovementRepo struct{ acc access }

func (r *MovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.Quantity <= 0 || (m.From == nil && m.To == nil) {
		return domain.ErrInvalidInput
	}
	return r.acc.write(ctx, func(st *state) error {
		st.seq.movement++
		m.ID = st.seq.movement
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.acc.read(ctx, func(st *state) error {
		skipped := 0
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if !matchMovement(m, f) {
				continue
			}
			if skipped < f.Offset {
				skipped++
				continue
			}
			if f.Limit > 0 && len(out) == f.Limit {
				break
			}
			cp := *m
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) NetByProduct(ctx context.Context, productID int64) (int64, error) {
	var net int64
	err := r.acc.read(ctx, func(st *state) error {
		net = inventory.NetByProduct(st.movements)[productID]
		return nil
	})
	return net, err
}

func matchMovement(m *entity.InventoryMovement, f repository.MovementFilter) bool {
	if f.ProductID != nil && m.ProductID != *f.ProductID {
		return false
	}
	if f.TransactionID != "" && m.TransactionID != f.TransactionID {
		return false
	}
	if f.WarehouseID != nil {
		from := m.From != nil && m.From.WarehouseID == *f.WarehouseID
		to := m.To != nil && m.To.WarehouseID == *f.WarehouseID
		if !from && !to {
			return false
		}
	}
	return true
}
