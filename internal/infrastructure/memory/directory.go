package memory

import (
	"context"
	"time"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository   = (*WarehouseRepo)(nil)
	_ repository.StorageRuleRepository = (*StorageRuleRepo)(nil)
	_ repository.BinLocationRepository = (*BinRepo)(nil)
)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ acc access }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return r.acc.write(ctx, func(st *state) error {
		for _, cur := range st.warehouses {
			if cur.Name == w.Name {
				return domain.ErrDuplicate
			}
		}
		st.seq.warehouse++
		w.ID = st.seq.warehouse
		if w.CreatedAt.IsZero() {
			w.CreatedAt = time.Now().UTC()
		}
		cp := *w
		st.warehouses[w.ID] = &cp
		return nil
	})
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.acc.read(ctx, func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			cp := *w
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range page(sortedKeys(st.warehouses), limit, offset) {
			cp := *st.warehouses[id]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	return r.acc.write(ctx, func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return domain.ErrWarehouseNotFound
		}
		for _, b := range st.bins {
			if b.WarehouseID == id {
				return domain.ErrConflict
			}
		}
		delete(st.warehouses, id)
		return nil
	})
}

// StorageRuleRepo reglas de almacenamiento en memoria.
type StorageRuleRepo struct{ acc access }

func (r *StorageRuleRepo) Create(ctx context.Context, rule *entity.StorageRule) error {
	return r.acc.write(ctx, func(st *state) error {
		for _, cur := range st.rules {
			if cur.Name == rule.Name {
				return domain.ErrDuplicate
			}
		}
		st.seq.rule++
		rule.ID = st.seq.rule
		if rule.CreatedAt.IsZero() {
			rule.CreatedAt = time.Now().UTC()
		}
		cp := *rule
		st.rules[rule.ID] = &cp
		return nil
	})
}

func (r *StorageRuleRepo) GetByID(ctx context.Context, id int64) (*entity.StorageRule, error) {
	var out *entity.StorageRule
	err := r.acc.read(ctx, func(st *state) error {
		if rule, ok := st.rules[id]; ok {
			cp := *rule
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *StorageRuleRepo) List(ctx context.Context) ([]*entity.StorageRule, error) {
	var out []*entity.StorageRule
	err := r.acc.read(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.rules) {
			cp := *st.rules[id]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *StorageRuleRepo) Delete(ctx context.Context, id int64) error {
	return r.acc.write(ctx, func(st *state) error {
		if _, ok := st.rules[id]; !ok {
			return domain.ErrStorageRuleNotFound
		}
		for _, b := range st.bins {
			if b.StorageRuleID != nil && *b.StorageRuleID == id {
				return domain.ErrConflict
			}
		}
		delete(st.rules, id)
		return nil
	})
}

// BinRepo bins en memoria. Aplica las mismas restricciones que el esquema SQL:
// ubicación única por bodega y referencias existentes.
type BinRepo struct{ acc access }

func (r *BinRepo) Create(ctx context.Context, bin *entity.BinLocation) error {
	return r.acc.write(ctx, func(st *state) error {
		if _, ok := st.warehouses[bin.WarehouseID]; !ok {
			return domain.ErrConflict
		}
		if bin.StorageRuleID != nil {
			if _, ok := st.rules[*bin.StorageRuleID]; !ok {
				return domain.ErrConflict
			}
		}
		for _, cur := range st.bins {
			if cur.WarehouseID == bin.WarehouseID && cur.Zone == bin.Zone && cur.Aisle == bin.Aisle &&
				cur.Rack == bin.Rack && cur.BinCode == bin.BinCode {
				return domain.ErrDuplicate
			}
		}
		st.seq.bin++
		bin.ID = st.seq.bin
		if bin.CreatedAt.IsZero() {
			bin.CreatedAt = time.Now().UTC()
		}
		cp := *bin
		st.bins[bin.ID] = &cp
		return nil
	})
}

func (r *BinRepo) GetByID(ctx context.Context, id int64) (*entity.BinLocation, error) {
	var out *entity.BinLocation
	err := r.acc.read(ctx, func(st *state) error {
		if b, ok := st.bins[id]; ok {
			cp := *b
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *BinRepo) ListWithStock(ctx context.Context, warehouseID *int64) ([]*entity.BinStock, error) {
	var out []*entity.BinStock
	err := r.acc.read(ctx, func(st *state) error {
		// Primer producto de cada bin: la fila del ledger con menor id.
		first := map[int64]*entity.InventoryItem{}
		for _, id := range sortedKeys(st.items) {
			it := st.items[id]
			if _, ok := first[it.BinID]; !ok {
				first[it.BinID] = it
			}
		}
		for _, id := range sortedKeys(st.bins) {
			b := st.bins[id]
			if warehouseID != nil && b.WarehouseID != *warehouseID {
				continue
			}
			bs := &entity.BinStock{Bin: *b}
			if it, ok := first[b.ID]; ok {
				pid, qty := it.ProductID, it.Quantity
				bs.ProductID, bs.Quantity = &pid, &qty
			}
			out = append(out, bs)
		}
		return nil
	})
	return out, err
}

func (r *BinRepo) Delete(ctx context.Context, id int64) error {
	return r.acc.write(ctx, func(st *state) error {
		if _, ok := st.bins[id]; !ok {
			return domain.ErrBinNotFound
		}
		for _, it := range st.items {
			if it.BinID == id {
				return domain.ErrConflict
			}
		}
		for _, m := range st.movements {
			if (m.From != nil && m.From.BinID == id) || (m.To != nil && m.To.BinID == id) {
				return domain.ErrConflict
			}
		}
		delete(st.bins, id)
		return nil
	})
}

func page(ids []int64, limit, offset int) []int64 {
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}
