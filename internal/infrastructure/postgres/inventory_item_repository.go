package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo ledger sobre PostgreSQL (usable con pool o tx).
// Los bloqueos de fila se piden siempre con ORDER BY id, así dos transacciones que
// compiten por las mismas filas las adquieren en el mismo orden.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, product_id, warehouse_id, bin_id, quantity, updated_at`

func scanItems(rows pgx.Rows, op string) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.WarehouseID, &it.BinID, &it.Quantity, &it.UpdatedAt); err != nil {
			return nil, translate(op, err)
		}
		list = append(list, &it)
	}
	return list, translate(op, rows.Err())
}

// SumByProducts suma sin bloquear; los productos sin filas quedan en 0.
func (r *InventoryItemRepo) SumByProducts(ctx context.Context, productIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(productIDs))
	for _, id := range productIDs {
		out[id] = 0
	}
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT product_id, SUM(quantity)::bigint
		FROM inventory_items WHERE product_id = ANY($1)
		GROUP BY product_id`, productIDs)
	if err != nil {
		return nil, translate("sum inventory", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, translate("scan inventory sum", err)
		}
		out[id] = total
	}
	return out, translate("sum inventory", rows.Err())
}

// ListForUpdate bloquea (SELECT FOR UPDATE) todas las filas del producto en orden de id.
func (r *InventoryItemRepo) ListForUpdate(ctx context.Context, productID int64) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items WHERE product_id = $1
		ORDER BY id
		FOR UPDATE`, productID)
	if err != nil {
		return nil, translate("lock inventory items", err)
	}
	return scanItems(rows, "lock inventory items")
}

// LockBins bloquea las filas del producto en los bins dados, en orden de id.
func (r *InventoryItemRepo) LockBins(ctx context.Context, productID int64, binIDs []int64) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items WHERE product_id = $1 AND bin_id = ANY($2)
		ORDER BY id
		FOR UPDATE`, productID, binIDs)
	if err != nil {
		return nil, translate("lock inventory bins", err)
	}
	return scanItems(rows, "lock inventory bins")
}

// Ensure crea la fila en cero si no existe.
func (r *InventoryItemRepo) Ensure(ctx context.Context, productID, warehouseID, binID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (product_id, warehouse_id, bin_id, quantity)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (product_id, bin_id) DO NOTHING`, productID, warehouseID, binID)
	return translate("ensure inventory item", err)
}

// AddQuantity upsert atómico: inserta la fila o suma delta a la existente.
func (r *InventoryItemRepo) AddQuantity(ctx context.Context, productID, warehouseID, binID, delta int64) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, `
		INSERT INTO inventory_items (product_id, warehouse_id, bin_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, bin_id)
		DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING `+itemColumns, productID, warehouseID, binID, delta,
	).Scan(&it.ID, &it.ProductID, &it.WarehouseID, &it.BinID, &it.Quantity, &it.UpdatedAt)
	if err != nil {
		return nil, translate("add inventory quantity", err)
	}
	return &it, nil
}

// SetQuantity fija la cantidad de una fila que el llamador ya bloqueó.
func (r *InventoryItemRepo) SetQuantity(ctx context.Context, id, quantity int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory_items SET quantity = $2, updated_at = now()
		WHERE id = $1`, id, quantity)
	if err != nil {
		return translate("set inventory quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items
		WHERE ($1::bigint IS NULL OR product_id = $1)
		  AND ($2::bigint IS NULL OR warehouse_id = $2)
		  AND ($3::bigint IS NULL OR bin_id = $3)
		ORDER BY product_id, bin_id`, f.ProductID, f.WarehouseID, f.BinID)
	if err != nil {
		return nil, translate("list inventory items", err)
	}
	return scanItems(rows, "list inventory items")
}

func (r *InventoryItemRepo) Totals(ctx context.Context) ([]entity.ProductTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, SUM(quantity)::bigint
		FROM inventory_items GROUP BY product_id ORDER BY product_id`)
	if err != nil {
		return nil, translate("inventory totals", err)
	}
	defer rows.Close()

	list := []entity.ProductTotal{}
	for rows.Next() {
		var t entity.ProductTotal
		if err := rows.Scan(&t.ProductID, &t.TotalQuantity); err != nil {
			return nil, translate("scan inventory total", err)
		}
		list = append(list, t)
	}
	return list, translate("inventory totals", rows.Err())
}
