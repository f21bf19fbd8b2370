package postgres

import (
	"context"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

func splitLocation(l *entity.Location) (warehouseID, binID *int64) {
	if l == nil {
		return nil, nil
	}
	w, b := l.WarehouseID, l.BinID
	return &w, &b
}

func joinLocation(warehouseID, binID *int64) *entity.Location {
	if warehouseID == nil || binID == nil {
		return nil
	}
	return &entity.Location{WarehouseID: *warehouseID, BinID: *binID}
}

// Create persiste un movimiento y completa ID y CreatedAt.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	fromWh, fromBin := splitLocation(m.From)
	toWh, toBin := splitLocation(m.To)
	query := `
		INSERT INTO inventory_movements
			(transaction_id, product_id, from_warehouse_id, from_bin_id, to_warehouse_id, to_bin_id, quantity, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.ProductID, fromWh, fromBin, toWh, toBin, m.Quantity, m.Reference,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return translate("create inventory movement", err)
	}
	return nil
}

// List historial filtrado, más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var txID *string
	if f.TransactionID != "" {
		txID = &f.TransactionID
	}
	query := `
		SELECT id, transaction_id::text, product_id, from_warehouse_id, from_bin_id,
		       to_warehouse_id, to_bin_id, quantity, reference, created_at
		FROM inventory_movements
		WHERE ($1::bigint IS NULL OR product_id = $1)
		  AND ($2::bigint IS NULL OR from_warehouse_id = $2 OR to_warehouse_id = $2)
		  AND ($3::uuid IS NULL OR transaction_id = $3)
		ORDER BY id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.ProductID, f.WarehouseID, txID, f.Limit, f.Offset)
	if err != nil {
		return nil, translate("list inventory movements", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		var (
			m               entity.InventoryMovement
			fromWh, fromBin *int64
			toWh, toBin     *int64
		)
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ProductID, &fromWh, &fromBin, &toWh, &toBin,
			&m.Quantity, &m.Reference, &m.CreatedAt,
		); err != nil {
			return nil, translate("scan inventory movement", err)
		}
		m.From = joinLocation(fromWh, fromBin)
		m.To = joinLocation(toWh, toBin)
		list = append(list, &m)
	}
	return list, translate("list inventory movements", rows.Err())
}

// NetByProduct Σ cantidades con destino − Σ cantidades con origen del producto.
func (r *InventoryMovementRepo) NetByProduct(ctx context.Context, productID int64) (int64, error) {
	var net int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN to_bin_id IS NOT NULL THEN quantity ELSE 0 END -
			CASE WHEN from_bin_id IS NOT NULL THEN quantity ELSE 0 END
		), 0)::bigint
		FROM inventory_movements WHERE product_id = $1`, productID).Scan(&net)
	if err != nil {
		return 0, translate("net inventory movements", err)
	}
	return net, nil
}
