package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var _ repository.BinLocationRepository = (*BinLocationRepo)(nil)

// BinLocationRepo bins sobre PostgreSQL (pool o tx).
type BinLocationRepo struct {
	q Querier
}

func NewBinLocationRepository(q Querier) *BinLocationRepo {
	return &BinLocationRepo{q: q}
}

func (r *BinLocationRepo) Create(ctx context.Context, b *entity.BinLocation) error {
	query := `
		INSERT INTO bin_locations (warehouse_id, zone, aisle, rack, bin_code, storage_rule_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, b.WarehouseID, b.Zone, b.Aisle, b.Rack, b.BinCode, b.StorageRuleID).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return translate("insert bin location", err)
	}
	return nil
}

func (r *BinLocationRepo) GetByID(ctx context.Context, id int64) (*entity.BinLocation, error) {
	query := `
		SELECT id, warehouse_id, zone, aisle, rack, bin_code, storage_rule_id, created_at
		FROM bin_locations WHERE id = $1`
	var b entity.BinLocation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.WarehouseID, &b.Zone, &b.Aisle, &b.Rack, &b.BinCode, &b.StorageRuleID, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("get bin location", err)
	}
	return &b, nil
}

// ListWithStock une cada bin con su primera fila del ledger (menor id), si existe.
func (r *BinLocationRepo) ListWithStock(ctx context.Context, warehouseID *int64) ([]*entity.BinStock, error) {
	query := `
		SELECT b.id, b.warehouse_id, b.zone, b.aisle, b.rack, b.bin_code, b.storage_rule_id, b.created_at,
		       i.product_id, i.quantity
		FROM bin_locations b
		LEFT JOIN LATERAL (
			SELECT product_id, quantity FROM inventory_items
			WHERE bin_id = b.id ORDER BY id LIMIT 1
		) i ON true
		WHERE ($1::bigint IS NULL OR b.warehouse_id = $1)
		ORDER BY b.id`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, translate("list bin locations", err)
	}
	defer rows.Close()

	var list []*entity.BinStock
	for rows.Next() {
		var s entity.BinStock
		b := &s.Bin
		if err := rows.Scan(
			&b.ID, &b.WarehouseID, &b.Zone, &b.Aisle, &b.Rack, &b.BinCode, &b.StorageRuleID, &b.CreatedAt,
			&s.ProductID, &s.Quantity,
		); err != nil {
			return nil, translate("scan bin location", err)
		}
		list = append(list, &s)
	}
	return list, translate("list bin locations", rows.Err())
}

func (r *BinLocationRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM bin_locations WHERE id = $1`, id)
	if err != nil {
		return translate("delete bin location", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBinNotFound
	}
	return nil
}
