package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega y completa ID y CreatedAt.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (name, address, working_hours)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, w.Name, w.Address, w.WorkingHours).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return translate("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID. (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, address, working_hours, created_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Address, &w.WorkingHours, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("get warehouse", err)
	}
	return &w, nil
}

// List lista bodegas por id con paginación.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, address, working_hours, created_at
		FROM warehouses ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translate("list warehouses", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.WorkingHours, &w.CreatedAt); err != nil {
			return nil, translate("scan warehouse", err)
		}
		list = append(list, &w)
	}
	return list, translate("list warehouses", rows.Err())
}

// Delete elimina la bodega. Si tiene bins o movimientos, la FK lo impide (ErrConflict).
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return translate("delete warehouse", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrWarehouseNotFound
	}
	return nil
}
