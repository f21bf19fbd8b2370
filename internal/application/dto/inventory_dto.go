package dto

import "time"

// AddStockRequest body para POST /api/inventory/add.
type AddStockRequest struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
	Quantity    int64 `json:"quantity"`
}

// MoveStockRequest body para POST /api/inventory/move.
type MoveStockRequest struct {
	ProductID       int64 `json:"product_id"`
	FromWarehouseID int64 `json:"from_warehouse_id"`
	FromBinID       int64 `json:"from_bin_id"`
	ToWarehouseID   int64 `json:"to_warehouse_id"`
	ToBinID         int64 `json:"to_bin_id"`
	Quantity        int64 `json:"quantity"`
}

// InventoryItemResponse fila del ledger.
type InventoryItemResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	WarehouseID int64     `json:"warehouse_id"`
	BinID       int64     `json:"bin_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocationDTO extremo (bodega, bin) de un movimiento.
type LocationDTO struct {
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
}

// MovementResponse registro del log de movimientos.
type MovementResponse struct {
	ID            int64        `json:"id"`
	TransactionID string       `json:"transaction_id"`
	Kind          string       `json:"kind"`
	ProductID     int64        `json:"product_id"`
	From          *LocationDTO `json:"from,omitempty"`
	To            *LocationDTO `json:"to,omitempty"`
	Quantity      int64        `json:"quantity"`
	Reference     *string      `json:"reference,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// AddStockResponse resultado de una entrada.
type AddStockResponse struct {
	Status   string                `json:"status"`
	Item     InventoryItemResponse `json:"item"`
	Movement MovementResponse      `json:"movement"`
}

// MoveStockResponse resultado de un traslado.
type MoveStockResponse struct {
	Status   string           `json:"status"`
	Movement MovementResponse `json:"movement"`
}

// ProductTotalResponse total de un producto.
type ProductTotalResponse struct {
	ProductID     int64 `json:"product_id"`
	TotalQuantity int64 `json:"total_quantity"`
}

// MovementListResponse página del historial.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReconcileResponse comparación ledger vs log.
type ReconcileResponse struct {
	ProductID     int64 `json:"product_id"`
	LedgerTotal   int64 `json:"ledger_total"`
	MovementTotal int64 `json:"movement_total"`
	Consistent    bool  `json:"consistent"`
}
