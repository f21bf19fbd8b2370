package dto

import "time"

// CreateBinRequest entrada para crear un bin. Si trae product_id y quantity, el bin se crea
// con ese stock inicial (movimiento IN) en la misma transacción.
type CreateBinRequest struct {
	WarehouseID   int64  `json:"warehouse_id"`
	Zone          string `json:"zone"`
	Aisle         string `json:"aisle"`
	Rack          string `json:"rack"`
	BinCode       string `json:"bin_code"`
	StorageRuleID *int64 `json:"storage_rule_id,omitempty"`
	ProductID     *int64 `json:"product_id,omitempty"`
	Quantity      *int64 `json:"quantity,omitempty"`
}

// BinResponse salida de un bin. ProductID/Quantity: primer producto almacenado, si hay.
type BinResponse struct {
	ID            int64     `json:"id"`
	WarehouseID   int64     `json:"warehouse_id"`
	Zone          string    `json:"zone"`
	Aisle         string    `json:"aisle"`
	Rack          string    `json:"rack"`
	BinCode       string    `json:"bin_code"`
	Label         string    `json:"label"`
	StorageRuleID *int64    `json:"storage_rule_id,omitempty"`
	ProductID     *int64    `json:"product_id,omitempty"`
	Quantity      *int64    `json:"quantity,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
