package dto

// OrderItemRequest línea de pedido (producto externo, cantidad).
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// OrderRequest body de POST /api/wms/check y /api/wms/commit.
type OrderRequest struct {
	OrderID *string            `json:"order_id,omitempty"`
	Items   []OrderItemRequest `json:"items"`
}

// ShortageDTO producto en faltante.
type ShortageDTO struct {
	ProductID int64 `json:"product_id"`
	Requested int64 `json:"requested"`
	Available int64 `json:"available"`
}

// CheckResponse resultado de la verificación de disponibilidad.
type CheckResponse struct {
	OK        bool          `json:"ok"`
	Shortages []ShortageDTO `json:"shortages"`
}

// AllocationDTO parte de una línea cubierta desde un bin.
type AllocationDTO struct {
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
	Deducted    int64 `json:"deducted"`
}

// CommitItemDTO resultado por producto.
type CommitItemDTO struct {
	ProductID   int64           `json:"product_id"`
	Deducted    int64           `json:"deducted"`
	Allocations []AllocationDTO `json:"allocations"`
}

// CommitResponse resultado del commit. ok=false con faltantes no es un error HTTP.
type CommitResponse struct {
	OK            bool            `json:"ok"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Shortages     []ShortageDTO   `json:"shortages"`
	Items         []CommitItemDTO `json:"items"`
}
