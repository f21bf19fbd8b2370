package entity

import "time"

// InventoryItem cantidad actual de un producto en un bin. Existe a lo sumo una fila por
// (product_id, bin_id) y la cantidad nunca es negativa; puede quedar en cero y reutilizarse.
type InventoryItem struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	BinID       int64
	Quantity    int64
	UpdatedAt   time.Time
}

// ProductTotal cantidad agregada de un producto en todas las bodegas.
type ProductTotal struct {
	ProductID     int64
	TotalQuantity int64
}

// Reconciliation compara el total del ledger con el total reconstruido desde el log de movimientos.
type Reconciliation struct {
	ProductID     int64
	LedgerTotal   int64
	MovementTotal int64
	Consistent    bool
}
