package entity

import "time"

// Tipos de movimiento, derivados de qué extremo es nulo.
const (
	MovementKindIN       = "IN"       // entrada: sin origen
	MovementKindOUT      = "OUT"      // salida por pedido: sin destino
	MovementKindTRANSFER = "TRANSFER" // traslado entre bins
)

// Location par (bodega, bin) de un extremo del movimiento.
type Location struct {
	WarehouseID int64
	BinID       int64
}

// InventoryMovement registro inmutable de un cambio de cantidad. Quantity siempre es positiva;
// la dirección la dan From/To. Se escribe en la misma transacción que el cambio del ledger.
type InventoryMovement struct {
	ID            int64
	TransactionID string
	ProductID     int64
	From          *Location
	To            *Location
	Quantity      int64
	Reference     *string // order_id del pedido que originó la salida
	CreatedAt     time.Time
}

// Kind devuelve IN, OUT o TRANSFER.
func (m *InventoryMovement) Kind() string {
	switch {
	case m.From == nil:
		return MovementKindIN
	case m.To == nil:
		return MovementKindOUT
	default:
		return MovementKindTRANSFER
	}
}
