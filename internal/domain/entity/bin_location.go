package entity

import (
	"fmt"
	"time"
)

// BinLocation una ubicación de almacenamiento dentro de una bodega.
// Se identifica por (warehouse_id, zone, aisle, rack, bin_code).
type BinLocation struct {
	ID            int64
	WarehouseID   int64
	Zone          string
	Aisle         string
	Rack          string
	BinCode       string
	StorageRuleID *int64
	CreatedAt     time.Time
}

// Label devuelve la dirección legible del bin, p. ej. "A-03-R2-B07".
func (b *BinLocation) Label() string {
	return fmt.Sprintf("%s-%s-%s-%s", b.Zone, b.Aisle, b.Rack, b.BinCode)
}

// BinStock resumen del bin para listados: primer producto almacenado (si existe).
type BinStock struct {
	Bin       BinLocation
	ProductID *int64
	Quantity  *int64
}
