package entity

import "time"

// Warehouse representa una bodega física. Su nombre es único y, una vez referenciada por bins,
// no se modifica.
type Warehouse struct {
	ID           int64
	Name         string
	Address      string
	WorkingHours *string
	CreatedAt    time.Time
}
