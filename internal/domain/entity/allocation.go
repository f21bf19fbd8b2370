package entity

// OrderLine línea solicitada (producto externo, cantidad).
type OrderLine struct {
	ProductID int64
	Quantity  int64
}

// Shortage producto cuya cantidad solicitada supera la disponible.
type Shortage struct {
	ProductID int64
	Requested int64
	Available int64
}

// Allocation parte de una línea cubierta desde un bin.
type Allocation struct {
	WarehouseID int64
	BinID       int64
	Deducted    int64
}

// ProductAllocation resultado por producto de un commit.
type ProductAllocation struct {
	ProductID   int64
	Deducted    int64
	Allocations []Allocation
}

// AvailabilityResult resultado de la verificación de disponibilidad.
type AvailabilityResult struct {
	OK        bool
	Shortages []Shortage
}

// CommitResult resultado de un commit. Si OK es falso, Items está vacío y no hubo mutación.
type CommitResult struct {
	OK            bool
	TransactionID string
	Shortages     []Shortage
	Items         []ProductAllocation
}
