package entity

import "time"

// Tipos de evento publicados después de cada mutación confirmada.
const (
	EventStockAdded       = "stock.added"
	EventStockTransferred = "stock.transferred"
	EventOrderCommitted   = "order.committed"
)

// LedgerEvent notificación de una operación ya confirmada en el ledger.
type LedgerEvent struct {
	Type          string
	TransactionID string
	OrderID       *string
	Movements     []InventoryMovement
	OccurredAt    time.Time
}

// ProductIDs productos distintos tocados por el evento, en orden de aparición.
func (e *LedgerEvent) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(e.Movements))
	ids := make([]int64, 0, len(e.Movements))
	for _, m := range e.Movements {
		if _, ok := seen[m.ProductID]; ok {
			continue
		}
		seen[m.ProductID] = struct{}{}
		ids = append(ids, m.ProductID)
	}
	return ids
}
