package inventory

import "github.com/jhoicas/wms-ledger/internal/domain/entity"

// BinKey identifica un saldo reconstruido (producto, bin).
type BinKey struct {
	ProductID int64
	BinID     int64
}

// Replay reconstruye los saldos por (producto, bin) aplicando el log de movimientos en orden.
func Replay(movements []*entity.InventoryMovement) map[BinKey]int64 {
	balances := make(map[BinKey]int64)
	for _, m := range movements {
		if m.From != nil {
			balances[BinKey{ProductID: m.ProductID, BinID: m.From.BinID}] -= m.Quantity
		}
		if m.To != nil {
			balances[BinKey{ProductID: m.ProductID, BinID: m.To.BinID}] += m.Quantity
		}
	}
	return balances
}

// NetByProduct total por producto según el log (entradas − salidas; los traslados netean cero).
func NetByProduct(movements []*entity.InventoryMovement) map[int64]int64 {
	totals := make(map[int64]int64)
	for key, qty := range Replay(movements) {
		totals[key.ProductID] += qty
	}
	return totals
}
