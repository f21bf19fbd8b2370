package inventory

import (
	"math"
	"sort"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// Deduction cantidad a descontar de una fila ya bloqueada.
type Deduction struct {
	Item     *entity.InventoryItem
	Quantity int64
}

// NormalizeLines valida las líneas, fusiona las repetidas por producto y las devuelve en orden
// ascendente de product_id. Ese orden es el orden global de bloqueo entre commits concurrentes.
// Una suma de líneas repetidas que desborda int64 es entrada inválida.
func NormalizeLines(lines []entity.OrderLine) ([]entity.OrderLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	merged := make(map[int64]int64, len(lines))
	for _, l := range lines {
		if l.ProductID <= 0 || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if merged[l.ProductID] > math.MaxInt64-l.Quantity {
			return nil, domain.ErrInvalidInput
		}
		merged[l.ProductID] += l.Quantity
	}
	out := make([]entity.OrderLine, 0, len(merged))
	for id, qty := range merged {
		out = append(out, entity.OrderLine{ProductID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// SortForAllocation ordena las filas bloqueadas para el recorrido: mayor cantidad primero,
// desempate por bin_id ascendente. Dos ejecuciones sobre el mismo estado reparten igual.
func SortForAllocation(items []*entity.InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].BinID < items[j].BinID
	})
}

// Allocate recorre las filas en orden de asignación y descuenta min(cantidad, restante) hasta
// cubrir needed. No modifica las filas; devuelve los descuentos no nulos y lo que faltó cubrir.
func Allocate(items []*entity.InventoryItem, needed int64) ([]Deduction, int64) {
	ordered := make([]*entity.InventoryItem, len(items))
	copy(ordered, items)
	SortForAllocation(ordered)

	remaining := needed
	var out []Deduction
	for _, it := range ordered {
		if remaining <= 0 {
			break
		}
		take := min(it.Quantity, remaining)
		if take <= 0 {
			continue
		}
		out = append(out, Deduction{Item: it, Quantity: take})
		remaining -= take
	}
	return out, remaining
}

// Shortages compara lo solicitado con lo disponible; las líneas deben venir normalizadas.
func Shortages(lines []entity.OrderLine, available map[int64]int64) []entity.Shortage {
	var out []entity.Shortage
	for _, l := range lines {
		if avail := available[l.ProductID]; avail < l.Quantity {
			out = append(out, entity.Shortage{ProductID: l.ProductID, Requested: l.Quantity, Available: avail})
		}
	}
	return out
}
