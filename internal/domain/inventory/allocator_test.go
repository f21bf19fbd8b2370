package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/inventory"
)

func item(id, binID, qty int64) *entity.InventoryItem {
	return &entity.InventoryItem{ID: id, ProductID: 7, WarehouseID: 1, BinID: binID, Quantity: qty}
}

// Escenario base: bin A=5, bin B=3, pedido de 6 → [(A,5),(B,1)].
func TestAllocate_MayorBinPrimero(t *testing.T) {
	a := item(1, 10, 5)
	b := item(2, 20, 3)

	deductions, remaining := inventory.Allocate([]*entity.InventoryItem{b, a}, 6)

	require.Len(t, deductions, 2)
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, int64(10), deductions[0].Item.BinID)
	assert.Equal(t, int64(5), deductions[0].Quantity)
	assert.Equal(t, int64(20), deductions[1].Item.BinID)
	assert.Equal(t, int64(1), deductions[1].Quantity)

	// Allocate no modifica las filas.
	assert.Equal(t, int64(5), a.Quantity)
	assert.Equal(t, int64(3), b.Quantity)
}

func TestAllocate_DesempatePorBin(t *testing.T) {
	rows := []*entity.InventoryItem{item(1, 30, 4), item(2, 10, 4), item(3, 20, 4)}

	deductions, remaining := inventory.Allocate(rows, 6)

	require.Len(t, deductions, 2)
	assert.Zero(t, remaining)
	assert.Equal(t, int64(10), deductions[0].Item.BinID)
	assert.Equal(t, int64(20), deductions[1].Item.BinID)
	assert.Equal(t, int64(2), deductions[1].Quantity)
}

func TestAllocate_OmiteFilasEnCeroYReportaFaltante(t *testing.T) {
	rows := []*entity.InventoryItem{item(1, 10, 0), item(2, 20, 2)}

	deductions, remaining := inventory.Allocate(rows, 5)

	require.Len(t, deductions, 1)
	assert.Equal(t, int64(20), deductions[0].Item.BinID)
	assert.Equal(t, int64(3), remaining)
}

func TestAllocate_Determinista(t *testing.T) {
	build := func() []*entity.InventoryItem {
		return []*entity.InventoryItem{item(3, 30, 2), item(1, 10, 7), item(2, 20, 7), item(4, 40, 1)}
	}
	first, _ := inventory.Allocate(build(), 15)
	for i := 0; i < 20; i++ {
		again, _ := inventory.Allocate(build(), 15)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Item.BinID, again[j].Item.BinID)
			assert.Equal(t, first[j].Quantity, again[j].Quantity)
		}
	}
}

func TestNormalizeLines_FusionaYOrdena(t *testing.T) {
	lines, err := inventory.NormalizeLines([]entity.OrderLine{
		{ProductID: 9, Quantity: 1},
		{ProductID: 3, Quantity: 2},
		{ProductID: 9, Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, []entity.OrderLine{
		{ProductID: 3, Quantity: 2},
		{ProductID: 9, Quantity: 5},
	}, lines)
}

func TestNormalizeLines_Invalidas(t *testing.T) {
	cases := map[string][]entity.OrderLine{
		"vacía":             nil,
		"cantidad cero":     {{ProductID: 1, Quantity: 0}},
		"cantidad negativa": {{ProductID: 1, Quantity: -3}},
		"producto inválido": {{ProductID: 0, Quantity: 1}},
		"suma desborda":     {{ProductID: 7, Quantity: math.MaxInt64}, {ProductID: 7, Quantity: 2}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := inventory.NormalizeLines(lines)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestShortages_ReportaTodos(t *testing.T) {
	lines := []entity.OrderLine{{ProductID: 1, Quantity: 8}, {ProductID: 2, Quantity: 1}, {ProductID: 3, Quantity: 4}}
	got := inventory.Shortages(lines, map[int64]int64{1: 7, 2: 1})
	assert.Equal(t, []entity.Shortage{
		{ProductID: 1, Requested: 8, Available: 7},
		{ProductID: 3, Requested: 4, Available: 0},
	}, got)
}

func TestReplay_ConservaTotales(t *testing.T) {
	a := &entity.Location{WarehouseID: 1, BinID: 10}
	c := &entity.Location{WarehouseID: 2, BinID: 30}
	movements := []*entity.InventoryMovement{
		{ProductID: 7, To: a, Quantity: 5},
		{ProductID: 7, From: a, To: c, Quantity: 5},
		{ProductID: 7, From: c, Quantity: 2},
		{ProductID: 8, To: c, Quantity: 1},
	}

	balances := inventory.Replay(movements)
	assert.Equal(t, int64(0), balances[inventory.BinKey{ProductID: 7, BinID: 10}])
	assert.Equal(t, int64(3), balances[inventory.BinKey{ProductID: 7, BinID: 30}])

	totals := inventory.NetByProduct(movements)
	assert.Equal(t, map[int64]int64{7: 3, 8: 1}, totals)
}
