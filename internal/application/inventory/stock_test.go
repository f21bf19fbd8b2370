package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

func TestAddStock_CreaYAcumula(t *testing.T) {
	e := newEngine()
	wh := e.warehouse(t, "Central")
	a := e.bin(t, wh.ID, "A")
	ctx := context.Background()

	item, mov, err := e.stock.AddStock(ctx, inventory.AddStockInput{ProductID: 7, WarehouseID: wh.ID, BinID: a.ID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.Quantity)
	assert.Equal(t, entity.MovementKindIN, mov.Kind())
	assert.NotEmpty(t, mov.TransactionID)

	item2, _, err := e.stock.AddStock(ctx, inventory.AddStockInput{ProductID: 7, WarehouseID: wh.ID, BinID: a.ID, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, item.ID, item2.ID)
	assert.Equal(t, int64(10), item2.Quantity)

	events := e.publisher.all()
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventStockAdded, events[0].Type)
}

func TestAddStock_Validaciones(t *testing.T) {
	e := newEngine()
	central := e.warehouse(t, "Central")
	norte := e.warehouse(t, "Norte")
	a := e.bin(t, central.ID, "A")
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.AddStockInput
		err  error
	}{
		{"bodega inexistente", inventory.AddStockInput{ProductID: 1, WarehouseID: 99, BinID: a.ID, Quantity: 1}, domain.ErrWarehouseNotFound},
		{"bin inexistente", inventory.AddStockInput{ProductID: 1, WarehouseID: central.ID, BinID: 99, Quantity: 1}, domain.ErrBinNotFound},
		{"bin de otra bodega", inventory.AddStockInput{ProductID: 1, WarehouseID: norte.ID, BinID: a.ID, Quantity: 1}, domain.ErrBinNotFound},
		{"cantidad cero", inventory.AddStockInput{ProductID: 1, WarehouseID: central.ID, BinID: a.ID, Quantity: 0}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := e.stock.AddStock(ctx, tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.Zero(t, e.movementCount(t))
}

func TestTransfer_MueveYRegistraUnMovimiento(t *testing.T) {
	e := newEngine()
	central := e.warehouse(t, "Central")
	norte := e.warehouse(t, "Norte")
	a := e.bin(t, central.ID, "A")
	c := e.bin(t, norte.ID, "C")
	e.add(t, 7, a, 5)
	ctx := context.Background()

	mov, err := e.stock.Transfer(ctx, inventory.TransferInput{
		ProductID: 7, FromWarehouseID: central.ID, FromBinID: a.ID,
		ToWarehouseID: norte.ID, ToBinID: c.ID, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindTRANSFER, mov.Kind())
	assert.Equal(t, int64(0), e.qtyAt(t, 7, a))
	assert.Equal(t, int64(5), e.qtyAt(t, 7, c))
	assert.Equal(t, int64(5), e.total(t, 7))
	assert.Equal(t, 2, e.movementCount(t))

	// Escenario: después del traslado, el pedido sale completo del bin C.
	res, err := e.allocation.Commit(ctx, inventory.CommitInput{Lines: []entity.OrderLine{{ProductID: 7, Quantity: 5}}})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, []entity.Allocation{{WarehouseID: norte.ID, BinID: c.ID, Deducted: 5}}, res.Items[0].Allocations)
}

func TestTransfer_StockInsuficienteNoMuta(t *testing.T) {
	e := newEngine()
	wh := e.warehouse(t, "Central")
	a := e.bin(t, wh.ID, "A")
	b := e.bin(t, wh.ID, "B")
	e.add(t, 7, a, 2)

	_, err := e.stock.Transfer(context.Background(), inventory.TransferInput{
		ProductID: 7, FromWarehouseID: wh.ID, FromBinID: a.ID, ToWarehouseID: wh.ID, ToBinID: b.ID, Quantity: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), e.qtyAt(t, 7, a))
	assert.Equal(t, 1, e.movementCount(t))

	// La fila de destino creada dentro de la transacción también se revirtió.
	items, err := e.query.ListItems(context.Background(), itemFilter(7))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTransfer_MismoBinEsInvalido(t *testing.T) {
	e := newEngine()
	wh := e.warehouse(t, "Central")
	a := e.bin(t, wh.ID, "A")
	e.add(t, 7, a, 2)

	_, err := e.stock.Transfer(context.Background(), inventory.TransferInput{
		ProductID: 7, FromWarehouseID: wh.ID, FromBinID: a.ID, ToWarehouseID: wh.ID, ToBinID: a.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_DestinoInexistente(t *testing.T) {
	e := newEngine()
	wh := e.warehouse(t, "Central")
	a := e.bin(t, wh.ID, "A")
	e.add(t, 7, a, 2)

	_, err := e.stock.Transfer(context.Background(), inventory.TransferInput{
		ProductID: 7, FromWarehouseID: wh.ID, FromBinID: a.ID, ToWarehouseID: wh.ID, ToBinID: 42, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrBinNotFound)
}
