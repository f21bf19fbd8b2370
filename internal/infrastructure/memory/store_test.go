package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
	"github.com/jhoicas/wms-ledger/internal/infrastructure/memory"
)

func seedBin(t *testing.T, s *memory.Store) (*entity.Warehouse, *entity.BinLocation) {
	t.Helper()
	ctx := context.Background()
	wh := &entity.Warehouse{Name: "Central", Address: "Calle 1"}
	require.NoError(t, s.Warehouses().Create(ctx, wh))
	bin := &entity.BinLocation{WarehouseID: wh.ID, Zone: "A", Aisle: "01", Rack: "R1", BinCode: "B01"}
	require.NoError(t, s.Bins().Create(ctx, bin))
	return wh, bin
}

func TestRun_ErrorRevierteTodo(t *testing.T) {
	s := memory.NewStore()
	wh, bin := seedBin(t, s)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Run(ctx, func(tx inventory.TxRepositories) error {
		if _, err := tx.Items.AddQuantity(ctx, 7, wh.ID, bin.ID, 10); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	sums, err := s.Items().SumByProducts(ctx, []int64{7})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sums[7])
}

func TestRun_PanicoNoPublicaCambios(t *testing.T) {
	s := memory.NewStore()
	wh, bin := seedBin(t, s)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.Run(ctx, func(tx inventory.TxRepositories) error {
			_, _ = tx.Items.AddQuantity(ctx, 7, wh.ID, bin.ID, 10)
			panic("falla")
		})
	})

	items, err := s.Items().List(ctx, repository.ItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	// El semáforo se liberó.
	_, err = s.Items().AddQuantity(ctx, 7, wh.ID, bin.ID, 1)
	require.NoError(t, err)
}

func TestRun_EsperaConDeadlineDevuelveLockTimeout(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	hold := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = s.Run(ctx, func(tx inventory.TxRepositories) error {
			close(started)
			<-hold
			return nil
		})
	}()
	<-started
	defer close(hold)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := s.Run(short, func(tx inventory.TxRepositories) error { return nil })
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestItems_UnaFilaPorProductoYBin(t *testing.T) {
	s := memory.NewStore()
	wh, bin := seedBin(t, s)
	ctx := context.Background()

	first, err := s.Items().AddQuantity(ctx, 7, wh.ID, bin.ID, 5)
	require.NoError(t, err)
	second, err := s.Items().AddQuantity(ctx, 7, wh.ID, bin.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(8), second.Quantity)

	require.NoError(t, s.Items().Ensure(ctx, 7, wh.ID, bin.ID))
	items, err := s.Items().List(ctx, repository.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(8), items[0].Quantity)
}

func TestItems_NoPermiteNegativos(t *testing.T) {
	s := memory.NewStore()
	wh, bin := seedBin(t, s)
	ctx := context.Background()

	it, err := s.Items().AddQuantity(ctx, 7, wh.ID, bin.ID, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Items().SetQuantity(ctx, it.ID, -1), domain.ErrInsufficientStock)
}

func TestDirectory_UnicidadYReferencias(t *testing.T) {
	s := memory.NewStore()
	wh, bin := seedBin(t, s)
	ctx := context.Background()

	assert.ErrorIs(t, s.Warehouses().Create(ctx, &entity.Warehouse{Name: "Central"}), domain.ErrDuplicate)
	dup := &entity.BinLocation{WarehouseID: wh.ID, Zone: "A", Aisle: "01", Rack: "R1", BinCode: "B01"}
	assert.ErrorIs(t, s.Bins().Create(ctx, dup), domain.ErrDuplicate)

	// Bodega con bins: no se puede borrar.
	assert.ErrorIs(t, s.Warehouses().Delete(ctx, wh.ID), domain.ErrConflict)

	_, err := s.Items().AddQuantity(ctx, 7, wh.ID, bin.ID, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Bins().Delete(ctx, bin.ID), domain.ErrConflict)

	assert.ErrorIs(t, s.Bins().Delete(ctx, 999), domain.ErrBinNotFound)
	got, err := s.Warehouses().GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBins_ListaPrimerProducto(t *testing.T) {
	s := memory.NewStore()
	wh, bin := seedBin(t, s)
	ctx := context.Background()
	empty := &entity.BinLocation{WarehouseID: wh.ID, Zone: "A", Aisle: "01", Rack: "R1", BinCode: "B02"}
	require.NoError(t, s.Bins().Create(ctx, empty))

	_, err := s.Items().AddQuantity(ctx, 9, wh.ID, bin.ID, 4)
	require.NoError(t, err)
	_, err = s.Items().AddQuantity(ctx, 3, wh.ID, bin.ID, 1)
	require.NoError(t, err)

	bins, err := s.Bins().ListWithStock(ctx, &wh.ID)
	require.NoError(t, err)
	require.Len(t, bins, 2)
	require.NotNil(t, bins[0].ProductID)
	assert.Equal(t, int64(9), *bins[0].ProductID)
	assert.Equal(t, int64(4), *bins[0].Quantity)
	assert.Nil(t, bins[1].ProductID)
}

func TestMovements_RecientesPrimeroYFiltros(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	loc := &entity.Location{WarehouseID: 1, BinID: 1}
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Movements().Create(ctx, &entity.InventoryMovement{
			TransactionID: "tx", ProductID: int64(i % 2), To: loc, Quantity: int64(i),
		}))
	}

	got, err := s.Movements().List(ctx, repository.MovementFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].Quantity)
	assert.Equal(t, int64(4), got[1].Quantity)

	pid := int64(1)
	got, err = s.Movements().List(ctx, repository.MovementFilter{ProductID: &pid, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].Quantity)

	net, err := s.Movements().NetByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1+3+5), net)

	assert.ErrorIs(t, s.Movements().Create(ctx, &entity.InventoryMovement{ProductID: 1, Quantity: 1}), domain.ErrInvalidInput)
}
