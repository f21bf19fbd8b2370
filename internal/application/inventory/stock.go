package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// StockUseCase primitivas de mutación del ledger: entrada de stock y traslado entre bins.
type StockUseCase struct {
	txRunner TxRunner
	notifier committedNotifier
	log      zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, publisher EventPublisher, cache TotalsCache, log zerolog.Logger) *StockUseCase {
	return &StockUseCase{
		txRunner: txRunner,
		notifier: newCommittedNotifier(publisher, cache, log),
		log:      log,
	}
}

// AddStockInput entrada de mercancía a un bin.
type AddStockInput struct {
	ProductID   int64
	WarehouseID int64
	BinID       int64
	Quantity    int64
}

// TransferInput traslado de unidades de un bin a otro (puede ser entre bodegas).
type TransferInput struct {
	ProductID       int64
	FromWarehouseID int64
	FromBinID       int64
	ToWarehouseID   int64
	ToBinID         int64
	Quantity        int64
}

// AddStock suma la cantidad a la fila (producto, bin), creándola si no existe, y registra un movimiento IN.
func (uc *StockUseCase) AddStock(ctx context.Context, in AddStockInput) (*entity.InventoryItem, *entity.InventoryMovement, error) {
	var (
		item *entity.InventoryItem
		mov  *entity.InventoryMovement
	)
	txID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(tx TxRepositories) error {
		var err error
		item, mov, err = uc.ReceiveInTx(ctx, tx, txID, in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	uc.log.Info().
		Str("transaction_id", txID).
		Int64("product_id", in.ProductID).
		Int64("bin_id", in.BinID).
		Int64("quantity", in.Quantity).
		Msg("entrada de stock")
	uc.NotifyCommitted(ctx, entity.EventStockAdded, txID, *mov)
	return item, mov, nil
}

// ReceiveInTx registra una entrada dentro de una transacción ya abierta (p. ej. la creación de un bin
// con stock inicial). No publica nada: el llamador invoca NotifyCommitted después del Commit.
func (uc *StockUseCase) ReceiveInTx(ctx context.Context, tx TxRepositories, txID string, in AddStockInput) (*entity.InventoryItem, *entity.InventoryMovement, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := validateLocation(ctx, tx, in.WarehouseID, in.BinID); err != nil {
		return nil, nil, err
	}
	item, err := tx.Items.AddQuantity(ctx, in.ProductID, in.WarehouseID, in.BinID, in.Quantity)
	if err != nil {
		return nil, nil, err
	}
	mov := &entity.InventoryMovement{
		TransactionID: txID,
		ProductID:     in.ProductID,
		To:            &entity.Location{WarehouseID: in.WarehouseID, BinID: in.BinID},
		Quantity:      in.Quantity,
		CreatedAt:     time.Now().UTC(),
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	return item, mov, nil
}

// Transfer mueve unidades entre dos bins en una sola transacción.
// Bloquea origen y destino en orden de id (el mismo orden que usa el commit) y falla con
// ErrInsufficientStock si el origen no alcanza, sin mutar nada.
func (uc *StockUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.InventoryMovement, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromBinID == in.ToBinID {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.InventoryMovement
	txID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(tx TxRepositories) error {
		if err := validateLocation(ctx, tx, in.FromWarehouseID, in.FromBinID); err != nil {
			return err
		}
		if err := validateLocation(ctx, tx, in.ToWarehouseID, in.ToBinID); err != nil {
			return err
		}
		if err := tx.Items.Ensure(ctx, in.ProductID, in.ToWarehouseID, in.ToBinID); err != nil {
			return err
		}
		rows, err := tx.Items.LockBins(ctx, in.ProductID, []int64{in.FromBinID, in.ToBinID})
		if err != nil {
			return err
		}
		var src, dst *entity.InventoryItem
		for _, r := range rows {
			switch r.BinID {
			case in.FromBinID:
				src = r
			case in.ToBinID:
				dst = r
			}
		}
		if src == nil || src.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if dst == nil {
			return domain.ErrConflict
		}
		if err := tx.Items.SetQuantity(ctx, src.ID, src.Quantity-in.Quantity); err != nil {
			return err
		}
		if err := tx.Items.SetQuantity(ctx, dst.ID, dst.Quantity+in.Quantity); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			TransactionID: txID,
			ProductID:     in.ProductID,
			From:          &entity.Location{WarehouseID: in.FromWarehouseID, BinID: in.FromBinID},
			To:            &entity.Location{WarehouseID: in.ToWarehouseID, BinID: in.ToBinID},
			Quantity:      in.Quantity,
			CreatedAt:     time.Now().UTC(),
		}
		return tx.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", txID).
		Int64("product_id", in.ProductID).
		Int64("from_bin_id", in.FromBinID).
		Int64("to_bin_id", in.ToBinID).
		Int64("quantity", in.Quantity).
		Msg("traslado de stock")
	uc.NotifyCommitted(ctx, entity.EventStockTransferred, txID, *mov)
	return mov, nil
}

// NotifyCommitted invalida caché y publica el evento de movimientos ya confirmados.
func (uc *StockUseCase) NotifyCommitted(ctx context.Context, eventType, txID string, movements ...entity.InventoryMovement) {
	uc.notifier.notify(ctx, entity.LedgerEvent{
		Type:          eventType,
		TransactionID: txID,
		Movements:     movements,
	})
}

// validateLocation comprueba que la bodega exista y que el bin exista dentro de ella.
func validateLocation(ctx context.Context, tx TxRepositories, warehouseID, binID int64) error {
	if warehouseID <= 0 || binID <= 0 {
		return domain.ErrInvalidInput
	}
	wh, err := tx.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrWarehouseNotFound
	}
	bin, err := tx.Bins.GetByID(ctx, binID)
	if err != nil {
		return err
	}
	if bin == nil || bin.WarehouseID != warehouseID {
		return domain.ErrBinNotFound
	}
	return nil
}
