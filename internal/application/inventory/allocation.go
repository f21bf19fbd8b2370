package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/inventory"
)

// AllocationUseCase descuenta el stock de un pedido completo repartiéndolo entre bins.
//
// Orden de bloqueo (evita deadlocks entre commits concurrentes):
//   - productos en orden ascendente de product_id;
//   - dentro de un producto, filas en orden ascendente de id (SELECT ... FOR UPDATE).
//
// Con las filas bloqueadas se recorren de mayor a menor cantidad (desempate por bin_id).
// Todo el pedido se confirma o se revierte junto.
type AllocationUseCase struct {
	txRunner     TxRunner
	availability *AvailabilityUseCase
	notifier     committedNotifier
	log          zerolog.Logger
}

// NewAllocationUseCase construye el motor de asignación.
func NewAllocationUseCase(
	txRunner TxRunner,
	availability *AvailabilityUseCase,
	publisher EventPublisher,
	cache TotalsCache,
	log zerolog.Logger,
) *AllocationUseCase {
	return &AllocationUseCase{
		txRunner:     txRunner,
		availability: availability,
		notifier:     newCommittedNotifier(publisher, cache, log),
		log:          log,
	}
}

// CommitInput pedido a descontar. OrderID es el identificador externo del pedido (opcional)
// y queda como referencia en los movimientos.
type CommitInput struct {
	OrderID *string
	Lines   []entity.OrderLine
}

// Commit ejecuta la verificación previa sin bloqueo y, si todo alcanza, la asignación bajo bloqueo.
//
// Un faltante en la verificación previa no es un error: devuelve OK=false con los faltantes.
// Si con las filas ya bloqueadas algún producto no alcanza (el stock cambió entre la verificación
// y el bloqueo), se revierte todo y devuelve *domain.AllocationRaceError.
func (uc *AllocationUseCase) Commit(ctx context.Context, in CommitInput) (*entity.CommitResult, error) {
	lines, err := inventory.NormalizeLines(in.Lines)
	if err != nil {
		return nil, err
	}

	pre, err := uc.availability.check(ctx, lines)
	if err != nil {
		return nil, err
	}
	if !pre.OK {
		uc.log.Info().
			Interface("order_id", in.OrderID).
			Int("shortages", len(pre.Shortages)).
			Msg("commit rechazado por faltante")
		return &entity.CommitResult{OK: false, Shortages: pre.Shortages, Items: []entity.ProductAllocation{}}, nil
	}

	txID := uuid.New().String()
	var (
		items     []entity.ProductAllocation
		movements []entity.InventoryMovement
	)
	err = uc.txRunner.Run(ctx, func(tx TxRepositories) error {
		// Reinicia por si el runner reintenta la función.
		items = make([]entity.ProductAllocation, 0, len(lines))
		movements = movements[:0]
		now := time.Now().UTC()

		for _, line := range lines {
			rows, err := tx.Items.ListForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			deductions, remaining := inventory.Allocate(rows, line.Quantity)
			if remaining > 0 {
				return &domain.AllocationRaceError{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Allocated: line.Quantity - remaining,
				}
			}

			result := entity.ProductAllocation{
				ProductID:   line.ProductID,
				Deducted:    line.Quantity,
				Allocations: make([]entity.Allocation, 0, len(deductions)),
			}
			for _, d := range deductions {
				if err := tx.Items.SetQuantity(ctx, d.Item.ID, d.Item.Quantity-d.Quantity); err != nil {
					return err
				}
				mov := &entity.InventoryMovement{
					TransactionID: txID,
					ProductID:     line.ProductID,
					From:          &entity.Location{WarehouseID: d.Item.WarehouseID, BinID: d.Item.BinID},
					Quantity:      d.Quantity,
					Reference:     in.OrderID,
					CreatedAt:     now,
				}
				if err := tx.Movements.Create(ctx, mov); err != nil {
					return err
				}
				movements = append(movements, *mov)
				result.Allocations = append(result.Allocations, entity.Allocation{
					WarehouseID: d.Item.WarehouseID,
					BinID:       d.Item.BinID,
					Deducted:    d.Quantity,
				})
			}
			items = append(items, result)
		}
		return nil
	})
	if err != nil {
		var race *domain.AllocationRaceError
		if errors.As(err, &race) {
			uc.log.Warn().
				Str("transaction_id", txID).
				Interface("order_id", in.OrderID).
				Int64("product_id", race.ProductID).
				Int64("requested", race.Requested).
				Int64("allocated", race.Allocated).
				Msg("commit revertido: stock cambió antes del bloqueo")
		}
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", txID).
		Interface("order_id", in.OrderID).
		Int("products", len(items)).
		Int("movements", len(movements)).
		Msg("pedido descontado")

	uc.notifier.notify(ctx, entity.LedgerEvent{
		Type:          entity.EventOrderCommitted,
		TransactionID: txID,
		OrderID:       in.OrderID,
		Movements:     movements,
	})

	return &entity.CommitResult{
		OK:            true,
		TransactionID: txID,
		Shortages:     []entity.Shortage{},
		Items:         items,
	}, nil
}
