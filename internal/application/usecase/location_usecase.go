package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-ledger/internal/application/dto"
	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

// LocationUseCase directorio de bins. La creación puede incluir stock inicial.
type LocationUseCase struct {
	txRunner inventory.TxRunner
	bins     repository.BinLocationRepository
	rules    repository.StorageRuleRepository
	stock    *inventory.StockUseCase
}

func NewLocationUseCase(
	txRunner inventory.TxRunner,
	bins repository.BinLocationRepository,
	rules repository.StorageRuleRepository,
	stock *inventory.StockUseCase,
) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, bins: bins, rules: rules, stock: stock}
}

// Create crea el bin y, si vienen product_id y quantity, registra la entrada en la misma transacción.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateBinRequest) (*dto.BinResponse, error) {
	bin := &entity.BinLocation{
		WarehouseID:   in.WarehouseID,
		Zone:          strings.TrimSpace(in.Zone),
		Aisle:         strings.TrimSpace(in.Aisle),
		Rack:          strings.TrimSpace(in.Rack),
		BinCode:       strings.TrimSpace(in.BinCode),
		StorageRuleID: in.StorageRuleID,
	}
	if bin.WarehouseID <= 0 || bin.Zone == "" || bin.Aisle == "" || bin.Rack == "" || bin.BinCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if (in.ProductID == nil) != (in.Quantity == nil) {
		return nil, domain.ErrInvalidInput
	}
	if bin.StorageRuleID != nil {
		rule, err := uc.rules.GetByID(ctx, *bin.StorageRuleID)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			return nil, domain.ErrStorageRuleNotFound
		}
	}

	txID := uuid.New().String()
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(tx inventory.TxRepositories) error {
		wh, err := tx.Warehouses.GetByID(ctx, bin.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrWarehouseNotFound
		}
		if err := tx.Bins.Create(ctx, bin); err != nil {
			return err
		}
		if in.ProductID == nil {
			return nil
		}
		_, mov, err = uc.stock.ReceiveInTx(ctx, tx, txID, inventory.AddStockInput{
			ProductID:   *in.ProductID,
			WarehouseID: bin.WarehouseID,
			BinID:       bin.ID,
			Quantity:    *in.Quantity,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := toBinResponse(&entity.BinStock{Bin: *bin})
	if mov != nil {
		uc.stock.NotifyCommitted(ctx, entity.EventStockAdded, txID, *mov)
		resp.ProductID, resp.Quantity = in.ProductID, in.Quantity
	}
	return resp, nil
}

func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.BinResponse, error) {
	bin, err := uc.bins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, domain.ErrBinNotFound
	}
	return toBinResponse(&entity.BinStock{Bin: *bin}), nil
}

// List lista bins (opcionalmente de una bodega) con su primer producto.
func (uc *LocationUseCase) List(ctx context.Context, warehouseID *int64) ([]dto.BinResponse, error) {
	list, err := uc.bins.ListWithStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BinResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBinResponse(b))
	}
	return out, nil
}

// Delete con stock o movimientos asociados devuelve ErrConflict.
func (uc *LocationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.bins.Delete(ctx, id)
}

func toBinResponse(s *entity.BinStock) *dto.BinResponse {
	b := s.Bin
	return &dto.BinResponse{
		ID:            b.ID,
		WarehouseID:   b.WarehouseID,
		Zone:          b.Zone,
		Aisle:         b.Aisle,
		Rack:          b.Rack,
		BinCode:       b.BinCode,
		Label:         b.Label(),
		StorageRuleID: b.StorageRuleID,
		ProductID:     s.ProductID,
		Quantity:      s.Quantity,
		CreatedAt:     b.CreatedAt,
	}
}
