package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/wms-ledger/internal/application/dto"
	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
)

// InventoryHandler entradas, traslados y consultas del ledger.
type InventoryHandler struct {
	stock *inventory.StockUseCase
	query *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, query: query}
}

// AddStock godoc
// @Summary      Registrar entrada de stock en un bin
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "product_id, warehouse_id, bin_id, quantity"
// @Success      201   {object}  dto.AddStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	item, mov, err := h.stock.AddStock(c.UserContext(), inventory.AddStockInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		BinID:       in.BinID,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddStockResponse{
		Status:   "ok",
		Item:     toItemResponse(item),
		Movement: toMovementResponse(mov),
	})
}

// MoveStock godoc
// @Summary      Trasladar stock entre bins
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveStockRequest  true  "product_id, origen, destino, quantity"
// @Success      200   {object}  dto.MoveStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/move [post]
func (h *InventoryHandler) MoveStock(c *fiber.Ctx) error {
	var in dto.MoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mov, err := h.stock.Transfer(c.UserContext(), inventory.TransferInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		FromBinID:       in.FromBinID,
		ToWarehouseID:   in.ToWarehouseID,
		ToBinID:         in.ToBinID,
		Quantity:        in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MoveStockResponse{Status: "ok", Movement: toMovementResponse(mov)})
}

// ListItems godoc
// @Summary      Listar filas del ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  int  false  "Producto"
// @Param        warehouse_id  query  int  false  "Bodega"
// @Param        bin_id        query  int  false  "Bin"
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var (
		f   repository.ItemFilter
		err error
	)
	if f.ProductID, err = queryInt64(c, "product_id"); err != nil {
		return writeError(c, err)
	}
	if f.WarehouseID, err = queryInt64(c, "warehouse_id"); err != nil {
		return writeError(c, err)
	}
	if f.BinID, err = queryInt64(c, "bin_id"); err != nil {
		return writeError(c, err)
	}
	items, err := h.query.ListItems(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return c.JSON(out)
}

// ProductTotal godoc
// @Summary      Total de un producto en todas las bodegas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductTotalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/product/{id}/total [get]
func (h *InventoryHandler) ProductTotal(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_INPUT", "id inválido")
	}
	total, err := h.query.ProductTotal(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductTotalResponse{ProductID: total.ProductID, TotalQuantity: total.TotalQuantity})
}

// Totals godoc
// @Summary      Totales de todos los productos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductTotalResponse
// @Router       /api/inventory/totals [get]
func (h *InventoryHandler) Totals(c *fiber.Ctx) error {
	totals, err := h.query.AllTotals(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.ProductTotalResponse{ProductID: t.ProductID, TotalQuantity: t.TotalQuantity})
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id      query  int     false  "Producto"
// @Param        warehouse_id    query  int     false  "Bodega (origen o destino)"
// @Param        transaction_id  query  string  false  "Transacción (UUID)"
// @Param        limit           query  int     false  "Límite"  default(50)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var (
		f   repository.MovementFilter
		err error
	)
	if f.ProductID, err = queryInt64(c, "product_id"); err != nil {
		return writeError(c, err)
	}
	if f.WarehouseID, err = queryInt64(c, "warehouse_id"); err != nil {
		return writeError(c, err)
	}
	if txID := c.Query("transaction_id"); txID != "" {
		if _, err := uuid.Parse(txID); err != nil {
			return badRequest(c, "INVALID_INPUT", "transaction_id debe ser un UUID")
		}
		f.TransactionID = txID
	}
	f.Limit = c.QueryInt("limit", 0)
	f.Offset = c.QueryInt("offset", 0)

	movs, err := h.query.ListMovements(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	limit := f.Limit
	if limit == 0 {
		limit = inventory.DefaultMovementLimit
	}
	out := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(movs)),
		Page:  dto.PageResponse{Limit: min(limit, inventory.MaxMovementLimit), Offset: f.Offset},
	}
	for _, m := range movs {
		out.Items = append(out.Items, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Comparar el total del ledger con el neto del log de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/product/{id}/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_INPUT", "id inválido")
	}
	rec, err := h.query.Reconcile(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:     rec.ProductID,
		LedgerTotal:   rec.LedgerTotal,
		MovementTotal: rec.MovementTotal,
		Consistent:    rec.Consistent,
	})
}

func toItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:          it.ID,
		ProductID:   it.ProductID,
		WarehouseID: it.WarehouseID,
		BinID:       it.BinID,
		Quantity:    it.Quantity,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toLocationDTO(l *entity.Location) *dto.LocationDTO {
	if l == nil {
		return nil
	}
	return &dto.LocationDTO{WarehouseID: l.WarehouseID, BinID: l.BinID}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Kind:          m.Kind(),
		ProductID:     m.ProductID,
		From:          toLocationDTO(m.From),
		To:            toLocationDTO(m.To),
		Quantity:      m.Quantity,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
	}
}
