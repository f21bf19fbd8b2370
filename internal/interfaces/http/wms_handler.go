package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-ledger/internal/application/dto"
	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// WMSHandler verificación y descuento de pedidos.
type WMSHandler struct {
	availability *inventory.AvailabilityUseCase
	allocation   *inventory.AllocationUseCase
}

// NewWMSHandler construye el handler.
func NewWMSHandler(availability *inventory.AvailabilityUseCase, allocation *inventory.AllocationUseCase) *WMSHandler {
	return &WMSHandler{availability: availability, allocation: allocation}
}

// Check godoc
// @Summary      Verificar disponibilidad de un pedido (sin bloquear ni mutar)
// @Tags         wms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "items: product_id, quantity"
// @Success      200   {object}  dto.CheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/wms/check [post]
func (h *WMSHandler) Check(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.availability.Check(c.UserContext(), toOrderLines(in.Items))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CheckResponse{OK: res.OK, Shortages: toShortageDTOs(res.Shortages)})
}

// Commit godoc
// @Summary      Descontar un pedido completo (todo o nada)
// @Description  Con faltantes responde 200 y ok=false sin mutar. Si el stock cambia durante
// @Description  la asignación responde 500 ALLOCATION_RACE y el pedido puede reintentarse.
// @Tags         wms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "order_id opcional, items: product_id, quantity"
// @Success      200   {object}  dto.CommitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/wms/commit [post]
func (h *WMSHandler) Commit(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.allocation.Commit(c.UserContext(), inventory.CommitInput{
		OrderID: in.OrderID,
		Lines:   toOrderLines(in.Items),
	})
	if err != nil {
		return writeError(c, err)
	}
	out := dto.CommitResponse{
		OK:            res.OK,
		TransactionID: res.TransactionID,
		Shortages:     toShortageDTOs(res.Shortages),
		Items:         make([]dto.CommitItemDTO, 0, len(res.Items)),
	}
	for _, it := range res.Items {
		allocs := make([]dto.AllocationDTO, 0, len(it.Allocations))
		for _, a := range it.Allocations {
			allocs = append(allocs, dto.AllocationDTO{WarehouseID: a.WarehouseID, BinID: a.BinID, Deducted: a.Deducted})
		}
		out.Items = append(out.Items, dto.CommitItemDTO{ProductID: it.ProductID, Deducted: it.Deducted, Allocations: allocs})
	}
	return c.JSON(out)
}

func toOrderLines(items []dto.OrderItemRequest) []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, entity.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

func toShortageDTOs(list []entity.Shortage) []dto.ShortageDTO {
	out := make([]dto.ShortageDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ShortageDTO{ProductID: s.ProductID, Requested: s.Requested, Available: s.Available})
	}
	return out
}
