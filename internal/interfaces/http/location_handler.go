package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-ledger/internal/application/dto"
	"github.com/jhoicas/wms-ledger/internal/application/usecase"
)

// LocationHandler bins de una bodega.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// CreateBin godoc
// @Summary      Crear bin (opcionalmente con stock inicial)
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBinRequest  true  "Ubicación y stock inicial opcional"
// @Success      201   {object}  dto.BinResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/bins [post]
func (h *LocationHandler) CreateBin(c *fiber.Ctx) error {
	var in dto.CreateBinRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBin godoc
// @Summary      Obtener bin por ID
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del bin"
// @Success      200  {object}  dto.BinResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/bins/{id} [get]
func (h *LocationHandler) GetBin(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBins godoc
// @Summary      Listar bins con su primer producto
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  int  false  "Bodega"
// @Success      200  {array}   dto.BinResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/bins [get]
func (h *LocationHandler) ListBins(c *fiber.Ctx) error {
	warehouseID, err := queryInt64(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteBin godoc
// @Summary      Eliminar bin (sin stock ni movimientos)
// @Tags         locations
// @Security     Bearer
// @Param        id   path  int  true  "ID del bin"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/bins/{id} [delete]
func (h *LocationHandler) DeleteBin(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
