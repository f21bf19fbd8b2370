package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-ledger/internal/application/dto"
	"github.com/jhoicas/wms-ledger/internal/application/usecase"
)

// StorageRuleHandler reglas de almacenamiento (peligroso, sobredimensionado, rango de temperatura).
type StorageRuleHandler struct {
	uc *usecase.StorageRuleUseCase
}

func NewStorageRuleHandler(uc *usecase.StorageRuleUseCase) *StorageRuleHandler {
	return &StorageRuleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear regla de almacenamiento
// @Tags         storage-rules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageRuleRequest  true  "Regla"
// @Success      201   {object}  dto.StorageRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-rules [post]
func (h *StorageRuleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener regla por ID
// @Tags         storage-rules
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la regla"
// @Success      200  {object}  dto.StorageRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-rules/{id} [get]
func (h *StorageRuleHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar reglas
// @Tags         storage-rules
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StorageRuleResponse
// @Router       /api/storage-rules [get]
func (h *StorageRuleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar regla (sin bins que la usen)
// @Tags         storage-rules
// @Security     Bearer
// @Param        id   path  int  true  "ID de la regla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/storage-rules/{id} [delete]
func (h *StorageRuleHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
