package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// InventoryLineHandler maneja las líneas de conteo de inventario.
type InventoryLineHandler struct {
	uc *usecase.InventoryLineUseCase
}

// NewInventoryLineHandler construye el handler de líneas de conteo.
func NewInventoryLineHandler(uc *usecase.InventoryLineUseCase) *InventoryLineHandler {
	return &InventoryLineHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar línea de conteo
// @Tags         inventory-lines
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryLineRequest  true  "conteo, producto y cantidades"
// @Success      201   {object}  entity.InventoryLine
// @Router       /api/inventory-lines [post]
func (h *InventoryLineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryLineRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.InventoryLine.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	line, err := h.uc.Create(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// List listado filtrado de líneas.
func (h *InventoryLineHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryLineListQuery
	if err := c.QueryParser(&q); err != nil {
		return exceptions.InventoryLine.BadRequest
	}
	out, err := h.uc.List(q, permission.FromUser(GetUser(c)))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByCount líneas de un conteo.
func (h *InventoryLineHandler) ByCount(c *fiber.Ctx) error {
	out, err := h.uc.FindByCount(c.Params("inventoryCountId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID línea por id.
func (h *InventoryLineHandler) GetByID(c *fiber.Ctx) error {
	line, err := h.uc.FindOne(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(line)
}

// Update actualización parcial de una línea.
func (h *InventoryLineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryLineRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.InventoryLine.BadRequest
	}
	line, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(line)
}

// Remove borrado físico; responde la línea eliminada.
func (h *InventoryLineHandler) Remove(c *fiber.Ctx) error {
	line, err := h.uc.Remove(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(line)
}
