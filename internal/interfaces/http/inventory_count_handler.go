package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// InventoryCountHandler maneja los conteos mensuales de inventario.
type InventoryCountHandler struct {
	uc *usecase.InventoryCountUseCase
}

// NewInventoryCountHandler construye el handler de conteos.
func NewInventoryCountHandler(uc *usecase.InventoryCountUseCase) *InventoryCountHandler {
	return &InventoryCountHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir conteo de inventario
// @Tags         inventory-counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryCountRequest  true  "bodega, fecha de corte y número"
// @Success      201   {array}  entity.InventoryCount
// @Router       /api/inventory-counts [post]
func (h *InventoryCountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryCountRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.InventoryCount.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	out, err := h.uc.Create(in, GetUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByWarehouse conteos de la bodega en el mes de countDate (por defecto el mes
// en curso).
func (h *InventoryCountHandler) ByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.FindByWarehouse(c.Params("warehouseId"), c.Query("countDate"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Finish cierra un conteo.
func (h *InventoryCountHandler) Finish(c *fiber.Ctx) error {
	out, err := h.uc.Finish(c.Params("inventoryId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
