package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// WarehouseHandler maneja el CRUD de bodegas.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler de bodegas.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "datos de la bodega"
// @Success      201   {object}  entity.Warehouse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Warehouse.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	warehouse, err := h.uc.Create(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(warehouse)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Produce      json
// @Success      200  {object}  dto.ListResult[entity.Warehouse]
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var q dto.WarehouseListQuery
	if err := c.QueryParser(&q); err != nil {
		return exceptions.Warehouse.BadRequest
	}
	out, err := h.uc.List(q, permission.FromUser(GetUser(c)))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FindOneBy búsqueda por condición simple; con limit y page responde un
// listado paginado.
func (h *WarehouseHandler) FindOneBy(c *fiber.Ctx) error {
	var q dto.WarehouseFindOneByQuery
	if err := c.QueryParser(&q); err != nil {
		return exceptions.Warehouse.BadRequest
	}
	out, err := h.uc.FindOneBy(q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID bodega por id.
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	warehouse, err := h.uc.FindOne(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(warehouse)
}

// GetByCode bodega por código.
func (h *WarehouseHandler) GetByCode(c *fiber.Ctx) error {
	warehouse, err := h.uc.FindOneByCode(c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(warehouse)
}

// ByUser bodegas activas asignadas a un usuario.
func (h *WarehouseHandler) ByUser(c *fiber.Ctx) error {
	out, err := h.uc.FindByUser(c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega
// @Tags         warehouses
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Warehouse.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	warehouse, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(warehouse)
}

// Remove baja lógica de la bodega.
func (h *WarehouseHandler) Remove(c *fiber.Ctx) error {
	warehouse, err := h.uc.Remove(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(warehouse)
}

// Reactivate reactiva una bodega dada de baja.
func (h *WarehouseHandler) Reactivate(c *fiber.Ctx) error {
	warehouse, err := h.uc.Reactivate(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(warehouse)
}
