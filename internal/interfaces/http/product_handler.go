package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// ProductHandler maneja el CRUD de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "datos del producto"
// @Success      201   {object}  entity.Product
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Product.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	product, err := h.uc.Create(in, GetUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ListResult[entity.Product]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return exceptions.Product.BadRequest
	}
	out, err := h.uc.List(q, permission.FromUser(GetUser(c)))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID producto por id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.FindOne(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetByCode producto por código.
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	product, err := h.uc.FindOneByCode(c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// ByUser productos de las bodegas asignadas al usuario.
func (h *ProductHandler) ByUser(c *fiber.Ctx) error {
	out, err := h.uc.FindByUser(c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Product.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	product, err := h.uc.Update(c.Params("id"), in, GetUser(c))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Remove baja lógica del producto.
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	product, err := h.uc.Remove(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Reactivate reactiva un producto dado de baja.
func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	product, err := h.uc.Reactivate(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}
