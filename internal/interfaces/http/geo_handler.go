package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/usecase"
)

// GeoHandler catálogos geográficos de sólo lectura.
type GeoHandler struct {
	uc *usecase.GeoUseCase
}

// NewGeoHandler construye el handler de catálogos geográficos.
func NewGeoHandler(uc *usecase.GeoUseCase) *GeoHandler {
	return &GeoHandler{uc: uc}
}

// Countries países activos.
func (h *GeoHandler) Countries(c *fiber.Ctx) error {
	out, err := h.uc.Countries()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Country país por id.
func (h *GeoHandler) Country(c *fiber.Ctx) error {
	out, err := h.uc.Country(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Departments departamentos activos.
func (h *GeoHandler) Departments(c *fiber.Ctx) error {
	out, err := h.uc.Departments()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Department departamento por id.
func (h *GeoHandler) Department(c *fiber.Ctx) error {
	out, err := h.uc.Department(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DepartmentsByCountry departamentos de un país.
func (h *GeoHandler) DepartmentsByCountry(c *fiber.Ctx) error {
	out, err := h.uc.DepartmentsByCountry(c.Params("countryId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Cities ciudades activas.
func (h *GeoHandler) Cities(c *fiber.Ctx) error {
	out, err := h.uc.Cities()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// City ciudad por id.
func (h *GeoHandler) City(c *fiber.Ctx) error {
	out, err := h.uc.City(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CitiesByDepartment ciudades de un departamento.
func (h *GeoHandler) CitiesByDepartment(c *fiber.Ctx) error {
	out, err := h.uc.CitiesByDepartment(c.Params("departmentId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
