package dto

import "github.com/templra/almacen-api/internal/domain/exceptions"

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
	CityID  string `json:"cityId"`
	Phone   string `json:"phone"`
}

// Validate obligatorios y longitudes máximas.
func (r *CreateWarehouseRequest) Validate() error {
	if r.Code == "" || r.Name == "" {
		return exceptions.Warehouse.BadRequest
	}
	if len(r.Code) > 50 || len(r.Name) > 150 || len(r.Address) > 255 || len(r.Phone) > 20 {
		return exceptions.Warehouse.BadRequest
	}
	return nil
}

// UpdateWarehouseRequest actualización parcial de bodega. Los punteros
// distinguen "no viene" de "viene vacío".
type UpdateWarehouseRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Phone   *string `json:"phone"`
}

// Validate longitudes máximas.
func (r *UpdateWarehouseRequest) Validate() error {
	if len(r.Code) > 50 || len(r.Name) > 150 {
		return exceptions.Warehouse.BadRequest
	}
	if r.Address != nil && len(*r.Address) > 255 {
		return exceptions.Warehouse.BadRequest
	}
	if r.Phone != nil && len(*r.Phone) > 20 {
		return exceptions.Warehouse.BadRequest
	}
	return nil
}

// WarehouseListQuery filtros del listado de bodegas (query string).
type WarehouseListQuery struct {
	Limit     int    `query:"limit"`
	Page      int    `query:"page"`
	Search    string `query:"search"`
	Code      string `query:"code"`
	Name      string `query:"name"`
	CityID    string `query:"cityId"`
	Active    *bool  `query:"active"`
	CreatedAt string `query:"created_at"`
}

// WarehouseFindOneByQuery condición de find-one-by (query string). Con limit
// y page la búsqueda es paginada; sin ellos devuelve un único registro.
type WarehouseFindOneByQuery struct {
	Code   *string `query:"code"`
	Name   *string `query:"name"`
	Active *bool   `query:"active"`
	Limit  *int    `query:"limit"`
	Page   *int    `query:"page"`
}
