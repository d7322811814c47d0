package dto

import (
	"github.com/shopspring/decimal"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// QuantityItem cantidad de un producto en una bodega.
type QuantityItem struct {
	Quantity    decimal.Decimal `json:"quantity"`
	WarehouseID string          `json:"warehouse_id"`
}

// CreateProductRequest alta de producto con cantidades opcionales por bodega.
type CreateProductRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	PackagingUnit    string          `json:"packagingUnit"`
	ConversionFactor decimal.Decimal `json:"conversionFactor"`
	Price            decimal.Decimal `json:"price"`
	Quantities       []QuantityItem  `json:"quantities"`
}

// Validate obligatorios y longitudes máximas.
func (r *CreateProductRequest) Validate() error {
	if r.Code == "" || r.Name == "" || r.Description == "" || r.PackagingUnit == "" {
		return exceptions.Product.BadRequest
	}
	if len(r.Code) > 50 || len(r.Name) > 150 || len(r.PackagingUnit) > 50 {
		return exceptions.Product.BadRequest
	}
	for _, q := range r.Quantities {
		if q.WarehouseID == "" {
			return exceptions.Product.BadRequest
		}
	}
	return nil
}

// UpdateProductRequest actualización parcial de producto. Quantities nil no
// toca las existencias; un arreglo vacío las elimina todas.
type UpdateProductRequest struct {
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	PackagingUnit    string           `json:"packagingUnit"`
	ConversionFactor *decimal.Decimal `json:"conversionFactor"`
	Price            *decimal.Decimal `json:"price"`
	Quantities       *[]QuantityItem  `json:"quantities"`
}

// Validate longitudes máximas y bodegas presentes en las cantidades.
func (r *UpdateProductRequest) Validate() error {
	if len(r.Code) > 50 || len(r.Name) > 150 || len(r.PackagingUnit) > 50 {
		return exceptions.Product.BadRequest
	}
	if r.Quantities != nil {
		for _, q := range *r.Quantities {
			if q.WarehouseID == "" {
				return exceptions.Product.BadRequest
			}
		}
	}
	return nil
}

// ProductListQuery filtros del listado de productos (query string).
type ProductListQuery struct {
	Limit         int    `query:"limit"`
	Page          int    `query:"page"`
	Search        string `query:"search"`
	Code          string `query:"code"`
	Name          string `query:"name"`
	Description   string `query:"description"`
	PackagingUnit string `query:"packagingUnit"`
	Active        *bool  `query:"active"`
	CreatedAt     string `query:"created_at"`
	Warehouse     string `query:"warehouse"`
}
