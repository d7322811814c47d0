package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// CreateInventoryCountRequest apertura de un conteo de inventario.
type CreateInventoryCountRequest struct {
	WarehouseID string    `json:"warehouseId"`
	CutOffDate  time.Time `json:"cutOffDate"`
	CountNumber int       `json:"countNumber"`
	Status      *bool     `json:"status"`
}

// Validate obligatorios y número de conteo entre 1 y 3.
func (r *CreateInventoryCountRequest) Validate() error {
	if r.WarehouseID == "" || r.CutOffDate.IsZero() {
		return exceptions.InventoryCount.BadRequest
	}
	if r.CountNumber < 1 || r.CountNumber > 3 {
		return exceptions.InventoryCount.BadRequest
	}
	return nil
}

// CreateInventoryLineRequest alta de línea de conteo.
type CreateInventoryLineRequest struct {
	InventoryCountID  string          `json:"inventoryCountId"`
	ProductID         string          `json:"productId"`
	QuantityPackaging decimal.Decimal `json:"quantityPackaging"`
	QuantityUnits     decimal.Decimal `json:"quantityUnits"`
}

// Validate referencias obligatorias.
func (r *CreateInventoryLineRequest) Validate() error {
	if r.InventoryCountID == "" || r.ProductID == "" {
		return exceptions.InventoryLine.BadRequest
	}
	return nil
}

// UpdateInventoryLineRequest actualización parcial de línea de conteo.
type UpdateInventoryLineRequest struct {
	InventoryCountID  string           `json:"inventoryCountId"`
	ProductID         string           `json:"productId"`
	QuantityPackaging *decimal.Decimal `json:"quantityPackaging"`
	QuantityUnits     *decimal.Decimal `json:"quantityUnits"`
}

// InventoryLineListQuery filtros del listado de líneas (query string).
type InventoryLineListQuery struct {
	Limit            int    `query:"limit"`
	Page             int    `query:"page"`
	Search           string `query:"search"`
	InventoryCountID string `query:"inventoryCountId"`
	ProductID        string `query:"productId"`
	CreatedAt        string `query:"created_at"`
}
