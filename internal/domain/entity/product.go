package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. La cantidad disponible se
// maneja por bodega en ProductWarehouse; ConversionFactor convierte la unidad
// de empaque a unidades sueltas.
type Product struct {
	ID                string             `db:"id" json:"id"`
	Code              string             `db:"code" json:"code"`
	Name              string             `db:"name" json:"name"`
	Description       string             `db:"description" json:"description"`
	PackagingUnit     string             `db:"packaging_unit" json:"packagingUnit"`
	ConversionFactor  decimal.Decimal    `db:"conversion_factor" json:"conversionFactor"`
	Price             decimal.Decimal    `db:"price" json:"price"`
	Active            bool               `db:"active" json:"active"`
	CreatedBy         *User              `db:"-" json:"createdBy,omitempty"`
	UpdatedBy         *User              `db:"-" json:"updatedBy,omitempty"`
	ProductWarehouses []ProductWarehouse `db:"-" json:"productWarehouses,omitempty"`
	CreatedAt         time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updatedAt"`
}
