package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLine línea de un conteo de inventario: cantidades contadas de un
// producto, en unidades de empaque y en unidades sueltas.
type InventoryLine struct {
	ID                string          `db:"id" json:"id"`
	InventoryCount    *InventoryCount `db:"-" json:"inventoryCount,omitempty"`
	Product           *Product        `db:"-" json:"product,omitempty"`
	QuantityPackaging decimal.Decimal `db:"quantity_packaging" json:"quantityPackaging"`
	QuantityUnits     decimal.Decimal `db:"quantity_units" json:"quantityUnits"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
}
