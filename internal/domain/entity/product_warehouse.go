package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductWarehouse cantidad disponible de un producto en una bodega concreta.
type ProductWarehouse struct {
	ID        string          `db:"id" json:"id"`
	ProductID string          `db:"product_id" json:"-"`
	Warehouse *Warehouse      `db:"-" json:"warehouse,omitempty"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}
