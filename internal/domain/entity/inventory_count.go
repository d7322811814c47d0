package entity

import "time"

// InventoryCount conteo físico de inventario de una bodega con fecha de corte.
// Se permiten hasta tres conteos por período; Status=true mientras el conteo
// siga abierto.
type InventoryCount struct {
	ID          string     `db:"id" json:"id"`
	Warehouse   *Warehouse `db:"-" json:"warehouse,omitempty"`
	CutOffDate  time.Time  `db:"cut_off_date" json:"cutOffDate"`
	CountNumber int        `db:"count_number" json:"countNumber"`
	Status      bool       `db:"status" json:"status"`
	CreatedBy   *User      `db:"-" json:"createdBy,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}
