package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// InventoryCountRepository define el puerto de persistencia para
// InventoryCount (DIP). Las lecturas cargan warehouse y createdBy.
type InventoryCountRepository interface {
	Create(count *entity.InventoryCount) error
	// ListByWarehouseMonth conteos de la bodega cuyo cut_off_date cae en el
	// año y mes dados, ordenados por count_number ASC.
	ListByWarehouseMonth(warehouseID string, year int, month int) ([]entity.InventoryCount, error)
	FindByID(id string) (*entity.InventoryCount, error)
	SetStatus(id string, status bool) error
}
