package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// InventoryLineFilter filtros del listado de líneas. Search compara las
// cantidades convertidas a texto (ILIKE).
type InventoryLineFilter struct {
	InventoryCountID string
	ProductID        string
	Search           string
	CreatedAt        string
	Limit            int
	Page             int
}

// InventoryLineRepository define el puerto de persistencia para InventoryLine
// (DIP). Las lecturas cargan inventoryCount y product. Es el único módulo con
// borrado físico.
type InventoryLineRepository interface {
	Create(line *entity.InventoryLine) error
	List(filter InventoryLineFilter) ([]entity.InventoryLine, int64, error)
	// ListByCount líneas del conteo, created_at DESC.
	ListByCount(inventoryCountID string) ([]entity.InventoryLine, error)
	FindByID(id string) (*entity.InventoryLine, error)
	Update(line *entity.InventoryLine) error
	Delete(id string) error
}
