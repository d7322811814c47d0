package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// WarehouseFilter filtros del listado de bodegas. Code es igualdad exacta;
// Name es parcial; Search agrupa code y name en OR.
type WarehouseFilter struct {
	Code      string
	Name      string
	CityID    string
	Search    string
	Active    *bool
	CreatedAt string
	Limit     int
	Page      int
}

// WarehouseFindBy condición simple para find-one-by: cualquier combinación de
// code, name y active por igualdad exacta. Con Limit y Page presentes la
// búsqueda es paginada; sin ellos devuelve un único registro.
type WarehouseFindBy struct {
	Code   *string
	Name   *string
	Active *bool
	Limit  *int
	Page   *int
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Las lecturas cargan la relación city.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	List(filter WarehouseFilter) ([]entity.Warehouse, int64, error)
	FindBy(cond WarehouseFindBy) ([]entity.Warehouse, int64, error)
	FindByID(id string) (*entity.Warehouse, error)
	FindByCode(code string) (*entity.Warehouse, error)
	// ListByUser bodegas activas asignadas al usuario, created_at DESC.
	ListByUser(userID string) ([]entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	SetActive(id string, active bool) error
}
