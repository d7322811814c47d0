package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// ProductFilter filtros del listado de productos. Code es igualdad exacta;
// Name, Description y PackagingUnit son parciales; Search agrupa code, name y
// description en OR. WarehouseID restringe a productos con existencia
// registrada en esa bodega.
type ProductFilter struct {
	Code          string
	Name          string
	Description   string
	PackagingUnit string
	WarehouseID   string
	Search        string
	Active        *bool
	CreatedAt     string
	Limit         int
	Page          int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas cargan productWarehouses con su warehouse.
type ProductRepository interface {
	// Create persiste el producto junto a sus cantidades por bodega en una
	// sola transacción.
	Create(product *entity.Product) error
	List(filter ProductFilter) ([]entity.Product, int64, error)
	FindByID(id string) (*entity.Product, error)
	FindByCode(code string) (*entity.Product, error)
	// ListByWarehouses productos con existencia en cualquiera de las bodegas
	// dadas, created_at DESC (puede repetir producto por bodega).
	ListByWarehouses(warehouseIDs []string) ([]entity.Product, error)
	Update(product *entity.Product) error
	// ReplaceQuantities sincroniza las cantidades por bodega del producto con
	// el conjunto dado: actualiza, inserta y elimina lo que sobre. Un
	// conjunto vacío elimina todas.
	ReplaceQuantities(productID string, quantities []entity.ProductWarehouse) error
	SetActive(id string, active bool) error
}
