package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// UserFilter filtros del listado de usuarios. Document es igualdad exacta;
// Name, Surname y Username son parciales (ILIKE); Search agrupa en OR los
// cuatro campos de texto. CreatedAt es un instante ISO que se resuelve al día
// calendario UTC-5.
type UserFilter struct {
	Document  string
	Name      string
	Surname   string
	Username  string
	Search    string
	Active    *bool
	CreatedAt string
	Limit     int
	Page      int
}

// UserRoleFilter filtros del listado por rol. Rol "all" desactiva el filtro de
// tipo; siempre se listan sólo usuarios activos. La paginación aplica sólo
// cuando Limit y Page vienen ambos.
type UserRoleFilter struct {
	Rol    string
	Search string
	Limit  *int
	Page   *int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas cargan la relación warehouses.
type UserRepository interface {
	Create(user *entity.User) error
	List(filter UserFilter) ([]entity.User, int64, error)
	ListByRole(filter UserRoleFilter) ([]entity.User, int64, error)
	FindByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
	SetActive(id string, active bool) error
	// SetWarehouses reemplaza el conjunto de bodegas asignadas al usuario
	// (un conjunto vacío las elimina todas).
	SetWarehouses(userID string, warehouseIDs []string) error
}
