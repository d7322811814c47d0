// Package permission expone la vista mínima del actor autenticado que usan
// los casos de uso para decidir sobre los listados.
package permission

import "github.com/templra/almacen-api/internal/domain/entity"

// Grant instantánea de identidad del actor.
type Grant struct {
	UserID string
	Type   string
	Active bool
}

// FromUser construye la instantánea a partir del usuario autenticado.
// Tolera un usuario nulo: devuelve una identidad vacía.
func FromUser(u *entity.User) Grant {
	if u == nil {
		return Grant{}
	}
	return Grant{UserID: u.ID, Type: u.Type, Active: u.Active}
}

// Empty indica que no hay identidad: los listados responden vacío sin tocar
// el datastore.
func (g Grant) Empty() bool {
	return len(g.UserID) == 0
}

// IsAdmin indica si el actor es administrador.
func (g Grant) IsAdmin() bool {
	return g.Type == entity.TypeAdmin
}
