package entity

import "time"

// Tipos (roles) válidos para User.
const (
	TypeAdmin = "admin"
	TypeUser  = "user"
)

// User representa un usuario del sistema. El username es el correo electrónico
// y el documento de identidad es único por usuario.
type User struct {
	ID                 string      `db:"id" json:"id"`
	Document           string      `db:"document" json:"document"`
	Name               string      `db:"name" json:"name"`
	Surname            *string     `db:"surname" json:"surname"`
	Username           string      `db:"username" json:"username"`
	Password           string      `db:"password" json:"-"` // hash bcrypt, nunca se expone
	Type               string      `db:"type" json:"type"`  // admin | user
	Active             bool        `db:"active" json:"active"`
	PasswordChange     bool        `db:"password_change" json:"passwordChange"`
	LastPasswordChange *time.Time  `db:"last_password_change" json:"lastPasswordChange"`
	Warehouses         []Warehouse `db:"-" json:"warehouses,omitempty"`
	CreatedAt          time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updatedAt"`
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Type == TypeAdmin
}
