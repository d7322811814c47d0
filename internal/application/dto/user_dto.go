package dto

import (
	"regexp"
	"time"

	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// Política de contraseñas: mínimo 8 caracteres, alfanuméricos más los
// especiales permitidos, con al menos un carácter especial.
var (
	passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-]+$`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*()_+\-]`)
)

// ValidPassword valida la contraseña contra la política.
func ValidPassword(password string) bool {
	return len(password) >= 8 &&
		passwordCharset.MatchString(password) &&
		passwordSpecial.MatchString(password)
}

// CreateUserRequest alta de usuario desde el módulo de usuarios.
type CreateUserRequest struct {
	Document      string   `json:"document"`
	Name          string   `json:"name"`
	Surname       string   `json:"surname"`
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	PasswordRetry string   `json:"password_retry"`
	Type          string   `json:"type"`
	Warehouses    []string `json:"warehouses"`
}

// Validate obligatorios, username con forma de correo y política de
// contraseñas.
func (r *CreateUserRequest) Validate() error {
	if r.Document == "" || r.Name == "" || r.Surname == "" || r.Username == "" ||
		r.Password == "" || r.PasswordRetry == "" || r.Type == "" {
		return exceptions.User.BadRequest
	}
	if !isEmail(r.Username) {
		return exceptions.User.BadRequest
	}
	if !ValidPassword(r.Password) {
		return exceptions.User.BadRequest
	}
	return nil
}

// UpdateUserRequest actualización parcial de usuario. Warehouses nil no toca
// las asignaciones; un arreglo vacío las elimina todas.
type UpdateUserRequest struct {
	Document           string     `json:"document"`
	Name               string     `json:"name"`
	Surname            string     `json:"surname"`
	Username           string     `json:"username"`
	Password           string     `json:"password"`
	PasswordRetry      string     `json:"password_retry"`
	Type               string     `json:"type"`
	PasswordChange     *bool      `json:"password_change"`
	LastPasswordChange *time.Time `json:"last_password_change"`
	Warehouses         *[]string  `json:"warehouses"`
}

// Validate política de contraseñas cuando viene contraseña nueva.
func (r *UpdateUserRequest) Validate() error {
	if r.Username != "" && !isEmail(r.Username) {
		return exceptions.User.BadRequest
	}
	if r.Password != "" && !ValidPassword(r.Password) {
		return exceptions.User.BadRequest
	}
	return nil
}

// UserListQuery filtros del listado de usuarios (query string).
type UserListQuery struct {
	Limit     int    `query:"limit"`
	Page      int    `query:"page"`
	Search    string `query:"search"`
	Document  string `query:"document"`
	Name      string `query:"name"`
	Surname   string `query:"surname"`
	Username  string `query:"username"`
	Active    *bool  `query:"active"`
	CreatedAt string `query:"created_at"`
}

// UserByRolQuery filtros del listado por rol (query string).
type UserByRolQuery struct {
	Rol    string `query:"rol"`
	Search string `query:"search"`
	Limit  *int   `query:"limit"`
	Page   *int   `query:"page"`
}
