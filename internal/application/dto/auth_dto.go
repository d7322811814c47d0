package dto

import (
	"net/mail"

	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// LoginRequest credenciales de inicio de sesión más el token de captcha.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

// Validate campos obligatorios del login.
func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return exceptions.Auth.BadRequest
	}
	return nil
}

// LoginUser proyección del usuario que viaja en la respuesta del login.
type LoginUser struct {
	Username string  `json:"username"`
	Surname  *string `json:"surname"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ID       string  `json:"id"`
}

// LoginResponse token de sesión más la proyección del usuario.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// RegisterRequest alta de usuario desde el módulo de auth. Code es el
// documento de identidad.
type RegisterRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	PasswordRetry string `json:"password_retry"`
}

// Validate campos obligatorios y username con forma de correo.
func (r *RegisterRequest) Validate() error {
	if r.Code == "" || r.Name == "" || r.Surname == "" || r.Username == "" ||
		r.Password == "" || r.PasswordRetry == "" {
		return exceptions.Auth.BadRequest
	}
	if !isEmail(r.Username) {
		return exceptions.Auth.BadRequest
	}
	return nil
}

// RecoveryPasswordRequest solicitud de recuperación de contraseña.
type RecoveryPasswordRequest struct {
	Username string `json:"username"`
}

// Validate campo obligatorio.
func (r *RecoveryPasswordRequest) Validate() error {
	if r.Username == "" {
		return exceptions.Auth.BadRequest
	}
	return nil
}

// RecoveryPasswordResponse token de recuperación con el código embebido.
type RecoveryPasswordResponse struct {
	Token string `json:"token"`
}

// RecoveryPasswordChangeRequest cambio de contraseña con el token de
// recuperación y el código recibido por correo.
type RecoveryPasswordChangeRequest struct {
	Token          string `json:"token"`
	Code           string `json:"code"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"password_repeat"`
}

// Validate obligatorios y longitud 5–50 de las contraseñas.
func (r *RecoveryPasswordChangeRequest) Validate() error {
	if r.Token == "" || r.Code == "" {
		return exceptions.Auth.BadRequest
	}
	if len(r.Password) < 5 || len(r.Password) > 50 {
		return exceptions.Auth.BadRequest
	}
	if len(r.PasswordRepeat) < 5 || len(r.PasswordRepeat) > 50 {
		return exceptions.Auth.BadRequest
	}
	return nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
