package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/auth"
	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// AuthHandler maneja login, registro, recuperación de contraseña y OTP.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password, captcha"
// @Success      200   {object}  dto.LoginResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Auth.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "code, name, surname, username, password"
// @Success      201   {object}  entity.User
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Auth.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := h.uc.Register(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// RecoveryPassword godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Router       /api/auth/recovery/password [post]
func (h *AuthHandler) RecoveryPassword(c *fiber.Ctx) error {
	var in dto.RecoveryPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Auth.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	out, err := h.uc.RecoveryPassword(in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RecoveryPasswordChange godoc
// @Summary      Cambiar contraseña con token de recuperación
// @Tags         auth
// @Router       /api/auth/recovery/password/change [post]
func (h *AuthHandler) RecoveryPasswordChange(c *fiber.Ctx) error {
	var in dto.RecoveryPasswordChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.Auth.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	ok, err := h.uc.RecoveryPasswordChange(in)
	if err != nil {
		return err
	}
	return c.JSON(ok)
}

// Valid devuelve el usuario autenticado; sirve para validar el token.
func (h *AuthHandler) Valid(c *fiber.Ctx) error {
	return c.JSON(GetUser(c))
}

// SendCode reenvía al proveedor externo la generación de un OTP; el cuerpo
// del proveedor se devuelve tal cual.
func (h *AuthHandler) SendCode(c *fiber.Ctx) error {
	raw, err := h.uc.SendCode(c.Params("email"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// ValidateCode verifica un OTP contra el proveedor externo.
func (h *AuthHandler) ValidateCode(c *fiber.Ctx) error {
	raw, err := h.uc.ValidateCode(c.Params("email"), c.Params("code"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}
