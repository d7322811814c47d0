package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/exceptions"
)

// UserHandler maneja el CRUD de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      201   {object}  entity.User
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.User.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := h.uc.Create(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.ListResult[entity.User]
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return exceptions.User.BadRequest
	}
	out, err := h.uc.List(q, permission.FromUser(GetUser(c)))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListByRole usuarios activos del rol pedido (rol=all devuelve todos).
func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	var q dto.UserByRolQuery
	if err := c.QueryParser(&q); err != nil {
		return exceptions.User.BadRequest
	}
	out, err := h.uc.ListByRole(q, permission.FromUser(GetUser(c)))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Profile perfil del actor autenticado.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(GetUser(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID usuario por id.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.FindOne(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetByEmail usuario por correo (username).
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.uc.FindOneByEmail(c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// ValidatePassword compara una contraseña en claro contra el hash guardado.
func (h *UserHandler) ValidatePassword(c *fiber.Ctx) error {
	ok, err := h.uc.ValidatePassword(c.Params("email"), c.Params("password"))
	if err != nil {
		return err
	}
	return c.JSON(ok)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// UpdatePassword ruta pública de cambio de contraseña: sólo toma la
// contraseña y la marca de rotación.
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *UserHandler) update(c *fiber.Ctx, passwordOnly bool) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return exceptions.User.BadRequest
	}
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := h.uc.Update(c.Params("id"), in, passwordOnly)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Remove baja lógica del usuario.
func (h *UserHandler) Remove(c *fiber.Ctx) error {
	user, err := h.uc.Remove(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Reactivate reactiva un usuario dado de baja.
func (h *UserHandler) Reactivate(c *fiber.Ctx) error {
	user, err := h.uc.Reactivate(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
