package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/pkg/jwt"
)

// LocalUser clave de Locals donde el middleware deja el usuario autenticado.
const LocalUser = "auth_user"

// UserLoader resuelve el usuario activo de un token de sesión en cada
// petición; AuthUseCase lo implementa.
type UserLoader interface {
	User(id string) (*entity.User, error)
}

// Authenticate valida el Bearer Token, descarta tokens de recuperación y
// carga el usuario vivo del datastore en c.Locals.
func Authenticate(jwtSecret string, loader UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return exceptions.Auth.NotAuth
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return exceptions.Auth.NotAuth
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return exceptions.Auth.NotAuth
		}

		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return exceptions.Auth.NotAuth
		}
		// Un token de recuperación de contraseña no abre sesión.
		if claims.IsRecovery() {
			return exceptions.Auth.NotAuth
		}

		user, err := loader.User(claims.UserID)
		if err != nil {
			return err
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireRole autoriza la ruta a los tipos de usuario dados; sin tipos basta
// con estar autenticado.
func RequireRole(types ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return exceptions.Auth.NotAuth
		}
		if len(types) == 0 {
			return c.Next()
		}
		for _, t := range types {
			if user.Type == t {
				return c.Next()
			}
		}
		return exceptions.Auth.RolInvalid
	}
}

// GetUser devuelve el usuario autenticado del contexto (tras Authenticate).
func GetUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
