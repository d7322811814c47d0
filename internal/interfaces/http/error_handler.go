package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/pkg/logger"
)

// errorEnvelope sobre uniforme de error: message más el mapa title -> mensajes.
type errorEnvelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// NewErrorHandler devuelve el ErrorHandler de Fiber que serializa las
// excepciones de negocio en el sobre uniforme. Cualquier error desconocido
// responde 500 INTERNAL sin filtrar detalles internos.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ex *exceptions.Exception
		if errors.As(err, &ex) {
			msgs := append([]string{ex.Message}, ex.Details...)
			return c.Status(ex.HTTPCode).JSON(errorEnvelope{
				Message: ex.Message,
				Errors:  map[string][]string{ex.Title: msgs},
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorEnvelope{
				Message: fe.Message,
				Errors:  map[string][]string{"INTERNAL": {fe.Message}},
			})
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(errorEnvelope{
			Message: "Internal server error",
			Errors:  map[string][]string{"INTERNAL": {"Internal server error"}},
		})
	}
}
