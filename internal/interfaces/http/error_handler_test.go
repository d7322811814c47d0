package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templra/almacen-api/internal/domain/exceptions"
	apphttp "github.com/templra/almacen-api/internal/interfaces/http"
	"github.com/templra/almacen-api/pkg/logger"
)

type envelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func appReturning(err error) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.NewErrorHandler(logger.New(logger.Config{Level: "error"})),
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return err })
	return app
}

func fetchEnvelope(t *testing.T, app *fiber.App) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_ExcepcionDeNegocio(t *testing.T) {
	status, body := fetchEnvelope(t, appReturning(exceptions.Warehouse.NotFound))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "The data not found", body.Message)
	assert.Equal(t, []string{"The data not found"}, body.Errors["[WAREHOUSE] NOT_FOUND"])
}

func TestErrorHandler_ExcepcionConDetalles(t *testing.T) {
	status, body := fetchEnvelope(t, appReturning(exceptions.User.ErrorFind.With("timeout de conexión")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, []string{"Error to find", "timeout de conexión"}, body.Errors["[USER] ERROR _FIND"])
}

func TestErrorHandler_ErrorDeFiber(t *testing.T) {
	status, body := fetchEnvelope(t, appReturning(fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed")))

	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, []string{"Method Not Allowed"}, body.Errors["INTERNAL"])
}

func TestErrorHandler_ErrorDesconocidoNoFiltraDetalles(t *testing.T) {
	status, body := fetchEnvelope(t, appReturning(errors.New("pánico interno con secretos")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, []string{"Internal server error"}, body.Errors["INTERNAL"])
	assert.NotContains(t, body.Message, "secretos")
}
