package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	apphttp "github.com/templra/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/templra/almacen-api/pkg/jwt"
	"github.com/templra/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testAdminID   = "00000000-0000-0000-0000-000000000001"
	testUserID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "almacen-api-test"
	testExpMin    = 60
)

// fakeUserLoader doble del cargador de usuarios del middleware: resuelve el
// usuario vivo por id como lo haría AuthUseCase.User.
type fakeUserLoader struct {
	users map[string]*entity.User
}

func (f *fakeUserLoader) User(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok || !u.Active {
		return nil, exceptions.Auth.UserInactive
	}
	return u, nil
}

func testLoader() *fakeUserLoader {
	return &fakeUserLoader{users: map[string]*entity.User{
		testAdminID: {ID: testAdminID, Username: "admin@test.co", Type: entity.TypeAdmin, Active: true},
		testUserID:  {ID: testUserID, Username: "user@test.co", Type: entity.TypeUser, Active: true},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - Authenticate para parsear el JWT y cargar el usuario en locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(loader apphttp.UserLoader, allowedTypes ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.NewErrorHandler(logger.New(logger.Config{Level: "error"})),
	})
	app.Get("/protected",
		apphttp.Authenticate(testJWTSecret, loader),
		apphttp.RequireRole(allowedTypes...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"type": apphttp.GetUser(c).Type,
			})
		},
	)
	return app
}

// tokenFor genera un JWT de sesión para el usuario indicado.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el tipo requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, tokenFor(t, testAdminID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, entity.TypeAdmin, body["type"], "el tipo debe ser admin")
}

// Caso 1b: El usuario tiene uno de los tipos permitidos (multi-rol) → HTTP 200.
func TestRequireRole_UserAccedeRutaAdminOUser(t *testing.T) {
	app := buildTestApp(testLoader(), entity.TypeAdmin, entity.TypeUser)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"user debe poder acceder a ruta que permite admin o user")
}

// Caso 2: El usuario tiene un tipo diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"user no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "USER-ROL-INVALID",
		"la respuesta de error debe incluir la clave USER-ROL-INVALID")
}

// Caso 3: Sin tipos declarados basta con estar autenticado → HTTP 200.
func TestRequireRole_SinTiposSoloExigeSesion(t *testing.T) {
	app := buildTestApp(testLoader())
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Authenticate
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: Sin header Authorization → HTTP 401.
func TestAuthenticate_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "AUTH-NO-SIGIN",
		"la respuesta debe incluir la clave AUTH-NO-SIGIN")
}

// Caso 5: Token inválido / malformado → HTTP 401.
func TestAuthenticate_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: Token expirado → HTTP 401.
func TestAuthenticate_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado debe retornar 401")
}

// Caso 7: Un token de recuperación de contraseña no abre sesión → HTTP 401.
func TestAuthenticate_TokenDeRecuperacionNoAbreSesion(t *testing.T) {
	tok, err := pkgjwt.GenerateRecovery(testJWTSecret, testAdminID, "$2a$10$hash", "admin@test.co", testIssuer)
	require.NoError(t, err)

	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"el token de recuperación no debe servir como token de sesión")
}

// Caso 8: Usuario del token dado de baja después de emitirlo → HTTP 401.
func TestAuthenticate_UsuarioInactivoNoEntra(t *testing.T) {
	loader := testLoader()
	loader.users[testUserID].Active = false

	app := buildTestApp(loader, entity.TypeUser)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"el usuario se resuelve vivo en cada petición; inactivo no entra")
}

// Caso 9: Secret incorrecto invalida la firma → HTTP 401.
func TestAuthenticate_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testAdminID, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(testLoader(), entity.TypeAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.False(t, claims.IsRecovery(), "un token de sesión no es de recuperación")
}

func TestJWT_RecoveryLlevaCodigoYEmail(t *testing.T) {
	tok, err := pkgjwt.GenerateRecovery(testJWTSecret, testUserID, "hash-del-codigo", "user@test.co", testIssuer)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.True(t, claims.IsRecovery())
	assert.Equal(t, "hash-del-codigo", claims.Code)
	assert.Equal(t, "user@test.co", claims.Email)
}
