package auth_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/templra/almacen-api/internal/application/auth"
	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/domain"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
	"github.com/templra/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID       map[string]*entity.User
	byUsername map[string]*entity.User
	createErr  error
	passwords  map[string]string // id -> último hash guardado con UpdatePassword
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byID:       map[string]*entity.User{},
		byUsername: map[string]*entity.User{},
		passwords:  map[string]string{},
	}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byUsername[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeUserRepo) List(repository.UserFilter) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ListByRole(repository.UserRoleFilter) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) FindByID(id string) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	return r.byUsername[username], nil
}

func (r *fakeUserRepo) Update(user *entity.User) error { return nil }

func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error {
	r.passwords[id] = passwordHash
	return nil
}

func (r *fakeUserRepo) SetActive(id string, active bool) error { return nil }
func (r *fakeUserRepo) SetWarehouses(userID string, ids []string) error { return nil }

type fakeAuditRepo struct {
	entries []entity.LoginAudit
	err     error
}

func (r *fakeAuditRepo) Create(audit *entity.LoginAudit) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *audit)
	return nil
}

type fakeCaptcha struct {
	ok     bool
	err    error
	tokens []string
}

func (c *fakeCaptcha) Verify(token string) (bool, error) {
	c.tokens = append(c.tokens, token)
	return c.ok, c.err
}

type fakeOTP struct {
	sentTo    []string
	validated [][2]string
}

func (o *fakeOTP) Send(email string) (json.RawMessage, error) {
	o.sentTo = append(o.sentTo, email)
	return json.RawMessage(`{"success":true}`), nil
}

func (o *fakeOTP) Validate(email, code string) (json.RawMessage, error) {
	o.validated = append(o.validated, [2]string{email, code})
	return json.RawMessage(`{"valid":true}`), nil
}

type fakeEmail struct {
	to         string
	templateID string
	params     map[string]string
	err        error
}

func (e *fakeEmail) Send(to, templateID string, params map[string]string) error {
	if e.err != nil {
		return e.err
	}
	e.to = to
	e.templateID = templateID
	e.params = params
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	fixtureID       = "11111111-1111-1111-1111-111111111111"
	fixtureUsername = "usuario@test.co"
	fixturePassword = "Clave-123"
)

type fixture struct {
	uc      *auth.AuthUseCase
	users   *fakeUserRepo
	audits  *fakeAuditRepo
	captcha *fakeCaptcha
	otp     *fakeOTP
	email   *fakeEmail
}

func activeUser(t *testing.T) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(fixturePassword), bcrypt.MinCost)
	require.NoError(t, err)
	surname := "Pruebas"
	return &entity.User{
		ID:       fixtureID,
		Document: "123456",
		Name:     "Usuario",
		Surname:  &surname,
		Username: fixtureUsername,
		Password: string(hash),
		Type:     entity.TypeUser,
		Active:   true,
	}
}

func newFixture(t *testing.T, users ...*entity.User) *fixture {
	t.Helper()
	f := &fixture{
		users:   newFakeUserRepo(users...),
		audits:  &fakeAuditRepo{},
		captcha: &fakeCaptcha{ok: true},
		otp:     &fakeOTP{},
		email:   &fakeEmail{},
	}
	f.uc = auth.NewAuthUseCase(
		f.users, f.audits, f.captcha, f.otp, f.email,
		auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "almacen-api-test"},
		bcrypt.MinCost,
		"d-template-recovery",
		logger.New(logger.Config{Level: "error"}),
	)
	return f
}

func login(captcha string) dto.LoginRequest {
	return dto.LoginRequest{Username: fixtureUsername, Password: fixturePassword, Captcha: captcha}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	f := newFixture(t, activeUser(t))

	out, err := f.uc.Login(login("captcha-ok"))
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, fixtureID, out.User.ID)
	assert.Equal(t, fixtureUsername, out.User.Username)
	assert.Equal(t, entity.TypeUser, out.User.Type)

	require.Len(t, f.audits.entries, 1, "el login exitoso deja auditoría")
	assert.Equal(t, fixtureUsername, f.audits.entries[0].Username)
	assert.Equal(t, []string{"captcha-ok"}, f.captcha.tokens)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(login("captcha-ok"))
	assert.ErrorIs(t, err, exceptions.Auth.NotAuth)
	assert.Empty(t, f.audits.entries)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	u := activeUser(t)
	u.Active = false
	f := newFixture(t, u)

	_, err := f.uc.Login(login("captcha-ok"))
	assert.ErrorIs(t, err, exceptions.Auth.UserInactive)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	f := newFixture(t, activeUser(t))

	in := login("captcha-ok")
	in.Password = "otra-clave"
	_, err := f.uc.Login(in)
	assert.ErrorIs(t, err, exceptions.Auth.NotAuth)
	assert.Empty(t, f.audits.entries)
}

func TestLogin_PasswordVencida(t *testing.T) {
	u := activeUser(t)
	u.PasswordChange = true
	old := time.Now().AddDate(0, 0, -31)
	u.LastPasswordChange = &old
	f := newFixture(t, u)

	_, err := f.uc.Login(login("captcha-ok"))
	assert.ErrorIs(t, err, exceptions.Auth.PasswordExpired)
}

func TestLogin_PasswordRecienteNoVence(t *testing.T) {
	u := activeUser(t)
	u.PasswordChange = true
	recent := time.Now().AddDate(0, 0, -5)
	u.LastPasswordChange = &recent
	f := newFixture(t, u)

	_, err := f.uc.Login(login("captcha-ok"))
	assert.NoError(t, err)
}

func TestLogin_SinCaptcha(t *testing.T) {
	f := newFixture(t, activeUser(t))

	_, err := f.uc.Login(login(""))
	assert.ErrorIs(t, err, exceptions.Auth.NotCaptcha)
	assert.Empty(t, f.captcha.tokens, "con captcha vacío no se consulta al verificador")
	assert.Empty(t, f.audits.entries)
}

func TestLogin_CaptchaRechazado(t *testing.T) {
	f := newFixture(t, activeUser(t))
	f.captcha.ok = false

	_, err := f.uc.Login(login("captcha-malo"))
	assert.ErrorIs(t, err, exceptions.Auth.NotCaptcha)
	assert.Empty(t, f.audits.entries)
}

func TestLogin_FalloDeAuditoriaNoBloquea(t *testing.T) {
	f := newFixture(t, activeUser(t))
	f.audits.err = errors.New("datastore caído")

	out, err := f.uc.Login(login("captcha-ok"))
	require.NoError(t, err, "la auditoría no bloquea el login")
	assert.NotEmpty(t, out.Token)
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func register() dto.RegisterRequest {
	return dto.RegisterRequest{
		Code:          "654321",
		Name:          "Nuevo",
		Surname:       "Usuario",
		Username:      "nuevo@test.co",
		Password:      "Clave-123",
		PasswordRetry: "Clave-123",
	}
}

func TestRegister_Exitoso(t *testing.T) {
	f := newFixture(t)

	user, err := f.uc.Register(register())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "654321", user.Document, "el campo code es el documento")
	assert.Equal(t, "nuevo@test.co", user.Username)
	assert.Equal(t, entity.TypeUser, user.Type, "el registro asigna el rol por defecto")
	assert.True(t, user.Active)
	assert.NotEqual(t, "Clave-123", user.Password, "la contraseña se guarda hasheada")
}

func TestRegister_PasswordsNoCoinciden(t *testing.T) {
	f := newFixture(t)

	in := register()
	in.PasswordRetry = "Otra-123"
	_, err := f.uc.Register(in)
	assert.ErrorIs(t, err, exceptions.Auth.BadRequest)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	f := newFixture(t)
	f.users.createErr = &domain.DuplicateError{Constraint: "users_username_key"}

	_, err := f.uc.Register(register())
	assert.ErrorIs(t, err, exceptions.Auth.Duplicated)
}

func TestRegister_DocumentoDuplicado(t *testing.T) {
	f := newFixture(t)
	f.users.createErr = &domain.DuplicateError{Constraint: "users_document_key"}

	_, err := f.uc.Register(register())
	assert.ErrorIs(t, err, exceptions.Auth.DuplicatedCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestRecoveryPassword_RoundTrip(t *testing.T) {
	f := newFixture(t, activeUser(t))

	out, err := f.uc.RecoveryPassword(dto.RecoveryPasswordRequest{Username: fixtureUsername})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	// El código viaja por correo; el token sólo lleva el hash.
	assert.Equal(t, fixtureUsername, f.email.to)
	assert.Equal(t, "d-template-recovery", f.email.templateID)
	code := f.email.params["code"]
	require.Len(t, code, 4, "el código es de cuatro dígitos")

	ok, err := f.uc.RecoveryPasswordChange(dto.RecoveryPasswordChangeRequest{
		Token:          out.Token,
		Code:           code,
		Password:       "NuevaClave-1",
		PasswordRepeat: "NuevaClave-1",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	hash, saved := f.users.passwords[fixtureID]
	require.True(t, saved, "debe guardarse la contraseña nueva")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("NuevaClave-1")))
}

func TestRecoveryPassword_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecoveryPassword(dto.RecoveryPasswordRequest{Username: "nadie@test.co"})
	assert.ErrorIs(t, err, exceptions.Auth.NotAuth)
}

func TestRecoveryPasswordChange_CodigoIncorrecto(t *testing.T) {
	f := newFixture(t, activeUser(t))

	out, err := f.uc.RecoveryPassword(dto.RecoveryPasswordRequest{Username: fixtureUsername})
	require.NoError(t, err)

	_, err = f.uc.RecoveryPasswordChange(dto.RecoveryPasswordChangeRequest{
		Token:          out.Token,
		Code:           "0000",
		Password:       "NuevaClave-1",
		PasswordRepeat: "NuevaClave-1",
	})
	assert.ErrorIs(t, err, exceptions.Auth.NotAuth)
}

func TestRecoveryPasswordChange_PasswordsNoCoinciden(t *testing.T) {
	f := newFixture(t, activeUser(t))

	out, err := f.uc.RecoveryPassword(dto.RecoveryPasswordRequest{Username: fixtureUsername})
	require.NoError(t, err)

	_, err = f.uc.RecoveryPasswordChange(dto.RecoveryPasswordChangeRequest{
		Token:          out.Token,
		Code:           f.email.params["code"],
		Password:       "NuevaClave-1",
		PasswordRepeat: "Distinta-2",
	})
	assert.ErrorIs(t, err, exceptions.Auth.BadRequest)
}

func TestRecoveryPasswordChange_TokenInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecoveryPasswordChange(dto.RecoveryPasswordChangeRequest{
		Token:          "token.invalido",
		Code:           "1234",
		Password:       "NuevaClave-1",
		PasswordRepeat: "NuevaClave-1",
	})
	assert.ErrorIs(t, err, exceptions.Auth.NotAuth)
}

// ──────────────────────────────────────────────────────────────────────────────
// User — resolución del usuario vivo del token
// ──────────────────────────────────────────────────────────────────────────────

func TestUser_Activo(t *testing.T) {
	f := newFixture(t, activeUser(t))

	user, err := f.uc.User(fixtureID)
	require.NoError(t, err)
	assert.Equal(t, fixtureUsername, user.Username)
}

func TestUser_InexistenteOInactivo(t *testing.T) {
	inactive := activeUser(t)
	inactive.Active = false
	f := newFixture(t, inactive)

	_, err := f.uc.User("no-existe")
	assert.ErrorIs(t, err, exceptions.Auth.UserInactive)

	_, err = f.uc.User(fixtureID)
	assert.ErrorIs(t, err, exceptions.Auth.UserInactive)
}

// ──────────────────────────────────────────────────────────────────────────────
// OTP — delegación al proveedor externo
// ──────────────────────────────────────────────────────────────────────────────

func TestSendCode_DelegaAlProveedor(t *testing.T) {
	f := newFixture(t)

	raw, err := f.uc.SendCode("usuario@test.co")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))
	assert.Equal(t, []string{"usuario@test.co"}, f.otp.sentTo)
}

func TestValidateCode_DelegaAlProveedor(t *testing.T) {
	f := newFixture(t)

	raw, err := f.uc.ValidateCode("usuario@test.co", "9876")
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true}`, string(raw))
	assert.Equal(t, [][2]string{{"usuario@test.co", "9876"}}, f.otp.validated)
}
