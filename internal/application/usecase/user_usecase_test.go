package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble del puerto de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users      map[string]*entity.User
	createErr  error
	updateErr  error
	listCalls  []repository.UserFilter
	roleCalls  []repository.UserRoleFilter
	warehouses map[string][]string
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}, warehouses: map[string][]string{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) List(filter repository.UserFilter) ([]entity.User, int64, error) {
	r.listCalls = append(r.listCalls, filter)
	return []entity.User{}, 0, nil
}

func (r *fakeUserRepo) ListByRole(filter repository.UserRoleFilter) ([]entity.User, int64, error) {
	r.roleCalls = append(r.roleCalls, filter)
	var out []entity.User
	for _, u := range r.users {
		if !u.Active {
			continue
		}
		if filter.Rol != "all" && u.Type != filter.Rol {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) FindByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error {
	if u, ok := r.users[id]; ok {
		u.Password = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) SetActive(id string, active bool) error {
	if u, ok := r.users[id]; ok {
		u.Active = active
	}
	return nil
}

func (r *fakeUserRepo) SetWarehouses(userID string, warehouseIDs []string) error {
	r.warehouses[userID] = warehouseIDs
	return nil
}

func adminGrant() permission.Grant {
	return permission.Grant{UserID: "admin-id", Type: entity.TypeAdmin, Active: true}
}

func storedUser(t *testing.T, id, username, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	surname := "Pruebas"
	return &entity.User{
		ID:       id,
		Document: "123456",
		Name:     "Usuario",
		Surname:  &surname,
		Username: username,
		Password: string(hash),
		Type:     entity.TypeUser,
		Active:   active,
	}
}

func createUser() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Document:      " 999888 ",
		Name:          " Nueva ",
		Surname:       "Persona",
		Username:      " Nueva@Test.CO ",
		Password:      "Clave-123",
		PasswordRetry: "Clave-123",
		Type:          entity.TypeAdmin,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_Exitoso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	user, err := uc.Create(createUser())
	require.NoError(t, err)

	assert.Equal(t, "999888", user.Document, "el documento se guarda sin espacios")
	assert.Equal(t, "nueva@test.co", user.Username, "el username se normaliza a minúsculas")
	assert.Equal(t, entity.TypeAdmin, user.Type)
	assert.True(t, user.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[user.ID].Password), []byte("Clave-123")))
}

func TestUserCreate_TipoInvalidoCaeAUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	in := createUser()
	in.Type = "superadmin"
	user, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, entity.TypeUser, user.Type)
}

func TestUserCreate_PasswordsNoCoinciden(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(), bcrypt.MinCost)

	in := createUser()
	in.PasswordRetry = "Otra-123"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, exceptions.User.BadRequest)
}

func TestUserCreate_AsignaBodegas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	in := createUser()
	in.Warehouses = []string{"w-1", "w-2"}
	user, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"w-1", "w-2"}, repo.warehouses[user.ID])
}

func TestUserCreate_DuplicadoPorUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = &domain.DuplicateError{Constraint: "users_username_key"}
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	_, err := uc.Create(createUser())
	assert.ErrorIs(t, err, exceptions.User.Duplicated)
}

func TestUserCreate_DuplicadoPorDocumento(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = &domain.DuplicateError{Constraint: "users_document_key"}
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	_, err := uc.Create(createUser())
	assert.ErrorIs(t, err, exceptions.User.DuplicatedCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestUserList_ActorSinIdentidadRespondeVacio(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	out, err := uc.List(dto.UserListQuery{}, permission.Grant{})
	require.NoError(t, err)

	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Zero(t, out.Length)
	assert.Empty(t, repo.listCalls, "sin identidad no se consulta el datastore")
}

func TestUserList_LimitePorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	_, err := uc.List(dto.UserListQuery{Page: 2}, adminGrant())
	require.NoError(t, err)

	require.Len(t, repo.listCalls, 1)
	assert.Equal(t, 20, repo.listCalls[0].Limit)
	assert.Equal(t, 2, repo.listCalls[0].Page)
}

func TestUserListByRole_RolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	_, err := uc.ListByRole(dto.UserByRolQuery{}, adminGrant())
	require.NoError(t, err)

	require.Len(t, repo.roleCalls, 1)
	assert.Equal(t, entity.TypeUser, repo.roleCalls[0].Rol)
}

func TestUserListByRole_AllListaTodosLosRoles(t *testing.T) {
	admin := storedUser(t, "u-1", "admin@test.co", "Clave-123", true)
	admin.Type = entity.TypeAdmin
	repo := newFakeUserRepo(
		admin,
		storedUser(t, "u-2", "user@test.co", "Clave-123", true),
	)
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	out, err := uc.ListByRole(dto.UserByRolQuery{Rol: "all"}, adminGrant())
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.EqualValues(t, 2, out.Length)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas puntuales
// ──────────────────────────────────────────────────────────────────────────────

func TestUserFindOne_Inexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(), bcrypt.MinCost)

	_, err := uc.FindOne("no-existe")
	assert.ErrorIs(t, err, exceptions.User.NotFound)
}

func TestUserValidatePassword(t *testing.T) {
	repo := newFakeUserRepo(storedUser(t, "u-1", "usuario@test.co", "Clave-123", true))
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	ok, err := uc.ValidatePassword("usuario@test.co", "Clave-123")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = uc.ValidatePassword("usuario@test.co", "incorrecta")
	assert.ErrorIs(t, err, exceptions.User.ErrorPassword)

	_, err = uc.ValidatePassword("nadie@test.co", "Clave-123")
	assert.ErrorIs(t, err, exceptions.User.NotFound)
}

func TestUserProfile_InactivoRespondeVacio(t *testing.T) {
	inactive := storedUser(t, "u-1", "usuario@test.co", "Clave-123", false)
	repo := newFakeUserRepo(inactive)
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	out, err := uc.Profile(inactive)
	require.NoError(t, err)
	assert.Empty(t, out, "el perfil de un usuario inactivo responde arreglo vacío")

	out, err = uc.Profile(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUserProfile_ActivoRespondeElUsuario(t *testing.T) {
	active := storedUser(t, "u-1", "usuario@test.co", "Clave-123", true)
	repo := newFakeUserRepo(active)
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	out, err := uc.Profile(active)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "usuario@test.co", out[0].Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUpdate_Parcial(t *testing.T) {
	repo := newFakeUserRepo(storedUser(t, "u-1", "usuario@test.co", "Clave-123", true))
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	updated, err := uc.Update("u-1", dto.UpdateUserRequest{Name: "Renombrada"}, false)
	require.NoError(t, err)

	assert.Equal(t, "Renombrada", updated.Name)
	assert.Equal(t, "usuario@test.co", updated.Username, "los campos ausentes no se tocan")
}

func TestUserUpdate_SoloPasswordIgnoraLosDemasCampos(t *testing.T) {
	repo := newFakeUserRepo(storedUser(t, "u-1", "usuario@test.co", "Clave-123", true))
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	updated, err := uc.Update("u-1", dto.UpdateUserRequest{
		Name:          "NoDebeAplicar",
		Password:      "NuevaClave-1",
		PasswordRetry: "NuevaClave-1",
	}, true)
	require.NoError(t, err)

	assert.Equal(t, "Usuario", updated.Name, "en modo password-only el nombre no cambia")
	require.NotNil(t, updated.LastPasswordChange)
	assert.WithinDuration(t, time.Now(), *updated.LastPasswordChange, time.Minute)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["u-1"].Password), []byte("NuevaClave-1")))
}

func TestUserUpdate_PasswordsNoCoinciden(t *testing.T) {
	repo := newFakeUserRepo(storedUser(t, "u-1", "usuario@test.co", "Clave-123", true))
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	_, err := uc.Update("u-1", dto.UpdateUserRequest{
		Password:      "NuevaClave-1",
		PasswordRetry: "Distinta-2",
	}, false)
	assert.ErrorIs(t, err, exceptions.User.BadRequest)
}

func TestUserUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(), bcrypt.MinCost)

	_, err := uc.Update("no-existe", dto.UpdateUserRequest{Name: "X"}, false)
	assert.ErrorIs(t, err, exceptions.User.NotFound)
}

func TestUserUpdate_BodegasVaciasEliminanAsignaciones(t *testing.T) {
	repo := newFakeUserRepo(storedUser(t, "u-1", "usuario@test.co", "Clave-123", true))
	repo.warehouses["u-1"] = []string{"w-1"}
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	empty := []string{}
	_, err := uc.Update("u-1", dto.UpdateUserRequest{Warehouses: &empty}, false)
	require.NoError(t, err)
	assert.Empty(t, repo.warehouses["u-1"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja y reactivación
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRemoveYReactivate(t *testing.T) {
	repo := newFakeUserRepo(storedUser(t, "u-1", "usuario@test.co", "Clave-123", true))
	uc := usecase.NewUserUseCase(repo, bcrypt.MinCost)

	removed, err := uc.Remove("u-1")
	require.NoError(t, err)
	assert.False(t, removed.Active)
	assert.False(t, repo.users["u-1"].Active, "la baja es lógica")

	restored, err := uc.Reactivate("u-1")
	require.NoError(t, err)
	assert.True(t, restored.Active)
	assert.True(t, repo.users["u-1"].Active)
}

func TestUserRemove_Inexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(), bcrypt.MinCost)

	_, err := uc.Remove("no-existe")
	assert.ErrorIs(t, err, exceptions.User.NotFound)
}
