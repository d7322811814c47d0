package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/domain"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// UserUseCase casos de uso CRUD para usuarios.
type UserUseCase struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(users repository.UserRepository, bcryptCost int) *UserUseCase {
	return &UserUseCase{users: users, bcryptCost: bcryptCost}
}

// translateUserDup mapea la violación de unicidad según el constraint: el de
// username es duplicated, el de documento es duplicatedCode.
func translateUserDup(err error) error {
	constraint, ok := domain.IsDuplicate(err)
	if !ok {
		return nil
	}
	if strings.Contains(constraint, "username") {
		return exceptions.User.Duplicated
	}
	return exceptions.User.DuplicatedCode
}

// Create crea un usuario con su contraseña hasheada y asigna bodegas si
// vienen en la petición.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*entity.User, error) {
	if in.Password != in.PasswordRetry {
		return nil, exceptions.User.BadRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, exceptions.User.ErrorSave.With(err.Error())
	}

	userType := in.Type
	if userType != entity.TypeAdmin && userType != entity.TypeUser {
		userType = entity.TypeUser
	}

	surname := strings.TrimSpace(in.Surname)
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Document:  strings.TrimSpace(in.Document),
		Name:      strings.TrimSpace(in.Name),
		Surname:   &surname,
		Username:  strings.ToLower(strings.TrimSpace(in.Username)),
		Password:  string(hash),
		Type:      userType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(user); err != nil {
		if dup := translateUserDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.User.ErrorSave.With(err.Error())
	}

	if len(in.Warehouses) > 0 {
		if err := uc.users.SetWarehouses(user.ID, in.Warehouses); err != nil {
			return nil, exceptions.User.ErrorSave.With(err.Error())
		}
	}

	created, err := uc.users.FindByID(user.ID)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	return created, nil
}

// List listado filtrado y paginado.
func (uc *UserUseCase) List(q dto.UserListQuery, actor permission.Grant) (*dto.ListResult[entity.User], error) {
	if actor.Empty() {
		return dto.EmptyListResult[entity.User](), nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	items, length, err := uc.users.List(repository.UserFilter{
		Document:  q.Document,
		Name:      q.Name,
		Surname:   q.Surname,
		Username:  q.Username,
		Search:    q.Search,
		Active:    q.Active,
		CreatedAt: q.CreatedAt,
		Limit:     limit,
		Page:      q.Page,
	})
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, length), nil
}

// ListByRole listado de usuarios activos por rol; "all" devuelve todos los
// roles.
func (uc *UserUseCase) ListByRole(q dto.UserByRolQuery, actor permission.Grant) (*dto.ListResult[entity.User], error) {
	if actor.Empty() {
		return dto.EmptyListResult[entity.User](), nil
	}

	rol := q.Rol
	if rol == "" {
		rol = entity.TypeUser
	}
	items, length, err := uc.users.ListByRole(repository.UserRoleFilter{
		Rol:    rol,
		Search: q.Search,
		Limit:  q.Limit,
		Page:   q.Page,
	})
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, length), nil
}

// FindOne usuario por id.
func (uc *UserUseCase) FindOne(id string) (*entity.User, error) {
	user, err := uc.users.FindByID(id)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.User.NotFound
	}
	return user, nil
}

// FindOneByEmail usuario por correo (username).
func (uc *UserUseCase) FindOneByEmail(email string) (*entity.User, error) {
	user, err := uc.users.FindByUsername(email)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.User.NotFound
	}
	return user, nil
}

// ValidatePassword compara una contraseña en claro contra el hash del
// usuario.
func (uc *UserUseCase) ValidatePassword(email, password string) (bool, error) {
	user, err := uc.users.FindByUsername(email)
	if err != nil {
		return false, exceptions.User.ErrorFind.With(err.Error())
	}
	if user == nil {
		return false, exceptions.User.NotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return false, exceptions.User.ErrorPassword
	}
	return true, nil
}

// Profile perfil del actor autenticado; responde como listado (arreglo),
// vacío si el usuario ya no está activo.
func (uc *UserUseCase) Profile(actor *entity.User) ([]entity.User, error) {
	if actor == nil {
		return []entity.User{}, nil
	}
	user, err := uc.users.FindByID(actor.ID)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	if user == nil || !user.Active {
		return []entity.User{}, nil
	}
	return []entity.User{*user}, nil
}

// Update actualización parcial. Con passwordOnly sólo se toman la contraseña
// y password_change (la ruta pública de cambio de contraseña).
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest, passwordOnly bool) (*entity.User, error) {
	user, err := uc.users.FindByID(id)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.User.NotFound
	}

	if !passwordOnly {
		if in.Name != "" {
			user.Name = in.Name
		}
		if in.Type != "" {
			user.Type = in.Type
		}
		if in.Document != "" {
			user.Document = in.Document
		}
		if in.Surname != "" {
			surname := in.Surname
			user.Surname = &surname
		}
		if in.Username != "" {
			user.Username = strings.ToLower(strings.TrimSpace(in.Username))
		}
	}
	if in.PasswordChange != nil {
		user.PasswordChange = *in.PasswordChange
	}

	if in.Password != "" {
		if in.Password != in.PasswordRetry {
			return nil, exceptions.User.BadRequest
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
		if err != nil {
			return nil, exceptions.User.ErrorUpdate.With(err.Error())
		}
		user.Password = string(hash)
		now := time.Now()
		user.LastPasswordChange = &now
	}

	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		if dup := translateUserDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.User.ErrorUpdate.With(err.Error())
	}

	if in.Warehouses != nil {
		if err := uc.users.SetWarehouses(id, *in.Warehouses); err != nil {
			return nil, exceptions.User.ErrorUpdate.With(err.Error())
		}
	}

	updated, err := uc.users.FindByID(id)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	return updated, nil
}

// Remove baja lógica (active=false).
func (uc *UserUseCase) Remove(id string) (*entity.User, error) {
	return uc.setActive(id, false)
}

// Reactivate reactiva un usuario dado de baja.
func (uc *UserUseCase) Reactivate(id string) (*entity.User, error) {
	return uc.setActive(id, true)
}

func (uc *UserUseCase) setActive(id string, active bool) (*entity.User, error) {
	user, err := uc.users.FindByID(id)
	if err != nil {
		return nil, exceptions.User.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.User.NotFound
	}
	if err := uc.users.SetActive(id, active); err != nil {
		return nil, exceptions.User.ErrorDelete.With(err.Error())
	}
	user.Active = active
	return user, nil
}
