package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, document, name, surname, username, password, type, active,
	password_change, last_password_change, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, document, name, surname, username, password, type, active,
			password_change, last_password_change, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Document, user.Name, user.Surname, user.Username, user.Password,
		user.Type, user.Active, user.PasswordChange, user.LastPasswordChange,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return translateError("insert user", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Document, &u.Name, &u.Surname, &u.Username, &u.Password, &u.Type,
		&u.Active, &u.PasswordChange, &u.LastPasswordChange, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID obtiene un usuario por id con sus bodegas asignadas.
func (r *UserRepo) FindByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if err := r.loadWarehouses([]*entity.User{user}); err != nil {
		return nil, err
	}
	return user, nil
}

// usernameCond compara el username recortado sin distinguir mayúsculas y sin
// comodines: ILIKE con el valor literal, igualdad case-insensitive.
func usernameCond(username string) squirrel.Sqlizer {
	return squirrel.ILike{"username": strings.TrimSpace(username)}
}

// FindByUsername obtiene un usuario por su correo (username). El registro se
// guarda en minúsculas, así que la comparación ignora mayúsculas.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	sql, args, err := builder().Select(userColumns).From("users").
		Where(usernameCond(username)).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}
	user, err := scanUser(r.pool.QueryRow(context.Background(), sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if err := r.loadWarehouses([]*entity.User{user}); err != nil {
		return nil, err
	}
	return user, nil
}

// userListConds condiciones del listado: la búsqueda general es un grupo OR
// sobre los campos de texto y los filtros por campo se suman en AND, estén o
// no acompañados de búsqueda.
func userListConds(filter repository.UserFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != "" {
		term := ilike(filter.Search)
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"document": term},
			squirrel.ILike{"name": term},
			squirrel.ILike{"surname": term},
			squirrel.ILike{"username": term},
		})
	}
	if filter.Document != "" {
		conds = append(conds, squirrel.Eq{"document": filter.Document})
	}
	if filter.Name != "" {
		conds = append(conds, squirrel.ILike{"name": ilike(filter.Name)})
	}
	if filter.Surname != "" {
		conds = append(conds, squirrel.ILike{"surname": ilike(filter.Surname)})
	}
	if filter.Username != "" {
		conds = append(conds, squirrel.ILike{"username": ilike(filter.Username)})
	}
	if filter.Active != nil {
		conds = append(conds, squirrel.Eq{"active": *filter.Active})
	}
	if filter.CreatedAt != "" {
		conds = append(conds, createdAtBucket("created_at", filter.CreatedAt))
	}
	return conds
}

// List lista usuarios según el filtro, con total sin paginar.
func (r *UserRepo) List(filter repository.UserFilter) ([]entity.User, int64, error) {
	conds := userListConds(filter)

	total, err := r.count("users", conds)
	if err != nil {
		return nil, 0, err
	}

	q := builder().Select(userColumns).From("users").Where(conds).OrderBy("created_at DESC")
	q = paginate(q, filter.Limit, filter.Page)
	items, err := r.queryUsers(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// userRoleConds condiciones del listado por rol: activos del tipo pedido, y
// con búsqueda un OR de ramas activo+campo ILIKE. Con rol "all" la rama de
// tipo no entra al OR, si entrara todo usuario activo calzaría y la búsqueda
// quedaría sin efecto.
func userRoleConds(filter repository.UserRoleFilter) squirrel.Sqlizer {
	base := squirrel.And{squirrel.Eq{"active": true}}
	if filter.Rol != "all" {
		base = append(base, squirrel.Eq{"type": filter.Rol})
	}
	if filter.Search == "" {
		return base
	}

	term := ilike(filter.Search)
	or := squirrel.Or{}
	if filter.Rol != "all" {
		or = append(or, base)
	}
	for _, col := range []string{"document", "name", "surname", "username"} {
		or = append(or, squirrel.And{
			squirrel.Eq{"active": true},
			squirrel.ILike{col: term},
		})
	}
	return or
}

// ListByRole lista usuarios activos del rol, con búsqueda en OR sobre los
// campos de texto. Rol "all" desactiva el filtro de tipo.
func (r *UserRepo) ListByRole(filter repository.UserRoleFilter) ([]entity.User, int64, error) {
	conds := userRoleConds(filter)

	total, err := r.count("users", conds)
	if err != nil {
		return nil, 0, err
	}

	q := builder().Select(userColumns).From("users").Where(conds).OrderBy("created_at DESC")
	if filter.Limit != nil && filter.Page != nil {
		q = paginate(q, *filter.Limit, *filter.Page)
	}
	items, err := r.queryUsers(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET document = $2, name = $3, surname = $4, username = $5, password = $6,
			type = $7, password_change = $8, last_password_change = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Document, user.Name, user.Surname, user.Username, user.Password,
		user.Type, user.PasswordChange, user.LastPasswordChange, user.UpdatedAt,
	)
	if err != nil {
		return translateError("update user", err)
	}
	return nil
}

// UpdatePassword guarda un hash de contraseña nuevo y marca la fecha de cambio.
func (r *UserRepo) UpdatePassword(id, passwordHash string) error {
	query := `
		UPDATE users SET password = $2, last_password_change = NOW(), updated_at = NOW()
		WHERE id = $1`
	if _, err := r.pool.Exec(context.Background(), query, id, passwordHash); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// SetActive cambia la marca de activo (baja/reactivación lógica).
func (r *UserRepo) SetActive(id string, active bool) error {
	query := `UPDATE users SET active = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(context.Background(), query, id, active); err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// SetWarehouses reemplaza el conjunto de bodegas asignadas al usuario en una
// sola transacción.
func (r *UserRepo) SetWarehouses(userID string, warehouseIDs []string) error {
	return withTx(r.pool, func(tx pgx.Tx) error {
		ctx := context.Background()
		if _, err := tx.Exec(ctx, `DELETE FROM user_warehouse WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear user warehouses: %w", err)
		}
		for _, warehouseID := range warehouseIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO user_warehouse (user_id, warehouse_id) VALUES ($1, $2)`,
				userID, warehouseID,
			)
			if err != nil {
				return translateError("assign user warehouse", err)
			}
		}
		return nil
	})
}

func (r *UserRepo) queryUsers(q squirrel.SelectBuilder) ([]entity.User, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}
	rows, err := r.pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []entity.User
	var refs []*entity.User
	for rows.Next() {
		var u entity.User
		err := rows.Scan(
			&u.ID, &u.Document, &u.Name, &u.Surname, &u.Username, &u.Password, &u.Type,
			&u.Active, &u.PasswordChange, &u.LastPasswordChange, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range list {
		refs = append(refs, &list[i])
	}
	if err := r.loadWarehouses(refs); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *UserRepo) count(table string, conds squirrel.Sqlizer) (int64, error) {
	sql, args, err := builder().Select("COUNT(*)").From(table).Where(conds).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := r.pool.QueryRow(context.Background(), sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// loadWarehouses carga en bloque las bodegas asignadas a los usuarios dados.
func (r *UserRepo) loadWarehouses(users []*entity.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, 0, len(users))
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
		byID[u.ID] = u
	}

	query := `
		SELECT uw.user_id, w.id, w.code, w.name, w.address, w.phone, w.active, w.created_at, w.updated_at
		FROM user_warehouse uw
		JOIN warehouses w ON w.id = uw.warehouse_id
		WHERE uw.user_id = ANY($1)
		ORDER BY w.created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load user warehouses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var w entity.Warehouse
		err := rows.Scan(&userID, &w.ID, &w.Code, &w.Name, &w.Address, &w.Phone,
			&w.Active, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return fmt.Errorf("scan user warehouse: %w", err)
		}
		if u, ok := byID[userID]; ok {
			u.Warehouses = append(u.Warehouses, w)
		}
	}
	return rows.Err()
}
