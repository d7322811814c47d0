package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `w.id, w.code, w.name, w.address, w.phone, w.active, w.created_at, w.updated_at,
	c.id, c.name, c.code, c.is_active, c.department_id`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{pool: pool}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	var cityID *string
	if warehouse.City != nil {
		cityID = &warehouse.City.ID
	}
	query := `
		INSERT INTO warehouses (id, code, name, address, phone, city_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Address, warehouse.Phone,
		cityID, warehouse.Active, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		return translateError("insert warehouse", err)
	}
	return nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	var cityID, cityName, cityCode, cityDepartment *string
	var cityActive *bool
	err := row.Scan(
		&w.ID, &w.Code, &w.Name, &w.Address, &w.Phone, &w.Active, &w.CreatedAt, &w.UpdatedAt,
		&cityID, &cityName, &cityCode, &cityActive, &cityDepartment,
	)
	if err != nil {
		return nil, err
	}
	if cityID != nil {
		w.City = &entity.City{
			ID:           *cityID,
			Name:         *cityName,
			Code:         *cityCode,
			IsActive:     *cityActive,
			DepartmentID: *cityDepartment,
		}
	}
	return &w, nil
}

func (r *WarehouseRepo) selectWarehouses() squirrel.SelectBuilder {
	return builder().Select(warehouseColumns).
		From("warehouses w").
		LeftJoin("cities c ON c.id = w.city_id")
}

// warehouseListConds condiciones del listado: búsqueda general en OR sobre
// código y nombre, filtros por campo siempre en AND junto al grupo OR.
func warehouseListConds(filter repository.WarehouseFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != "" {
		term := ilike(filter.Search)
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"w.code": term},
			squirrel.ILike{"w.name": term},
		})
	}
	if filter.Code != "" {
		conds = append(conds, squirrel.Eq{"w.code": filter.Code})
	}
	if filter.Name != "" {
		conds = append(conds, squirrel.ILike{"w.name": ilike(filter.Name)})
	}
	if filter.CityID != "" {
		conds = append(conds, squirrel.Eq{"w.city_id": filter.CityID})
	}
	if filter.Active != nil {
		conds = append(conds, squirrel.Eq{"w.active": *filter.Active})
	}
	if filter.CreatedAt != "" {
		conds = append(conds, createdAtBucket("w.created_at", filter.CreatedAt))
	}
	return conds
}

// List lista bodegas según el filtro, con total sin paginar.
func (r *WarehouseRepo) List(filter repository.WarehouseFilter) ([]entity.Warehouse, int64, error) {
	conds := warehouseListConds(filter)

	total, err := r.count(conds)
	if err != nil {
		return nil, 0, err
	}

	q := r.selectWarehouses().Where(conds).OrderBy("w.created_at DESC")
	q = paginate(q, filter.Limit, filter.Page)
	items, err := r.queryWarehouses(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindBy búsqueda por igualdad sobre code, name y active; paginada sólo si
// vienen limit y page.
func (r *WarehouseRepo) FindBy(cond repository.WarehouseFindBy) ([]entity.Warehouse, int64, error) {
	conds := squirrel.And{}
	if cond.Code != nil {
		conds = append(conds, squirrel.Eq{"w.code": *cond.Code})
	}
	if cond.Name != nil {
		conds = append(conds, squirrel.Eq{"w.name": *cond.Name})
	}
	if cond.Active != nil {
		conds = append(conds, squirrel.Eq{"w.active": *cond.Active})
	}

	total, err := r.count(conds)
	if err != nil {
		return nil, 0, err
	}

	q := r.selectWarehouses().Where(conds).OrderBy("w.created_at DESC")
	if cond.Limit != nil && cond.Page != nil {
		q = paginate(q, *cond.Limit, *cond.Page)
	}
	items, err := r.queryWarehouses(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID obtiene una bodega por id con su ciudad.
func (r *WarehouseRepo) FindByID(id string) (*entity.Warehouse, error) {
	sql, args, err := r.selectWarehouses().Where(squirrel.Eq{"w.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build warehouse query: %w", err)
	}
	warehouse, err := scanWarehouse(r.pool.QueryRow(context.Background(), sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse by id: %w", err)
	}
	return warehouse, nil
}

// FindByCode obtiene una bodega por código.
func (r *WarehouseRepo) FindByCode(code string) (*entity.Warehouse, error) {
	sql, args, err := r.selectWarehouses().Where(squirrel.Eq{"w.code": code}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build warehouse query: %w", err)
	}
	warehouse, err := scanWarehouse(r.pool.QueryRow(context.Background(), sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse by code: %w", err)
	}
	return warehouse, nil
}

// ListByUser bodegas activas asignadas a un usuario.
func (r *WarehouseRepo) ListByUser(userID string) ([]entity.Warehouse, error) {
	q := r.selectWarehouses().
		Join("user_warehouse uw ON uw.warehouse_id = w.id").
		Where(squirrel.Eq{"uw.user_id": userID, "w.active": true}).
		OrderBy("w.created_at DESC")
	return r.queryWarehouses(q)
}

// Update actualiza una bodega.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	var cityID *string
	if warehouse.City != nil {
		cityID = &warehouse.City.ID
	}
	query := `
		UPDATE warehouses SET code = $2, name = $3, address = $4, phone = $5, city_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Address, warehouse.Phone,
		cityID, warehouse.UpdatedAt,
	)
	if err != nil {
		return translateError("update warehouse", err)
	}
	return nil
}

// SetActive cambia la marca de activo (baja/reactivación lógica).
func (r *WarehouseRepo) SetActive(id string, active bool) error {
	query := `UPDATE warehouses SET active = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(context.Background(), query, id, active); err != nil {
		return fmt.Errorf("set warehouse active: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) queryWarehouses(q squirrel.SelectBuilder) ([]entity.Warehouse, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build warehouses query: %w", err)
	}
	rows, err := r.pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, *w)
	}
	return list, rows.Err()
}

func (r *WarehouseRepo) count(conds squirrel.Sqlizer) (int64, error) {
	sql, args, err := builder().Select("COUNT(*)").From("warehouses w").Where(conds).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := r.pool.QueryRow(context.Background(), sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return total, nil
}
