package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// Adaptadores de sólo lectura para los catálogos geográficos. Los listados
// devuelven únicamente registros activos ordenados por nombre.

var _ repository.CountryRepository = (*CountryRepo)(nil)
var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)
var _ repository.CityRepository = (*CityRepo)(nil)

// CountryRepo catálogo de países sobre PostgreSQL.
type CountryRepo struct {
	pool *pgxpool.Pool
}

// NewCountryRepository construye el adaptador del catálogo de países.
func NewCountryRepository(pool *pgxpool.Pool) *CountryRepo {
	return &CountryRepo{pool: pool}
}

// ListActive países activos por nombre.
func (r *CountryRepo) ListActive() ([]entity.Country, error) {
	var items []entity.Country
	query := `SELECT id, name, code, is_active FROM countries WHERE is_active = true ORDER BY name ASC`
	if err := pgxscan.Select(context.Background(), r.pool, &items, query); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return items, nil
}

// FindByID país activo por id; nil si no existe.
func (r *CountryRepo) FindByID(id string) (*entity.Country, error) {
	var item entity.Country
	query := `SELECT id, name, code, is_active FROM countries WHERE id = $1 AND is_active = true`
	if err := pgxscan.Get(context.Background(), r.pool, &item, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get country by id: %w", err)
	}
	return &item, nil
}

// DepartmentRepo catálogo de departamentos sobre PostgreSQL.
type DepartmentRepo struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository construye el adaptador del catálogo de departamentos.
func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepo {
	return &DepartmentRepo{pool: pool}
}

const departmentQuery = `SELECT id, name, code, is_active, country_id FROM departments`

// ListActive departamentos activos por nombre.
func (r *DepartmentRepo) ListActive() ([]entity.Department, error) {
	var items []entity.Department
	query := departmentQuery + ` WHERE is_active = true ORDER BY name ASC`
	if err := pgxscan.Select(context.Background(), r.pool, &items, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return items, nil
}

// FindByID departamento activo por id; nil si no existe.
func (r *DepartmentRepo) FindByID(id string) (*entity.Department, error) {
	var item entity.Department
	query := departmentQuery + ` WHERE id = $1 AND is_active = true`
	if err := pgxscan.Get(context.Background(), r.pool, &item, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department by id: %w", err)
	}
	return &item, nil
}

// ListByCountry departamentos activos de un país, por nombre.
func (r *DepartmentRepo) ListByCountry(countryID string) ([]entity.Department, error) {
	var items []entity.Department
	query := departmentQuery + ` WHERE country_id = $1 AND is_active = true ORDER BY name ASC`
	if err := pgxscan.Select(context.Background(), r.pool, &items, query, countryID); err != nil {
		return nil, fmt.Errorf("list departments by country: %w", err)
	}
	return items, nil
}

// CityRepo catálogo de ciudades sobre PostgreSQL.
type CityRepo struct {
	pool *pgxpool.Pool
}

// NewCityRepository construye el adaptador del catálogo de ciudades.
func NewCityRepository(pool *pgxpool.Pool) *CityRepo {
	return &CityRepo{pool: pool}
}

const cityQuery = `SELECT id, name, code, is_active, department_id FROM cities`

// ListActive ciudades activas por nombre.
func (r *CityRepo) ListActive() ([]entity.City, error) {
	var items []entity.City
	query := cityQuery + ` WHERE is_active = true ORDER BY name ASC`
	if err := pgxscan.Select(context.Background(), r.pool, &items, query); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return items, nil
}

// FindByID ciudad activa por id; nil si no existe.
func (r *CityRepo) FindByID(id string) (*entity.City, error) {
	var item entity.City
	query := cityQuery + ` WHERE id = $1 AND is_active = true`
	if err := pgxscan.Get(context.Background(), r.pool, &item, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city by id: %w", err)
	}
	return &item, nil
}

// ListByDepartment ciudades activas de un departamento, por nombre.
func (r *CityRepo) ListByDepartment(departmentID string) ([]entity.City, error) {
	var items []entity.City
	query := cityQuery + ` WHERE department_id = $1 AND is_active = true ORDER BY name ASC`
	if err := pgxscan.Select(context.Background(), r.pool, &items, query, departmentID); err != nil {
		return nil, fmt.Errorf("list cities by department: %w", err)
	}
	return items, nil
}
