package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// Puertos de los catálogos geográficos (sólo lectura). Los listados devuelven
// únicamente registros activos ordenados por nombre.

// CountryRepository catálogo de países.
type CountryRepository interface {
	ListActive() ([]entity.Country, error)
	FindByID(id string) (*entity.Country, error)
}

// DepartmentRepository catálogo de departamentos.
type DepartmentRepository interface {
	ListActive() ([]entity.Department, error)
	FindByID(id string) (*entity.Department, error)
	ListByCountry(countryID string) ([]entity.Department, error)
}

// CityRepository catálogo de ciudades.
type CityRepository interface {
	ListActive() ([]entity.City, error)
	FindByID(id string) (*entity.City, error)
	ListByDepartment(departmentID string) ([]entity.City, error)
}
