package usecase

import (
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// GeoUseCase consultas de catálogos geográficos: países, departamentos y
// ciudades. Sólo lectura.
type GeoUseCase struct {
	countries   repository.CountryRepository
	departments repository.DepartmentRepository
	cities      repository.CityRepository
}

// NewGeoUseCase construye el caso de uso con los puertos de persistencia.
func NewGeoUseCase(
	countries repository.CountryRepository,
	departments repository.DepartmentRepository,
	cities repository.CityRepository,
) *GeoUseCase {
	return &GeoUseCase{countries: countries, departments: departments, cities: cities}
}

// Countries países activos ordenados por nombre.
func (uc *GeoUseCase) Countries() ([]entity.Country, error) {
	items, err := uc.countries.ListActive()
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return items, nil
}

// Country país activo por id; nil si no existe.
func (uc *GeoUseCase) Country(id string) (*entity.Country, error) {
	item, err := uc.countries.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return item, nil
}

// Departments departamentos activos ordenados por nombre.
func (uc *GeoUseCase) Departments() ([]entity.Department, error) {
	items, err := uc.departments.ListActive()
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return items, nil
}

// Department departamento activo por id; nil si no existe.
func (uc *GeoUseCase) Department(id string) (*entity.Department, error) {
	item, err := uc.departments.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return item, nil
}

// DepartmentsByCountry departamentos activos de un país.
func (uc *GeoUseCase) DepartmentsByCountry(countryID string) ([]entity.Department, error) {
	items, err := uc.departments.ListByCountry(countryID)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return items, nil
}

// Cities ciudades activas ordenadas por nombre.
func (uc *GeoUseCase) Cities() ([]entity.City, error) {
	items, err := uc.cities.ListActive()
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return items, nil
}

// City ciudad activa por id; nil si no existe.
func (uc *GeoUseCase) City(id string) (*entity.City, error) {
	item, err := uc.cities.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return item, nil
}

// CitiesByDepartment ciudades activas de un departamento.
func (uc *GeoUseCase) CitiesByDepartment(departmentID string) ([]entity.City, error) {
	items, err := uc.cities.ListByDepartment(departmentID)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return items, nil
}
