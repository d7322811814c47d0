package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/domain"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso con el puerto de persistencia.
func NewWarehouseUseCase(warehouses repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses}
}

func translateWarehouseDup(err error) error {
	constraint, ok := domain.IsDuplicate(err)
	if !ok {
		return nil
	}
	if strings.Contains(constraint, "code") {
		return exceptions.Warehouse.Duplicated
	}
	return exceptions.Warehouse.DuplicatedCode
}

// Create crea una bodega con su ciudad de referencia opcional.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      strings.TrimSpace(in.Code),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CityID != "" {
		warehouse.City = &entity.City{ID: in.CityID}
	}

	if err := uc.warehouses.Create(warehouse); err != nil {
		if dup := translateWarehouseDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.Warehouse.ErrorSave.With(err.Error())
	}

	created, err := uc.warehouses.FindByID(warehouse.ID)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return created, nil
}

// List listado filtrado y paginado.
func (uc *WarehouseUseCase) List(q dto.WarehouseListQuery, actor permission.Grant) (*dto.ListResult[entity.Warehouse], error) {
	if actor.Empty() {
		return dto.EmptyListResult[entity.Warehouse](), nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	items, length, err := uc.warehouses.List(repository.WarehouseFilter{
		Code:      q.Code,
		Name:      q.Name,
		CityID:    q.CityID,
		Search:    q.Search,
		Active:    q.Active,
		CreatedAt: q.CreatedAt,
		Limit:     limit,
		Page:      q.Page,
	})
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, length), nil
}

// FindOne bodega por id.
func (uc *WarehouseUseCase) FindOne(id string) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouses.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	if warehouse == nil {
		return nil, exceptions.Warehouse.NotFound
	}
	return warehouse, nil
}

// FindOneByCode bodega por código.
func (uc *WarehouseUseCase) FindOneByCode(code string) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouses.FindByCode(code)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	if warehouse == nil {
		return nil, exceptions.Warehouse.NotFound
	}
	return warehouse, nil
}

// FindOneBy búsqueda por condición simple: con limit y page presentes
// responde un listado paginado, sin ellos un único registro.
func (uc *WarehouseUseCase) FindOneBy(q dto.WarehouseFindOneByQuery) (interface{}, error) {
	cond := repository.WarehouseFindBy{
		Code:   q.Code,
		Name:   q.Name,
		Active: q.Active,
	}

	if q.Limit != nil && q.Page != nil {
		cond.Limit = q.Limit
		cond.Page = q.Page
		items, length, err := uc.warehouses.FindBy(cond)
		if err != nil {
			return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
		}
		return dto.NewListResult(items, length), nil
	}

	items, _, err := uc.warehouses.FindBy(cond)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	if len(items) == 0 {
		return nil, exceptions.Warehouse.NotFound
	}
	return &items[0], nil
}

// FindByUser bodegas activas asignadas a un usuario.
func (uc *WarehouseUseCase) FindByUser(userID string) (*dto.ListResult[entity.Warehouse], error) {
	items, err := uc.warehouses.ListByUser(userID)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, int64(len(items))), nil
}

// Update actualización parcial.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouses.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	if warehouse == nil {
		return nil, exceptions.Warehouse.NotFound
	}

	if in.Code != "" {
		warehouse.Code = strings.TrimSpace(in.Code)
	}
	if in.Name != "" {
		warehouse.Name = strings.TrimSpace(in.Name)
	}
	if in.Address != nil {
		warehouse.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		warehouse.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.City != nil {
		if *in.City == "" {
			warehouse.City = nil
		} else {
			warehouse.City = &entity.City{ID: *in.City}
		}
	}

	warehouse.UpdatedAt = time.Now()
	if err := uc.warehouses.Update(warehouse); err != nil {
		if dup := translateWarehouseDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.Warehouse.ErrorUpdate.With(err.Error())
	}

	updated, err := uc.warehouses.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	return updated, nil
}

// Remove baja lógica (active=false).
func (uc *WarehouseUseCase) Remove(id string) (*entity.Warehouse, error) {
	return uc.setActive(id, false)
}

// Reactivate reactiva una bodega dada de baja.
func (uc *WarehouseUseCase) Reactivate(id string) (*entity.Warehouse, error) {
	return uc.setActive(id, true)
}

func (uc *WarehouseUseCase) setActive(id string, active bool) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouses.FindByID(id)
	if err != nil {
		return nil, exceptions.Warehouse.ErrorFind.With(err.Error())
	}
	if warehouse == nil {
		return nil, exceptions.Warehouse.NotFound
	}
	if err := uc.warehouses.SetActive(id, active); err != nil {
		return nil, exceptions.Warehouse.ErrorDelete.With(err.Error())
	}
	warehouse.Active = active
	return warehouse, nil
}
