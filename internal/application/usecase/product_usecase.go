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

// ProductUseCase casos de uso CRUD para productos y sus existencias por
// bodega.
type ProductUseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewProductUseCase construye el caso de uso con los puertos de persistencia.
func NewProductUseCase(products repository.ProductRepository, users repository.UserRepository) *ProductUseCase {
	return &ProductUseCase{products: products, users: users}
}

func translateProductDup(err error) error {
	constraint, ok := domain.IsDuplicate(err)
	if !ok {
		return nil
	}
	if strings.Contains(constraint, "code") {
		return exceptions.Product.Duplicated
	}
	return exceptions.Product.DuplicatedCode
}

func quantitiesToWarehouses(productID string, quantities []dto.QuantityItem) []entity.ProductWarehouse {
	now := time.Now()
	rows := make([]entity.ProductWarehouse, 0, len(quantities))
	for _, q := range quantities {
		rows = append(rows, entity.ProductWarehouse{
			ID:        uuid.New().String(),
			ProductID: productID,
			Warehouse: &entity.Warehouse{ID: q.WarehouseID},
			Quantity:  q.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return rows
}

// Create crea un producto con sus existencias iniciales por bodega, firmado
// por el actor.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest, actor *entity.User) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Code:             strings.TrimSpace(in.Code),
		Name:             strings.TrimSpace(in.Name),
		Description:      strings.TrimSpace(in.Description),
		PackagingUnit:    strings.TrimSpace(in.PackagingUnit),
		ConversionFactor: in.ConversionFactor,
		Price:            in.Price,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if actor != nil {
		product.CreatedBy = actor
	}
	product.ProductWarehouses = quantitiesToWarehouses(product.ID, in.Quantities)

	if err := uc.products.Create(product); err != nil {
		if dup := translateProductDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.Product.ErrorSave.With(err.Error())
	}

	created, err := uc.products.FindByID(product.ID)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	return created, nil
}

// List listado filtrado y paginado.
func (uc *ProductUseCase) List(q dto.ProductListQuery, actor permission.Grant) (*dto.ListResult[entity.Product], error) {
	if actor.Empty() {
		return dto.EmptyListResult[entity.Product](), nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	items, length, err := uc.products.List(repository.ProductFilter{
		Code:          q.Code,
		Name:          q.Name,
		Description:   q.Description,
		PackagingUnit: q.PackagingUnit,
		WarehouseID:   q.Warehouse,
		Search:        q.Search,
		Active:        q.Active,
		CreatedAt:     q.CreatedAt,
		Limit:         limit,
		Page:          q.Page,
	})
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, length), nil
}

// FindOne producto por id.
func (uc *ProductUseCase) FindOne(id string) (*entity.Product, error) {
	product, err := uc.products.FindByID(id)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	if product == nil {
		return nil, exceptions.Product.NotFound
	}
	return product, nil
}

// FindOneByCode producto por código.
func (uc *ProductUseCase) FindOneByCode(code string) (*entity.Product, error) {
	product, err := uc.products.FindByCode(code)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	if product == nil {
		return nil, exceptions.Product.NotFound
	}
	return product, nil
}

// FindByUser productos de las bodegas asignadas al usuario, sin repetir
// producto y conservando el orden de llegada.
func (uc *ProductUseCase) FindByUser(userID string) (*dto.ListResult[entity.Product], error) {
	user, err := uc.users.FindByID(userID)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.User.NotFound
	}
	if len(user.Warehouses) == 0 {
		return dto.EmptyListResult[entity.Product](), nil
	}

	warehouseIDs := make([]string, 0, len(user.Warehouses))
	for _, w := range user.Warehouses {
		warehouseIDs = append(warehouseIDs, w.ID)
	}

	items, err := uc.products.ListByWarehouses(warehouseIDs)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}

	seen := make(map[string]struct{}, len(items))
	unique := make([]entity.Product, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		unique = append(unique, p)
	}
	return dto.NewListResult(unique, int64(len(unique))), nil
}

// Update actualización parcial; reemplaza existencias si vienen cantidades.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest, actor *entity.User) (*entity.Product, error) {
	product, err := uc.products.FindByID(id)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	if product == nil {
		return nil, exceptions.Product.NotFound
	}

	if in.Code != "" {
		product.Code = strings.TrimSpace(in.Code)
	}
	if in.Name != "" {
		product.Name = strings.TrimSpace(in.Name)
	}
	if in.Description != "" {
		product.Description = strings.TrimSpace(in.Description)
	}
	if in.PackagingUnit != "" {
		product.PackagingUnit = strings.TrimSpace(in.PackagingUnit)
	}
	if in.ConversionFactor != nil {
		product.ConversionFactor = *in.ConversionFactor
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if actor != nil {
		product.UpdatedBy = actor
	}

	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		if dup := translateProductDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.Product.ErrorUpdate.With(err.Error())
	}

	if in.Quantities != nil {
		rows := quantitiesToWarehouses(id, *in.Quantities)
		if err := uc.products.ReplaceQuantities(id, rows); err != nil {
			return nil, exceptions.Product.ErrorUpdate.With(err.Error())
		}
	}

	updated, err := uc.products.FindByID(id)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	return updated, nil
}

// Remove baja lógica (active=false).
func (uc *ProductUseCase) Remove(id string) (*entity.Product, error) {
	return uc.setActive(id, false)
}

// Reactivate reactiva un producto dado de baja.
func (uc *ProductUseCase) Reactivate(id string) (*entity.Product, error) {
	return uc.setActive(id, true)
}

func (uc *ProductUseCase) setActive(id string, active bool) (*entity.Product, error) {
	product, err := uc.products.FindByID(id)
	if err != nil {
		return nil, exceptions.Product.ErrorFind.With(err.Error())
	}
	if product == nil {
		return nil, exceptions.Product.NotFound
	}
	if err := uc.products.SetActive(id, active); err != nil {
		return nil, exceptions.Product.ErrorDelete.With(err.Error())
	}
	product.Active = active
	return product, nil
}
