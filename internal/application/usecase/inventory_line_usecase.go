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

// InventoryLineUseCase casos de uso de líneas de conteo de inventario.
type InventoryLineUseCase struct {
	lines repository.InventoryLineRepository
}

// NewInventoryLineUseCase construye el caso de uso con el puerto de
// persistencia.
func NewInventoryLineUseCase(lines repository.InventoryLineRepository) *InventoryLineUseCase {
	return &InventoryLineUseCase{lines: lines}
}

func translateLineDup(err error) error {
	constraint, ok := domain.IsDuplicate(err)
	if !ok {
		return nil
	}
	if strings.Contains(constraint, "code") {
		return exceptions.InventoryLine.Duplicated
	}
	return exceptions.InventoryLine.DuplicatedCode
}

// Create registra una línea de conteo y la devuelve recargada con sus
// relaciones.
func (uc *InventoryLineUseCase) Create(in dto.CreateInventoryLineRequest) (*entity.InventoryLine, error) {
	line := &entity.InventoryLine{
		ID:                uuid.New().String(),
		InventoryCount:    &entity.InventoryCount{ID: in.InventoryCountID},
		Product:           &entity.Product{ID: in.ProductID},
		QuantityPackaging: in.QuantityPackaging,
		QuantityUnits:     in.QuantityUnits,
		CreatedAt:         time.Now(),
	}

	if err := uc.lines.Create(line); err != nil {
		if dup := translateLineDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.InventoryLine.ErrorSave.With(err.Error())
	}

	created, err := uc.lines.FindByID(line.ID)
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	return created, nil
}

// List listado filtrado y paginado.
func (uc *InventoryLineUseCase) List(q dto.InventoryLineListQuery, actor permission.Grant) (*dto.ListResult[entity.InventoryLine], error) {
	if actor.Empty() {
		return dto.EmptyListResult[entity.InventoryLine](), nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	items, length, err := uc.lines.List(repository.InventoryLineFilter{
		InventoryCountID: q.InventoryCountID,
		ProductID:        q.ProductID,
		Search:           q.Search,
		CreatedAt:        q.CreatedAt,
		Limit:            limit,
		Page:             q.Page,
	})
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, length), nil
}

// FindByCount líneas de un conteo, de la más reciente a la más antigua.
func (uc *InventoryLineUseCase) FindByCount(inventoryCountID string) (*dto.ListResult[entity.InventoryLine], error) {
	items, err := uc.lines.ListByCount(inventoryCountID)
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, int64(len(items))), nil
}

// FindOne línea por id.
func (uc *InventoryLineUseCase) FindOne(id string) (*entity.InventoryLine, error) {
	line, err := uc.lines.FindByID(id)
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	if line == nil {
		return nil, exceptions.InventoryLine.NotFound
	}
	return line, nil
}

// Update actualización parcial.
func (uc *InventoryLineUseCase) Update(id string, in dto.UpdateInventoryLineRequest) (*entity.InventoryLine, error) {
	line, err := uc.lines.FindByID(id)
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	if line == nil {
		return nil, exceptions.InventoryLine.NotFound
	}

	if in.InventoryCountID != "" {
		line.InventoryCount = &entity.InventoryCount{ID: in.InventoryCountID}
	}
	if in.ProductID != "" {
		line.Product = &entity.Product{ID: in.ProductID}
	}
	if in.QuantityPackaging != nil {
		line.QuantityPackaging = *in.QuantityPackaging
	}
	if in.QuantityUnits != nil {
		line.QuantityUnits = *in.QuantityUnits
	}

	if err := uc.lines.Update(line); err != nil {
		if dup := translateLineDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.InventoryLine.ErrorUpdate.With(err.Error())
	}

	updated, err := uc.lines.FindByID(id)
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	return updated, nil
}

// Remove borrado físico; devuelve la línea eliminada.
func (uc *InventoryLineUseCase) Remove(id string) (*entity.InventoryLine, error) {
	line, err := uc.lines.FindByID(id)
	if err != nil {
		return nil, exceptions.InventoryLine.ErrorFind.With(err.Error())
	}
	if line == nil {
		return nil, exceptions.InventoryLine.NotFound
	}
	if err := uc.lines.Delete(id); err != nil {
		return nil, exceptions.InventoryLine.ErrorDelete.With(err.Error())
	}
	return line, nil
}
