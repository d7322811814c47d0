package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/domain"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// InventoryCountUseCase casos de uso de conteos mensuales de inventario.
type InventoryCountUseCase struct {
	counts repository.InventoryCountRepository
}

// NewInventoryCountUseCase construye el caso de uso con el puerto de
// persistencia.
func NewInventoryCountUseCase(counts repository.InventoryCountRepository) *InventoryCountUseCase {
	return &InventoryCountUseCase{counts: counts}
}

func translateCountDup(err error) error {
	constraint, ok := domain.IsDuplicate(err)
	if !ok {
		return nil
	}
	if strings.Contains(constraint, "code") {
		return exceptions.InventoryCount.Duplicated
	}
	return exceptions.InventoryCount.DuplicatedCode
}

// Create abre un conteo y devuelve todos los conteos de la bodega en el mes
// de corte, ordenados por número de conteo.
func (uc *InventoryCountUseCase) Create(in dto.CreateInventoryCountRequest, actor *entity.User) ([]entity.InventoryCount, error) {
	status := true
	if in.Status != nil {
		status = *in.Status
	}
	count := &entity.InventoryCount{
		ID:          uuid.New().String(),
		Warehouse:   &entity.Warehouse{ID: in.WarehouseID},
		CutOffDate:  in.CutOffDate,
		CountNumber: in.CountNumber,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if actor != nil {
		count.CreatedBy = actor
	}

	if err := uc.counts.Create(count); err != nil {
		if dup := translateCountDup(err); dup != nil {
			return nil, dup
		}
		return nil, exceptions.InventoryCount.ErrorSave.With(err.Error())
	}

	items, err := uc.counts.ListByWarehouseMonth(in.WarehouseID, in.CutOffDate.Year(), int(in.CutOffDate.Month()))
	if err != nil {
		return nil, exceptions.InventoryCount.ErrorFind.With(err.Error())
	}
	return items, nil
}

// FindByWarehouse conteos de una bodega en el mes de la fecha recibida; sin
// fecha se toma el mes en curso. La fecha llega como query param y puede
// venir entre comillas.
func (uc *InventoryCountUseCase) FindByWarehouse(warehouseID, countDate string) (*dto.ListResult[entity.InventoryCount], error) {
	countDate = strings.Trim(strings.TrimSpace(countDate), `"'`)

	var date time.Time
	if countDate == "" {
		date = time.Now()
	} else {
		parsed, err := time.Parse(time.RFC3339, countDate)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", countDate)
		}
		if err != nil {
			return nil, exceptions.InventoryCount.BadRequest
		}
		date = parsed
	}

	items, err := uc.counts.ListByWarehouseMonth(warehouseID, date.Year(), int(date.Month()))
	if err != nil {
		return nil, exceptions.InventoryCount.ErrorFind.With(err.Error())
	}
	return dto.NewListResult(items, int64(len(items))), nil
}

// Finish cierra un conteo (status=false) y lo devuelve recargado.
func (uc *InventoryCountUseCase) Finish(id string) (*entity.InventoryCount, error) {
	count, err := uc.counts.FindByID(id)
	if err != nil {
		return nil, exceptions.InventoryCount.ErrorFind.With(err.Error())
	}
	if count == nil {
		return nil, exceptions.InventoryCount.NotFound
	}

	if err := uc.counts.SetStatus(id, false); err != nil {
		return nil, exceptions.InventoryCount.ErrorUpdate.With(err.Error())
	}

	finished, err := uc.counts.FindByID(id)
	if err != nil {
		return nil, exceptions.InventoryCount.ErrorFind.With(err.Error())
	}
	return finished, nil
}
