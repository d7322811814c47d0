package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/application/permission"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble del puerto de líneas
// ──────────────────────────────────────────────────────────────────────────────

type fakeLineRepo struct {
	byID      map[string]*entity.InventoryLine
	byCount   map[string][]entity.InventoryLine
	listCalls []repository.InventoryLineFilter
}

func newFakeLineRepo(items ...*entity.InventoryLine) *fakeLineRepo {
	r := &fakeLineRepo{byID: map[string]*entity.InventoryLine{}, byCount: map[string][]entity.InventoryLine{}}
	for _, l := range items {
		r.byID[l.ID] = l
	}
	return r
}

func (r *fakeLineRepo) Create(line *entity.InventoryLine) error {
	clone := *line
	r.byID[line.ID] = &clone
	return nil
}

func (r *fakeLineRepo) List(filter repository.InventoryLineFilter) ([]entity.InventoryLine, int64, error) {
	r.listCalls = append(r.listCalls, filter)
	return []entity.InventoryLine{}, 0, nil
}

func (r *fakeLineRepo) ListByCount(inventoryCountID string) ([]entity.InventoryLine, error) {
	return r.byCount[inventoryCountID], nil
}

func (r *fakeLineRepo) FindByID(id string) (*entity.InventoryLine, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *l
	return &clone, nil
}

func (r *fakeLineRepo) Update(line *entity.InventoryLine) error {
	clone := *line
	r.byID[line.ID] = &clone
	return nil
}

func (r *fakeLineRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func line(id, countID, productID string) *entity.InventoryLine {
	return &entity.InventoryLine{
		ID:                id,
		InventoryCount:    &entity.InventoryCount{ID: countID},
		Product:           &entity.Product{ID: productID},
		QuantityPackaging: decimal.NewFromInt(10),
		QuantityUnits:     decimal.NewFromInt(5),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create y lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestLineCreate_Exitoso(t *testing.T) {
	repo := newFakeLineRepo()
	uc := usecase.NewInventoryLineUseCase(repo)

	created, err := uc.Create(dto.CreateInventoryLineRequest{
		InventoryCountID:  "c-1",
		ProductID:         "p-1",
		QuantityPackaging: decimal.NewFromInt(12),
		QuantityUnits:     decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "c-1", created.InventoryCount.ID)
	assert.Equal(t, "p-1", created.Product.ID)
	assert.True(t, created.QuantityPackaging.Equal(decimal.NewFromInt(12)))
}

func TestLineList_ActorSinIdentidadRespondeVacio(t *testing.T) {
	repo := newFakeLineRepo()
	uc := usecase.NewInventoryLineUseCase(repo)

	out, err := uc.List(dto.InventoryLineListQuery{}, permission.Grant{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Empty(t, repo.listCalls)
}

func TestLineList_LimitePorDefecto(t *testing.T) {
	repo := newFakeLineRepo()
	uc := usecase.NewInventoryLineUseCase(repo)

	_, err := uc.List(dto.InventoryLineListQuery{InventoryCountID: "c-1"}, adminGrant())
	require.NoError(t, err)
	require.Len(t, repo.listCalls, 1)
	assert.Equal(t, 20, repo.listCalls[0].Limit)
	assert.Equal(t, "c-1", repo.listCalls[0].InventoryCountID)
}

func TestLineFindByCount(t *testing.T) {
	repo := newFakeLineRepo()
	repo.byCount["c-1"] = []entity.InventoryLine{*line("l-1", "c-1", "p-1")}
	uc := usecase.NewInventoryLineUseCase(repo)

	out, err := uc.FindByCount("c-1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.EqualValues(t, 1, out.Length)

	out, err = uc.FindByCount("sin-lineas")
	require.NoError(t, err)
	assert.NotNil(t, out.Items, "items siempre es arreglo, nunca null")
	assert.Empty(t, out.Items)
}

func TestLineFindOne_Inexistente(t *testing.T) {
	uc := usecase.NewInventoryLineUseCase(newFakeLineRepo())

	_, err := uc.FindOne("no-existe")
	assert.ErrorIs(t, err, exceptions.InventoryLine.NotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestLineUpdate_Parcial(t *testing.T) {
	repo := newFakeLineRepo(line("l-1", "c-1", "p-1"))
	uc := usecase.NewInventoryLineUseCase(repo)

	qty := decimal.NewFromInt(42)
	updated, err := uc.Update("l-1", dto.UpdateInventoryLineRequest{QuantityUnits: &qty})
	require.NoError(t, err)

	assert.True(t, updated.QuantityUnits.Equal(decimal.NewFromInt(42)))
	assert.True(t, updated.QuantityPackaging.Equal(decimal.NewFromInt(10)), "los campos ausentes no se tocan")
	assert.Equal(t, "p-1", updated.Product.ID)
}

func TestLineUpdate_ReasignaReferencias(t *testing.T) {
	repo := newFakeLineRepo(line("l-1", "c-1", "p-1"))
	uc := usecase.NewInventoryLineUseCase(repo)

	updated, err := uc.Update("l-1", dto.UpdateInventoryLineRequest{
		InventoryCountID: "c-2",
		ProductID:        "p-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "c-2", updated.InventoryCount.ID)
	assert.Equal(t, "p-2", updated.Product.ID)
}

func TestLineRemove_DevuelveLaLineaEliminada(t *testing.T) {
	repo := newFakeLineRepo(line("l-1", "c-1", "p-1"))
	uc := usecase.NewInventoryLineUseCase(repo)

	removed, err := uc.Remove("l-1")
	require.NoError(t, err)

	assert.Equal(t, "l-1", removed.ID, "responde la línea tal como estaba antes del borrado")
	_, exists := repo.byID["l-1"]
	assert.False(t, exists, "el borrado es físico")
}

func TestLineRemove_Inexistente(t *testing.T) {
	uc := usecase.NewInventoryLineUseCase(newFakeLineRepo())

	_, err := uc.Remove("no-existe")
	assert.ErrorIs(t, err, exceptions.InventoryLine.NotFound)
}
