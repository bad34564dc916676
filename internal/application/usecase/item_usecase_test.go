package usecase_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
	"github.com/Kentcsclass/smart-imventory/internal/application/usecase"
	"github.com/Kentcsclass/smart-imventory/internal/domain"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
)

// fakeItemRepo repositorio en memoria con secuencia de lotes propia.
type fakeItemRepo struct {
	items map[string]*entity.Item
	seq   int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (f *fakeItemRepo) Create(item *entity.Item) error { f.items[item.ID] = item; return nil }

func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) { return f.GetByID(id) }

func (f *fakeItemRepo) Update(item *entity.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) UpdateQuantity(id string, quantity int) error {
	item, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeItemRepo) List() ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(f.items))
	for _, it := range f.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeItemRepo) Count() (int, error) { return len(f.items), nil }

func (f *fakeItemRepo) Delete(id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) NextBatchSeq() (int64, error) {
	f.seq++
	return f.seq, nil
}

func newItemUC() (*usecase.ItemUseCase, *fakeItemRepo) {
	repo := newFakeItemRepo()
	return usecase.NewItemUseCase(repo), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_AsignaLoteSecuencial(t *testing.T) {
	uc, _ := newItemUC()

	first, err := uc.Create(dto.CreateItemRequest{Name: "Azúcar 1kg"})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateItemRequest{Name: "Sal 500g"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.BatchNumber, "BATCH-"), "formato BATCH-<año>-<NNN>")
	assert.True(t, strings.HasSuffix(first.BatchNumber, "-001"))
	assert.True(t, strings.HasSuffix(second.BatchNumber, "-002"))
	assert.NotEqual(t, first.BatchNumber, second.BatchNumber)
}

func TestCreateItem_NombreObligatorio(t *testing.T) {
	uc, _ := newItemUC()

	_, err := uc.Create(dto.CreateItemRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateItem_RechazaNegativos(t *testing.T) {
	uc, _ := newItemUC()

	_, err := uc.Create(dto.CreateItemRequest{Name: "X", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateItemRequest{Name: "X", Price: decimal.NewFromInt(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateItem_FechaVencimientoLenient(t *testing.T) {
	uc, _ := newItemUC()

	out, err := uc.Create(dto.CreateItemRequest{Name: "Leche", ExpirationDate: "2026-05-01"})
	require.NoError(t, err)
	require.NotNil(t, out.ExpirationDate)
	assert.Equal(t, "2026-05-01", *out.ExpirationDate)

	// Mal formada: se guarda como ausente, no bloquea el alta.
	out, err = uc.Create(dto.CreateItemRequest{Name: "Pan", ExpirationDate: "01/05/2026"})
	require.NoError(t, err)
	assert.Nil(t, out.ExpirationDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItem_ParcialNoTocaLote(t *testing.T) {
	uc, _ := newItemUC()

	created, err := uc.Create(dto.CreateItemRequest{Name: "Harina", Quantity: 5})
	require.NoError(t, err)

	name := "Harina de trigo"
	out, err := uc.Update(created.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Harina de trigo", out.Name)
	assert.Equal(t, 5, out.Quantity, "los campos no enviados no cambian")
	assert.Equal(t, created.BatchNumber, out.BatchNumber, "el lote es inmutable")
}

func TestUpdateItem_PayloadVacioRechazado(t *testing.T) {
	uc, _ := newItemUC()

	created, err := uc.Create(dto.CreateItemRequest{Name: "Huevos"})
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItem_NoExiste(t *testing.T) {
	uc, _ := newItemUC()

	name := "Nada"
	_, err := uc.Update(uuid.New().String(), dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem_IDInvalido(t *testing.T) {
	uc, _ := newItemUC()

	name := "Nada"
	_, err := uc.Update("abc", dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestListItems_BusquedaSinAcentosNiMayusculas(t *testing.T) {
	uc, _ := newItemUC()

	_, err := uc.Create(dto.CreateItemRequest{Name: "Café molido", SKU: "CAF-1", Category: "Bebidas"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateItemRequest{Name: "Té verde", SKU: "TE-1", Category: "Bebidas"})
	require.NoError(t, err)

	out, err := uc.List("cafe")
	require.NoError(t, err)
	require.Len(t, out, 1, "la búsqueda ignora acentos y mayúsculas")
	assert.Equal(t, "Café molido", out[0].Name)

	out, err = uc.List("BEBIDAS")
	require.NoError(t, err)
	assert.Len(t, out, 2, "también busca por categoría")

	out, err = uc.List("")
	require.NoError(t, err)
	assert.Len(t, out, 2, "sin filtro devuelve todo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteItem(t *testing.T) {
	uc, repo := newItemUC()

	created, err := uc.Create(dto.CreateItemRequest{Name: "Temporal"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.Empty(t, repo.items)

	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}
