package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
	"github.com/Kentcsclass/smart-imventory/internal/application/inventory"
	"github.com/Kentcsclass/smart-imventory/internal/domain"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	m := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) Create(item *entity.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return f.GetByID(id)
}

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

var fakeSeq int64

func (f *fakeItemRepo) NextBatchSeq() (int64, error) {
	fakeSeq++
	return fakeSeq, nil
}

type fakeReceiptRepo struct {
	receipts []*entity.Receipt
}

func (f *fakeReceiptRepo) Create(r *entity.Receipt) error {
	f.receipts = append(f.receipts, r)
	return nil
}

func (f *fakeReceiptRepo) List() ([]*entity.Receipt, error) {
	// Más reciente primero: los fakes insertan en orden, así que invertimos.
	out := make([]*entity.Receipt, 0, len(f.receipts))
	for i := len(f.receipts) - 1; i >= 0; i-- {
		out = append(out, f.receipts[i])
	}
	return out, nil
}

// fakeTxRunner ejecuta fn directamente sobre los fakes (sin transacción real).
type fakeTxRunner struct {
	items    *fakeItemRepo
	receipts *fakeReceiptRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	return fn(f.items, f.receipts)
}

func newLedger(items ...*entity.Item) (*inventory.StockLedgerUseCase, *fakeItemRepo, *fakeReceiptRepo) {
	itemRepo := newFakeItemRepo(items...)
	receiptRepo := &fakeReceiptRepo{}
	uc := inventory.NewStockLedgerUseCase(&fakeTxRunner{items: itemRepo, receipts: receiptRepo}, receiptRepo)
	return uc, itemRepo, receiptRepo
}

func testItem(quantity int) *entity.Item {
	return &entity.Item{
		ID:       uuid.New().String(),
		Name:     "Café molido 500g",
		SKU:      "CAF-500",
		Quantity: quantity,
		Price:    decimal.NewFromInt(12),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_DeltaPositivoCreaReceipt(t *testing.T) {
	item := testItem(10)
	uc, _, receipts := newLedger(item)

	out, err := uc.AdjustStock(context.Background(), item.ID, dto.AdjustStockRequest{Delta: 5, ChangedBy: "ana"})
	require.NoError(t, err)

	assert.Equal(t, 15, out.Item.Quantity, "la cantidad debe subir a 15")
	require.NotNil(t, out.Receipt, "un delta positivo debe generar receipt")
	assert.Equal(t, 5, out.Receipt.Quantity)
	assert.Equal(t, 10, out.Receipt.PreviousQuantity)
	assert.Equal(t, 15, out.Receipt.NewQuantity)
	assert.Equal(t, "ana", out.Receipt.ReceivedBy)
	assert.Equal(t, item.SKU, out.Receipt.SKU, "el receipt guarda la foto del SKU")
	assert.Len(t, receipts.receipts, 1)
}

func TestAdjustStock_DeltaNegativoNoCreaReceipt(t *testing.T) {
	item := testItem(10)
	uc, _, receipts := newLedger(item)

	out, err := uc.AdjustStock(context.Background(), item.ID, dto.AdjustStockRequest{Delta: -4})
	require.NoError(t, err)

	assert.Equal(t, 6, out.Item.Quantity)
	assert.Nil(t, out.Receipt, "un delta negativo no genera receipt")
	assert.Empty(t, receipts.receipts)
}

func TestAdjustStock_DeltaCeroNoCreaReceipt(t *testing.T) {
	item := testItem(7)
	uc, _, receipts := newLedger(item)

	out, err := uc.AdjustStock(context.Background(), item.ID, dto.AdjustStockRequest{Delta: 0})
	require.NoError(t, err)

	assert.Equal(t, 7, out.Item.Quantity, "delta cero deja la cantidad igual")
	assert.Nil(t, out.Receipt)
	assert.Empty(t, receipts.receipts)
}

func TestAdjustStock_RecortaACero(t *testing.T) {
	item := testItem(3)
	uc, itemRepo, _ := newLedger(item)

	out, err := uc.AdjustStock(context.Background(), item.ID, dto.AdjustStockRequest{Delta: -10})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Item.Quantity, "la cantidad nunca baja de cero")
	stored, _ := itemRepo.GetByID(item.ID)
	assert.Equal(t, 0, stored.Quantity)
}

func TestAdjustStock_IDInvalido(t *testing.T) {
	uc, _, _ := newLedger()

	_, err := uc.AdjustStock(context.Background(), "no-es-uuid", dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestAdjustStock_ItemInexistente(t *testing.T) {
	uc, _, _ := newLedger()

	_, err := uc.AdjustStock(context.Background(), uuid.New().String(), dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveStock_CreaReceiptYActualizaItem(t *testing.T) {
	item := testItem(2)
	uc, _, _ := newLedger(item)

	out, err := uc.ReceiveStock(context.Background(), dto.ReceiveStockRequest{
		ItemID:     item.ID,
		Quantity:   8,
		ReceivedBy: "bodega",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, out.UpdatedItem.Quantity)
	assert.Equal(t, 8, out.Receipt.Quantity)
	assert.Equal(t, 2, out.Receipt.PreviousQuantity)
	assert.Equal(t, 10, out.Receipt.NewQuantity)
	assert.Equal(t, "bodega", out.Receipt.ReceivedBy)
}

func TestReceiveStock_RechazaCantidadNoPositiva(t *testing.T) {
	item := testItem(2)
	uc, _, _ := newLedger(item)

	for _, qty := range []int{0, -5} {
		_, err := uc.ReceiveStock(context.Background(), dto.ReceiveStockRequest{ItemID: item.ID, Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %d debe rechazarse", qty)
	}
}

func TestReceiveStock_RechazaItemIDVacio(t *testing.T) {
	uc, _, _ := newLedger()

	_, err := uc.ReceiveStock(context.Background(), dto.ReceiveStockRequest{Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeductForSale
// ──────────────────────────────────────────────────────────────────────────────

func TestDeductForSale_DescuentaSinReceipt(t *testing.T) {
	item := testItem(10)
	uc, itemRepo, receipts := newLedger(item)

	require.NoError(t, uc.DeductForSale(context.Background(), item.ID, 4))

	stored, _ := itemRepo.GetByID(item.ID)
	assert.Equal(t, 6, stored.Quantity)
	assert.Empty(t, receipts.receipts, "un descuento por venta no genera receipt")
}

func TestDeductForSale_RecortaACero(t *testing.T) {
	item := testItem(3)
	uc, itemRepo, _ := newLedger(item)

	require.NoError(t, uc.DeductForSale(context.Background(), item.ID, 99))

	stored, _ := itemRepo.GetByID(item.ID)
	assert.Equal(t, 0, stored.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListReceipts
// ──────────────────────────────────────────────────────────────────────────────

func TestListReceipts_MasRecientePrimero(t *testing.T) {
	item := testItem(0)
	uc, _, _ := newLedger(item)

	for i := 1; i <= 3; i++ {
		_, err := uc.ReceiveStock(context.Background(), dto.ReceiveStockRequest{ItemID: item.ID, Quantity: i})
		require.NoError(t, err)
	}

	list, err := uc.ListReceipts()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].Quantity, "el último receipt insertado sale primero")
	assert.Equal(t, 1, list[2].Quantity)
}
