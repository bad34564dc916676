package billing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kentcsclass/smart-imventory/internal/application/billing"
	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
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
func (f *fakeItemRepo) Update(item *entity.Item) error               { f.items[item.ID] = item; return nil }

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
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeItemRepo) Count() (int, error)         { return len(f.items), nil }
func (f *fakeItemRepo) Delete(id string) error      { delete(f.items, id); return nil }
func (f *fakeItemRepo) NextBatchSeq() (int64, error) { return 1, nil }

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) List() ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(f.invoices))
	for _, inv := range f.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Update(inv *entity.Invoice, _ bool) error {
	if _, ok := f.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

type fakeBillingTxRunner struct {
	repo *fakeInvoiceRepo
}

func (f *fakeBillingTxRunner) RunBilling(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(f.repo)
}

// fakeLedger registra los descuentos de stock solicitados.
type fakeLedger struct {
	items      *fakeItemRepo
	deductions []struct {
		itemID string
		qty    int
	}
}

func (f *fakeLedger) DeductForSale(_ context.Context, itemID string, qty int) error {
	item, _ := f.items.GetByID(itemID)
	if item == nil {
		return domain.ErrNotFound
	}
	newQty := item.Quantity - qty
	if newQty < 0 {
		newQty = 0
	}
	_ = f.items.UpdateQuantity(itemID, newQty)
	f.deductions = append(f.deductions, struct {
		itemID string
		qty    int
	}{itemID, qty})
	return nil
}

func newEngine(items ...*entity.Item) (*billing.InvoiceUseCase, *fakeItemRepo, *fakeInvoiceRepo, *fakeLedger) {
	itemRepo := newFakeItemRepo(items...)
	invoiceRepo := newFakeInvoiceRepo()
	ledger := &fakeLedger{items: itemRepo}
	uc := billing.NewInvoiceUseCase(&fakeBillingTxRunner{repo: invoiceRepo}, ledger, itemRepo, invoiceRepo)
	return uc, itemRepo, invoiceRepo, ledger
}

func stockItem(qty int) *entity.Item {
	return &entity.Item{
		ID:       uuid.New().String(),
		Name:     "Arroz 1kg",
		SKU:      "ARZ-1",
		Quantity: qty,
		Price:    decimal.NewFromInt(5),
	}
}

func lineFor(item *entity.Item, qty int, price int64) dto.InvoiceLineRequest {
	return dto.InvoiceLineRequest{
		ItemID:   item.ID,
		Name:     item.Name,
		SKU:      item.SKU,
		Price:    decimal.NewFromInt(price),
		Quantity: qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_CalculaTotales(t *testing.T) {
	item := stockItem(50)
	uc, _, _, _ := newEngine(item)

	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:       "FV-001",
		DiscountRate: decimal.NewFromInt(10),
		TaxRate:      decimal.NewFromInt(8),
		Lines: []dto.InvoiceLineRequest{
			lineFor(item, 10, 10), // subtotal 100
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "100", out.Totals.Subtotal.String())
	assert.Equal(t, "10", out.Totals.DiscountAmount.String())
	assert.Equal(t, "7.2", out.Totals.TaxAmount.String())
	assert.Equal(t, "97.2", out.Totals.Total.String())
}

func TestCreateInvoice_RechazaSinNumeroOSinLineas(t *testing.T) {
	item := stockItem(5)
	uc, _, _, _ := newEngine(item)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Lines: []dto.InvoiceLineRequest{lineFor(item, 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin número debe rechazarse")

	_, err = uc.Create(context.Background(), dto.CreateInvoiceRequest{Number: "FV-002"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas debe rechazarse")
}

func TestCreateInvoice_ToleraReferenciaNoResuelta(t *testing.T) {
	uc, _, _, _ := newEngine()

	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number: "FV-003",
		Lines: []dto.InvoiceLineRequest{
			{ItemID: "no-es-uuid", Name: "Producto manual", Price: decimal.NewFromInt(3), Quantity: 2},
			{ItemID: uuid.New().String(), Name: "Ítem borrado", Price: decimal.NewFromInt(4), Quantity: 1},
		},
	})
	require.NoError(t, err, "referencias malas no bloquean la venta")

	require.Len(t, out.Lines, 2)
	assert.False(t, out.Lines[0].Resolved)
	assert.False(t, out.Lines[1].Resolved)
	assert.Equal(t, "10", out.Totals.Total.String(), "las líneas no resueltas sí suman al total")
}

func TestCreateInvoice_ApplyStockChangeDescuenta(t *testing.T) {
	item := stockItem(10)
	uc, itemRepo, _, ledger := newEngine(item)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:           "FV-004",
		ApplyStockChange: true,
		Lines:            []dto.InvoiceLineRequest{lineFor(item, 4, 5)},
	})
	require.NoError(t, err)

	stored, _ := itemRepo.GetByID(item.ID)
	assert.Equal(t, 6, stored.Quantity, "el stock debe bajar por la venta")
	require.Len(t, ledger.deductions, 1)
	assert.Equal(t, 4, ledger.deductions[0].qty)
}

func TestCreateInvoice_ApplyStockChangeSaltaNoResueltas(t *testing.T) {
	item := stockItem(10)
	uc, _, _, ledger := newEngine(item)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:           "FV-005",
		ApplyStockChange: true,
		Lines: []dto.InvoiceLineRequest{
			lineFor(item, 2, 5),
			{Name: "Sin referencia", Price: decimal.NewFromInt(1), Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, ledger.deductions, 1, "solo la línea resuelta descuenta stock")
	assert.Equal(t, item.ID, ledger.deductions[0].itemID)
}

func TestCreateInvoice_SinApplyStockChangeNoTocaStock(t *testing.T) {
	item := stockItem(10)
	uc, itemRepo, _, ledger := newEngine(item)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number: "FV-006",
		Lines:  []dto.InvoiceLineRequest{lineFor(item, 4, 5)},
	})
	require.NoError(t, err)

	stored, _ := itemRepo.GetByID(item.ID)
	assert.Equal(t, 10, stored.Quantity)
	assert.Empty(t, ledger.deductions)
}

func TestCreateInvoice_SaneaPrecioYCantidadNegativos(t *testing.T) {
	uc, _, _, _ := newEngine()

	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number: "FV-007",
		Lines: []dto.InvoiceLineRequest{
			{Name: "Raro", Price: decimal.NewFromInt(-5), Quantity: -2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "0", out.Lines[0].Price.String())
	assert.Equal(t, 0, out.Lines[0].Quantity)
	assert.Equal(t, "0", out.Totals.Total.String())
}

func TestCreateInvoice_PrintedAtVacioUsaAhora(t *testing.T) {
	item := stockItem(1)
	uc, _, _, _ := newEngine(item)

	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number: "FV-008",
		Lines:  []dto.InvoiceLineRequest{lineFor(item, 1, 1)},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.PrintedAt, "printedAt vacío cae al instante actual")
}

func TestCreateInvoice_PrintedAtConOffsetSeNormalizaAUTC(t *testing.T) {
	item := stockItem(1)
	uc, _, _, _ := newEngine(item)

	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:    "FV-009",
		PrintedAt: "2025-03-10T10:00:00-05:00",
		Lines:     []dto.InvoiceLineRequest{lineFor(item, 1, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T15:00:00", out.PrintedAt, "el offset se normaliza a UTC y se descarta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateInvoice_NuncaTocaStock(t *testing.T) {
	item := stockItem(10)
	uc, itemRepo, _, ledger := newEngine(item)

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number: "FV-010",
		Lines:  []dto.InvoiceLineRequest{lineFor(item, 2, 5)},
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		Lines: []dto.InvoiceLineRequest{lineFor(item, 50, 5)},
	})
	require.NoError(t, err)

	stored, _ := itemRepo.GetByID(item.ID)
	assert.Equal(t, 10, stored.Quantity, "editar una factura no revende: el stock no cambia")
	assert.Empty(t, ledger.deductions)
}

func TestUpdateInvoice_ParcialRecalculaTotales(t *testing.T) {
	item := stockItem(10)
	uc, _, _, _ := newEngine(item)

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number: "FV-011",
		Lines:  []dto.InvoiceLineRequest{lineFor(item, 10, 10)}, // subtotal 100
	})
	require.NoError(t, err)
	assert.Equal(t, "100", created.Totals.Total.String())

	newTax := decimal.NewFromInt(19)
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{TaxRate: &newTax})
	require.NoError(t, err)

	assert.Equal(t, "119", out.Totals.Total.String(), "el total se recalcula con la nueva tasa")
	assert.Equal(t, "FV-011", out.Number, "los campos no enviados no cambian")
}

func TestUpdateInvoice_PayloadVacioRechazado(t *testing.T) {
	uc, _, _, _ := newEngine()

	_, err := uc.Update(context.Background(), uuid.New().String(), dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateInvoice_NoExiste(t *testing.T) {
	uc, _, _, _ := newEngine()

	name := "Otro"
	_, err := uc.Update(context.Background(), uuid.New().String(), dto.UpdateInvoiceRequest{CustomerName: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInvoice_TotalesSiempreFrescos(t *testing.T) {
	item := stockItem(10)
	uc, _, invoiceRepo, _ := newEngine(item)

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:  "FV-012",
		TaxRate: decimal.NewFromInt(10),
		Lines:   []dto.InvoiceLineRequest{lineFor(item, 3, 7)}, // subtotal 21
	})
	require.NoError(t, err)

	// Mutar la tasa directamente en el repo simula datos editados por fuera:
	// la lectura debe recalcular con lo almacenado, sin totales en caché.
	stored := invoiceRepo.invoices[created.ID]
	stored.TaxRate = decimal.Zero

	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "21", out.Totals.Total.String())
}

func TestGetInvoice_IDInvalido(t *testing.T) {
	uc, _, _, _ := newEngine()

	_, err := uc.GetByID("123")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
