// Package billing implementa el motor de facturación: creación de facturas
// con descuento opcional de stock, edición que nunca toca stock, y totales
// recalculados en cada lectura.
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
	"github.com/Kentcsclass/smart-imventory/internal/domain"
	domainbilling "github.com/Kentcsclass/smart-imventory/internal/domain/billing"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// printedAtLayout instante naive (sin offset) para ordenar de forma estable.
const printedAtLayout = "2006-01-02T15:04:05"

// InvoiceUseCase casos de uso de facturación.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	ledger      StockDeductor
	itemRepo    repository.ItemRepository
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	ledger StockDeductor,
	itemRepo repository.ItemRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		itemRepo:    itemRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Create crea una factura. Con ApplyStockChange=true descuenta el stock de
// cada línea resuelta ANTES de insertar la factura; los descuentos van cada
// uno en su propia transacción de ítem y no se deshacen si un paso posterior
// falla (riesgo de fallo parcial documentado, no enmascarado).
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Number == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() || in.DiscountRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	invoiceID := uuid.New().String()
	lines := uc.normalizeLines(invoiceID, in.Lines)

	if in.ApplyStockChange {
		// Las líneas sin referencia resuelta se saltan en silencio: una
		// venta nunca se bloquea por un escaneo malo.
		for _, line := range lines {
			if !line.Resolved() || line.Quantity == 0 {
				continue
			}
			if err := uc.ledger.DeductForSale(ctx, line.ItemID, line.Quantity); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue // el ítem desapareció entre resolver y descontar
				}
				return nil, err
			}
		}
	}

	inv := &entity.Invoice{
		ID:            invoiceID,
		Number:        in.Number,
		PrintedAt:     parsePrintedAt(in.PrintedAt, now),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		TaxRate:       in.TaxRate,
		DiscountRate:  in.DiscountRate,
		CreatedBy:     in.CreatedBy,
		Lines:         lines,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}

	out := toInvoiceResponse(inv)
	return &out, nil
}

// Update actualización parcial: cliente, tasas y/o líneas. Reemplazar líneas
// NO mueve stock: editar una factura corrige el registro, no revende.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	if in.Empty() {
		return nil, domain.ErrInvalidInput
	}

	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.CustomerName != nil {
		inv.CustomerName = *in.CustomerName
	}
	if in.CustomerPhone != nil {
		inv.CustomerPhone = *in.CustomerPhone
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		inv.TaxRate = *in.TaxRate
	}
	if in.DiscountRate != nil {
		if in.DiscountRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		inv.DiscountRate = *in.DiscountRate
	}
	replaceLines := in.Lines != nil
	if replaceLines {
		inv.Lines = uc.normalizeLines(inv.ID, in.Lines)
	}
	inv.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.Update(inv, replaceLines)
	})
	if err != nil {
		return nil, err
	}

	out := toInvoiceResponse(inv)
	return &out, nil
}

// GetByID obtiene una factura con sus totales.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	out := toInvoiceResponse(inv)
	return &out, nil
}

// List lista todas las facturas con totales, más reciente primero.
func (uc *InvoiceUseCase) List() ([]dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// Entity devuelve la entidad cruda (para PDF y export XML).
func (uc *InvoiceUseCase) Entity(id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// normalizeLines resuelve referencias y sanea precio/cantidad. Un itemId mal
// formado o que no corresponde a un ítem existente queda como referencia
// ausente; precio/cantidad negativos caen a 0.
func (uc *InvoiceUseCase) normalizeLines(invoiceID string, in []dto.InvoiceLineRequest) []entity.InvoiceLine {
	lines := make([]entity.InvoiceLine, 0, len(in))
	for i, l := range in {
		itemID := ""
		if _, err := uuid.Parse(l.ItemID); err == nil {
			if item, err := uc.itemRepo.GetByID(l.ItemID); err == nil && item != nil {
				itemID = l.ItemID
			}
		}
		price := l.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		qty := l.Quantity
		if qty < 0 {
			qty = 0
		}
		lines = append(lines, entity.InvoiceLine{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			ItemID:    itemID,
			Name:      l.Name,
			SKU:       l.SKU,
			Price:     price,
			Quantity:  qty,
			Position:  i,
		})
	}
	return lines
}

// parsePrintedAt acepta ISO-8601 con o sin offset; el resultado se normaliza
// a UTC y se maneja como instante naive. Vacío o mal formado = ahora.
func parsePrintedAt(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(printedAtLayout, s); err == nil {
		return t
	}
	return now
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	totals := domainbilling.ComputeTotals(inv.Lines, inv.DiscountRate, inv.TaxRate)

	lines := make([]dto.InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, dto.InvoiceLineResponse{
			ItemID:   l.ItemID,
			Name:     l.Name,
			SKU:      l.SKU,
			Price:    l.Price,
			Quantity: l.Quantity,
			Resolved: l.Resolved(),
		})
	}

	return dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		PrintedAt:     inv.PrintedAt.Format(printedAtLayout),
		CustomerName:  inv.CustomerName,
		CustomerPhone: inv.CustomerPhone,
		TaxRate:       inv.TaxRate,
		DiscountRate:  inv.DiscountRate,
		CreatedBy:     inv.CreatedBy,
		Lines:         lines,
		Totals: dto.TotalsResponse{
			Subtotal:       totals.Subtotal,
			DiscountRate:   totals.DiscountRate,
			DiscountAmount: totals.DiscountAmount,
			TaxRate:        totals.TaxRate,
			TaxAmount:      totals.TaxAmount,
			Total:          totals.Total,
		},
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
