package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineRequest línea de venta entrante. Un itemId inválido o inexistente
// no bloquea la factura: la línea queda sin referencia (resolved=false).
type InvoiceLineRequest struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CreateInvoiceRequest datos para crear una factura.
// Si ApplyStockChange es true, el stock de cada línea resuelta se descuenta
// aquí; si el frontend ya descontó por escaneo, debe venir en false.
type CreateInvoiceRequest struct {
	Number           string               `json:"number"`
	PrintedAt        string               `json:"printedAt"` // ISO-8601 opcional; vacío = ahora
	CustomerName     string               `json:"customerName"`
	CustomerPhone    string               `json:"customerPhone"`
	TaxRate          decimal.Decimal      `json:"taxRate"`
	DiscountRate     decimal.Decimal      `json:"discountRate"`
	Lines            []InvoiceLineRequest `json:"lines"`
	ApplyStockChange bool                 `json:"applyStockChange"`
	CreatedBy        string               `json:"createdBy"`
}

// UpdateInvoiceRequest actualización parcial de una factura. Editar una
// factura corrige el registro, no es un nuevo evento de venta: nunca toca
// stock, ni siquiera al reemplazar líneas.
type UpdateInvoiceRequest struct {
	CustomerName  *string              `json:"customerName"`
	CustomerPhone *string              `json:"customerPhone"`
	TaxRate       *decimal.Decimal     `json:"taxRate"`
	DiscountRate  *decimal.Decimal     `json:"discountRate"`
	Lines         []InvoiceLineRequest `json:"lines"` // nil = no tocar líneas
}

// Empty indica que el payload no trae ningún campo a actualizar.
func (r UpdateInvoiceRequest) Empty() bool {
	return r.CustomerName == nil && r.CustomerPhone == nil &&
		r.TaxRate == nil && r.DiscountRate == nil && r.Lines == nil
}

// InvoiceLineResponse línea con su foto de nombre/SKU y el flag resolved,
// para que el cliente detecte referencias que no resolvieron al crear.
type InvoiceLineResponse struct {
	ItemID   string          `json:"itemId,omitempty"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Resolved bool            `json:"resolved"`
}

// TotalsResponse montos derivados, redondeados a 2 decimales.
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

// InvoiceResponse factura completa con totales recalculados en la lectura.
// PrintedAt se expone como instante naive (sin offset) en formato ISO.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	PrintedAt     string                `json:"printedAt"`
	CustomerName  string                `json:"customerName"`
	CustomerPhone string                `json:"customerPhone"`
	TaxRate       decimal.Decimal       `json:"taxRate"`
	DiscountRate  decimal.Decimal       `json:"discountRate"`
	CreatedBy     string                `json:"createdBy"`
	Lines         []InvoiceLineResponse `json:"lines"`
	Totals        TotalsResponse        `json:"totals"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
