package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una venta con sus líneas.
// Los totales NO se persisten: se recalculan en cada lectura a partir de
// las líneas y las tasas (ver billing.ComputeTotals).
type Invoice struct {
	ID            string
	Number        string
	PrintedAt     time.Time // instante naive (sin offset) para ordenar de forma estable
	CustomerName  string
	CustomerPhone string
	TaxRate       decimal.Decimal // porcentaje, >= 0
	DiscountRate  decimal.Decimal // porcentaje, >= 0
	CreatedBy     string
	Lines         []InvoiceLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceLine es una línea de venta con foto de nombre/SKU al momento de
// facturar. ItemID vacío significa que la referencia no resolvió a un ítem
// (se tolera: una venta nunca se bloquea por un escaneo malo).
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ItemID    string // vacío = referencia ausente
	Name      string
	SKU       string
	Price     decimal.Decimal // unitario, >= 0
	Quantity  int             // >= 0
	Position  int             // orden dentro de la factura
}

// Resolved indica si la línea quedó ligada a un ítem existente al crearse.
func (l *InvoiceLine) Resolved() bool {
	return l.ItemID != ""
}
