// Package billing contiene la lógica pura de totales de factura.
// Es una función del estado almacenado (líneas + tasas), así que los totales
// nunca quedan obsoletos: se recalculan en cada lectura.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals montos derivados de una factura, redondeados a 2 decimales.
// Orden de aplicación: subtotal -> descuento -> impuesto.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals calcula los totales de la factura:
//
//	subtotal       = Σ(price × quantity)
//	discountAmount = subtotal × discountRate/100
//	afterDiscount  = max(0, subtotal − discountAmount)
//	taxAmount      = afterDiscount × taxRate/100
//	total          = afterDiscount + taxAmount
func ComputeTotals(lines []entity.InvoiceLine, discountRate, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	discountAmount := subtotal.Mul(discountRate).Div(hundred)
	afterDiscount := subtotal.Sub(discountAmount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}
	taxAmount := afterDiscount.Mul(taxRate).Div(hundred)
	total := afterDiscount.Add(taxAmount)

	return Totals{
		Subtotal:       subtotal.Round(2),
		DiscountRate:   discountRate,
		DiscountAmount: discountAmount.Round(2),
		TaxRate:        taxRate,
		TaxAmount:      taxAmount.Round(2),
		Total:          total.Round(2),
	}
}
