// Package xmlexport serializa una factura a XML para intercambio con
// sistemas contables externos.
package xmlexport

import (
	"fmt"

	"github.com/beevik/etree"

	domainbilling "github.com/Kentcsclass/smart-imventory/internal/domain/billing"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
)

const printedAtLayout = "2006-01-02T15:04:05"

// InvoiceXMLExporter construye el documento XML de una factura con etree.
type InvoiceXMLExporter struct{}

// NewInvoiceXMLExporter construye el exportador.
func NewInvoiceXMLExporter() *InvoiceXMLExporter { return &InvoiceXMLExporter{} }

// Export serializa la factura completa (cabecera, líneas y totales
// recalculados) a XML indentado.
func (e *InvoiceXMLExporter) Export(invoice *entity.Invoice) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("id", invoice.ID)

	root.CreateElement("Number").SetText(invoice.Number)
	root.CreateElement("PrintedAt").SetText(invoice.PrintedAt.Format(printedAtLayout))
	root.CreateElement("CreatedBy").SetText(invoice.CreatedBy)

	customer := root.CreateElement("Customer")
	customer.CreateElement("Name").SetText(invoice.CustomerName)
	customer.CreateElement("Phone").SetText(invoice.CustomerPhone)

	lines := root.CreateElement("Lines")
	for _, l := range invoice.Lines {
		lineEl := lines.CreateElement("Line")
		lineEl.CreateAttr("position", fmt.Sprintf("%d", l.Position))
		if l.Resolved() {
			lineEl.CreateAttr("itemId", l.ItemID)
		}
		lineEl.CreateElement("Name").SetText(l.Name)
		lineEl.CreateElement("SKU").SetText(l.SKU)
		lineEl.CreateElement("Price").SetText(l.Price.StringFixed(2))
		lineEl.CreateElement("Quantity").SetText(fmt.Sprintf("%d", l.Quantity))
	}

	t := domainbilling.ComputeTotals(invoice.Lines, invoice.DiscountRate, invoice.TaxRate)
	totals := root.CreateElement("Totals")
	totals.CreateElement("Subtotal").SetText(t.Subtotal.StringFixed(2))
	totals.CreateElement("DiscountRate").SetText(t.DiscountRate.String())
	totals.CreateElement("DiscountAmount").SetText(t.DiscountAmount.StringFixed(2))
	totals.CreateElement("TaxRate").SetText(t.TaxRate.String())
	totals.CreateElement("TaxAmount").SetText(t.TaxAmount.StringFixed(2))
	totals.CreateElement("Total").SetText(t.Total.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar factura: %w", err)
	}
	return out, nil
}
