package repository

import "github.com/Kentcsclass/smart-imventory/internal/domain/entity"

// InvoiceRepository puerto de persistencia para facturas con sus líneas.
// GetByID devuelve (nil, nil) cuando la factura no existe.
type InvoiceRepository interface {
	// Create inserta cabecera y líneas. Usar dentro de una transacción
	// (vía TxRunner) para que la factura quede completa o no quede.
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// List devuelve todas las facturas con líneas, printed_at descendente.
	List() ([]*entity.Invoice, error)
	// Update reescribe la cabecera y, si invoice.Lines no es nil, reemplaza
	// las líneas completas. Nunca toca stock.
	Update(invoice *entity.Invoice, replaceLines bool) error
}
