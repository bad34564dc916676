package billing

import (
	"context"

	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// BillingTxRunner ejecuta la persistencia de una factura (cabecera + líneas)
// dentro de una transacción: la factura queda completa o no queda.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// StockDeductor descuenta stock por una venta. Lo implementa el ledger
// (inventory.StockLedgerUseCase): recorta a cero y no emite receipt.
type StockDeductor interface {
	DeductForSale(ctx context.Context, itemID string, quantity int) error
}
