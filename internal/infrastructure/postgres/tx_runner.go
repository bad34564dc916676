package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kentcsclass/smart-imventory/internal/application/billing"
	"github.com/Kentcsclass/smart-imventory/internal/application/inventory"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// TxRunner ejecuta funciones de aplicación dentro de una transacción,
// entregando repositorios atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// NewTxRunner crea un TxRunner sobre el pool dado.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con repositorios de ítems y recepciones atados a una
// transacción. Commit si fn devuelve nil; rollback en caso contrario.
func (t *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op tras commit

	if err := fn(NewItemRepo(tx), NewReceiptRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RunBilling ejecuta fn con el repositorio de facturas atado a una
// transacción: cabecera y líneas quedan completas o no quedan.
func (t *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewInvoiceRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
