package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Kentcsclass/smart-imventory/internal/domain"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

const invoiceColumns = `id, number, printed_at, customer_name, customer_phone,
	discount_rate, tax_rate, created_by, created_at, updated_at`

// InvoiceRepo implementación PostgreSQL de repository.InvoiceRepository.
type InvoiceRepo struct {
	q Querier
}

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// NewInvoiceRepo crea el repositorio sobre el Querier dado.
func NewInvoiceRepo(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta cabecera y líneas. Usar dentro de una transacción.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.PrintedAt,
		invoice.CustomerName, invoice.CustomerPhone,
		invoice.DiscountRate, invoice.TaxRate, invoice.CreatedBy,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return r.insertLines(invoice.ID, invoice.Lines)
}

// GetByID busca una factura con sus líneas. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := r.scanHeader(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	lines, err := r.linesFor([]string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Lines = lines[inv.ID]
	return inv, nil
}

// List devuelve todas las facturas con líneas, printed_at descendente.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY printed_at DESC, created_at DESC`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*entity.Invoice, 0)
	ids := make([]string, 0)
	for rows.Next() {
		inv, err := r.scanHeader(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	lines, err := r.linesFor(ids)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		inv.Lines = lines[inv.ID]
	}
	return invoices, nil
}

// Update reescribe la cabecera y, si replaceLines, reemplaza las líneas.
func (r *InvoiceRepo) Update(invoice *entity.Invoice, replaceLines bool) error {
	query := `UPDATE invoices SET
			number = $2, printed_at = $3, customer_name = $4, customer_phone = $5,
			discount_rate = $6, tax_rate = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.PrintedAt,
		invoice.CustomerName, invoice.CustomerPhone,
		invoice.DiscountRate, invoice.TaxRate, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if !replaceLines {
		return nil
	}
	_, err = r.q.Exec(context.Background(),
		`DELETE FROM invoice_lines WHERE invoice_id = $1`, invoice.ID)
	if err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return r.insertLines(invoice.ID, invoice.Lines)
}

func (r *InvoiceRepo) insertLines(invoiceID string, lines []entity.InvoiceLine) error {
	query := `INSERT INTO invoice_lines
			(id, invoice_id, item_id, name, sku, price, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, line := range lines {
		_, err := r.q.Exec(context.Background(), query,
			line.ID, invoiceID, nullIfEmpty(line.ItemID),
			line.Name, line.SKU, line.Price, line.Quantity, line.Position,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

// linesFor carga las líneas de un conjunto de facturas, agrupadas por id.
func (r *InvoiceRepo) linesFor(invoiceIDs []string) (map[string][]entity.InvoiceLine, error) {
	query := `SELECT id, invoice_id, item_id, name, sku, price, quantity, position
		FROM invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position`

	rows, err := r.q.Query(context.Background(), query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	byInvoice := make(map[string][]entity.InvoiceLine, len(invoiceIDs))
	for rows.Next() {
		var line entity.InvoiceLine
		var itemID *string
		err := rows.Scan(
			&line.ID, &line.InvoiceID, &itemID,
			&line.Name, &line.SKU, &line.Price, &line.Quantity, &line.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		if itemID != nil {
			line.ItemID = *itemID
		}
		byInvoice[line.InvoiceID] = append(byInvoice[line.InvoiceID], line)
	}
	return byInvoice, rows.Err()
}

func (r *InvoiceRepo) scanHeader(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.PrintedAt,
		&inv.CustomerName, &inv.CustomerPhone,
		&inv.DiscountRate, &inv.TaxRate, &inv.CreatedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}
