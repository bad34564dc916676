package postgres

import (
	"context"
	"fmt"

	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// ReceiptRepo implementación PostgreSQL del log de recepciones (append-only).
type ReceiptRepo struct {
	q Querier
}

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// NewReceiptRepo crea el repositorio sobre el Querier dado.
func NewReceiptRepo(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create inserta una recepción. La columna seq (identity) rompe empates
// de received_at al listar.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	query := `INSERT INTO receipts
			(id, item_id, sku, name, quantity, previous_quantity, new_quantity,
			 received_at, created_at, received_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.ItemID, receipt.SKU, receipt.Name, receipt.Quantity,
		receipt.PreviousQuantity, receipt.NewQuantity,
		receipt.ReceivedAt, receipt.CreatedAt, nullIfEmpty(receipt.ReceivedBy),
	)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

// List devuelve todas las recepciones, más reciente primero.
func (r *ReceiptRepo) List() ([]*entity.Receipt, error) {
	query := `SELECT id, item_id, sku, name, quantity, previous_quantity, new_quantity,
			received_at, created_at, received_by
		FROM receipts
		ORDER BY received_at DESC, seq DESC`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]*entity.Receipt, 0)
	for rows.Next() {
		var rec entity.Receipt
		var receivedBy *string
		err := rows.Scan(
			&rec.ID, &rec.ItemID, &rec.SKU, &rec.Name, &rec.Quantity,
			&rec.PreviousQuantity, &rec.NewQuantity,
			&rec.ReceivedAt, &rec.CreatedAt, &receivedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		if receivedBy != nil {
			rec.ReceivedBy = *receivedBy
		}
		receipts = append(receipts, &rec)
	}
	return receipts, rows.Err()
}
