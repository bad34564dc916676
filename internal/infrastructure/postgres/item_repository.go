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

const itemColumns = `id, name, category, item_type, quantity, min_stock_level, price,
	sku, description, location, supplier, expiration_date, batch_number, created_at, updated_at`

// ItemRepo implementación PostgreSQL de repository.ItemRepository.
// Recibe un Querier: pool para operaciones sueltas, tx dentro del TxRunner.
type ItemRepo struct {
	q Querier
}

var _ repository.ItemRepository = (*ItemRepo)(nil)

// NewItemRepo crea el repositorio sobre el Querier dado.
func NewItemRepo(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create inserta un ítem nuevo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Type, item.Quantity,
		item.MinStockLevel, item.Price, item.SKU, item.Description,
		item.Location, item.Supplier, item.ExpirationDate, item.BatchNumber,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID busca un ítem por su id. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate busca un ítem bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene efecto dentro de una transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update reescribe los campos editables del ítem, quantity incluido
// (corrección directa last-write-wins). BatchNumber es inmutable.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `UPDATE items SET
			name = $2, category = $3, item_type = $4, quantity = $5,
			min_stock_level = $6, price = $7, sku = $8, description = $9,
			location = $10, supplier = $11, expiration_date = $12, updated_at = $13
		WHERE id = $1`

	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Type, item.Quantity,
		item.MinStockLevel, item.Price, item.SKU, item.Description,
		item.Location, item.Supplier, item.ExpirationDate, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe el nuevo nivel de stock del ítem.
func (r *ItemRepo) UpdateQuantity(id string, quantity int) error {
	query := `UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`

	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los ítems, más reciente primero.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC, id`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.Item, 0)
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count devuelve el total de ítems.
func (r *ItemRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM items`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Delete elimina un ítem. Los receipts que lo referencian se conservan.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextBatchSeq entrega el siguiente valor de la secuencia de lotes.
func (r *ItemRepo) NextBatchSeq() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('items_batch_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next batch seq: %w", err)
	}
	return seq, nil
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.Item, error) {
	item, err := r.scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func (r *ItemRepo) scan(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Type, &item.Quantity,
		&item.MinStockLevel, &item.Price, &item.SKU, &item.Description,
		&item.Location, &item.Supplier, &item.ExpirationDate, &item.BatchNumber,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &item, nil
}
