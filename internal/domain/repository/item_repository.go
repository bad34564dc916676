package repository

import "github.com/Kentcsclass/smart-imventory/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID devuelve (nil, nil) cuando el ítem no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del ítem dentro de la transacción actual
	// (SELECT FOR UPDATE). Solo tiene sentido sobre un Querier transaccional.
	GetForUpdate(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateQuantity escribe solo el nivel de stock; la usa el ledger.
	UpdateQuantity(id string, quantity int) error
	List() ([]*entity.Item, error)
	Count() (int, error)
	Delete(id string) error
	// NextBatchSeq entrega el siguiente valor de la secuencia de lotes.
	NextBatchSeq() (int64, error)
}
