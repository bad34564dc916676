package inventory

import (
	"context"

	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El ledger lo usa para que la secuencia
// leer-calcular-escribir sobre quantity sea atómica por ítem (la fila se
// bloquea con SELECT FOR UPDATE) y el receipt quede en la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		receiptRepo repository.ReceiptRepository,
	) error) error
}
