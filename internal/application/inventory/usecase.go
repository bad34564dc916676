// Package inventory implementa el ledger de stock: el único punto por el
// que cambia la cantidad de un ítem. Todo incremento queda auditado con un
// Receipt; los decrementos (ventas, correcciones a la baja) no generan
// receipt por esta vía.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
	"github.com/Kentcsclass/smart-imventory/internal/domain"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// StockLedgerUseCase aplica deltas de cantidad con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback por operación. receiptRepo (atado
// al pool) solo se usa para lecturas del log.
type StockLedgerUseCase struct {
	txRunner    TxRunner
	receiptRepo repository.ReceiptRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner, receiptRepo repository.ReceiptRepository) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, receiptRepo: receiptRepo}
}

// AdjustStock aplica un delta con signo al ítem. La cantidad resultante se
// recorta a cero (nunca negativa). Si el delta es positivo se crea un Receipt
// en la misma transacción; con delta <= 0 no hay receipt.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, itemID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrInvalidID
	}

	item, receipt, err := uc.applyDelta(ctx, itemID, in.Delta, in.ChangedBy)
	if err != nil {
		return nil, err
	}

	out := &dto.AdjustStockResponse{Item: dto.NewItemResponse(item)}
	if receipt != nil {
		r := dto.NewReceiptResponse(receipt)
		out.Receipt = &r
	}
	return out, nil
}

// ReceiveStock registra una recepción de mercancía: requiere quantity > 0 y
// devuelve siempre el ítem actualizado junto con el receipt creado.
func (uc *StockLedgerUseCase) ReceiveStock(ctx context.Context, in dto.ReceiveStockRequest) (*dto.ReceiveStockResponse, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(in.ItemID); err != nil {
		return nil, domain.ErrInvalidID
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	item, receipt, err := uc.applyDelta(ctx, in.ItemID, in.Quantity, in.ReceivedBy)
	if err != nil {
		return nil, err
	}

	return &dto.ReceiveStockResponse{
		UpdatedItem: dto.NewItemResponse(item),
		Receipt:     dto.NewReceiptResponse(receipt),
	}, nil
}

// DeductForSale descuenta stock por una línea de factura. Variante con
// delta <= 0: recorta a cero y no emite receipt. La usa el motor de
// facturación cuando applyStockChange es true.
func (uc *StockLedgerUseCase) DeductForSale(ctx context.Context, itemID string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInvalidInput
	}
	_, _, err := uc.applyDelta(ctx, itemID, -quantity, "")
	return err
}

// applyDelta ejecuta la mutación dentro de una transacción: lee la fila
// bloqueada, calcula la nueva cantidad, la escribe y, si hubo incremento,
// inserta el receipt con la foto previa/posterior.
func (uc *StockLedgerUseCase) applyDelta(ctx context.Context, itemID string, delta int, actor string) (*entity.Item, *entity.Receipt, error) {
	var updated *entity.Item
	var receipt *entity.Receipt

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		previous := item.Quantity
		newQty := previous + delta
		if newQty < 0 {
			newQty = 0
		}
		if err := itemRepo.UpdateQuantity(itemID, newQty); err != nil {
			return err
		}
		item.Quantity = newQty

		if delta > 0 {
			now := time.Now().UTC()
			receipt = &entity.Receipt{
				ID:               uuid.New().String(),
				ItemID:           item.ID,
				SKU:              item.SKU,
				Name:             item.Name,
				Quantity:         delta,
				PreviousQuantity: previous,
				NewQuantity:      newQty,
				ReceivedAt:       now,
				CreatedAt:        now,
				ReceivedBy:       actor,
			}
			if err := receiptRepo.Create(receipt); err != nil {
				return err
			}
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, receipt, nil
}

// ListReceipts devuelve el log de recepciones, más reciente primero.
func (uc *StockLedgerUseCase) ListReceipts() ([]dto.ReceiptResponse, error) {
	list, err := uc.receiptRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewReceiptResponse(r))
	}
	return out, nil
}
