package repository

import "github.com/Kentcsclass/smart-imventory/internal/domain/entity"

// ReceiptRepository puerto de persistencia para el log de recepciones.
// Es append-only: no existe Update ni Delete.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	// List devuelve todas las recepciones, más reciente primero
	// (received_at descendente, empates por orden de inserción).
	List() ([]*entity.Receipt, error)
}
