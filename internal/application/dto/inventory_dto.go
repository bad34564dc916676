package dto

import "time"

// AdjustStockRequest ajuste manual de stock: delta con signo (puede ser 0).
type AdjustStockRequest struct {
	Delta     int    `json:"delta"`
	ChangedBy string `json:"changedBy"` // etiqueta de actor opcional
}

// ReceiveStockRequest recepción de mercancía: quantity debe ser > 0.
type ReceiveStockRequest struct {
	ItemID     string `json:"itemId"`
	Quantity   int    `json:"quantity"`
	ReceivedBy string `json:"receivedBy"`
}

// ReceiptResponse registro de recepción hacia el cliente.
type ReceiptResponse struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"itemId"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previousQuantity"`
	NewQuantity      int       `json:"newQuantity"`
	ReceivedAt       time.Time `json:"receivedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	ReceivedBy       string    `json:"receivedBy,omitempty"`
}

// AdjustStockResponse ítem actualizado; receipt solo si el delta fue positivo.
type AdjustStockResponse struct {
	Item    ItemResponse     `json:"item"`
	Receipt *ReceiptResponse `json:"receipt,omitempty"`
}

// ReceiveStockResponse respuesta de la recepción: ítem + receipt creados.
type ReceiveStockResponse struct {
	UpdatedItem ItemResponse    `json:"updatedItem"`
	Receipt     ReceiptResponse `json:"receipt"`
}
