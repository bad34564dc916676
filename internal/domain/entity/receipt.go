package entity

import "time"

// Receipt es el registro inmutable de un incremento de stock. Guarda una
// foto del nombre y SKU del ítem al momento de recibir, de modo que el
// historial sigue siendo legible aunque el ítem se edite o se borre.
// Nadie actualiza ni borra receipts: el ledger es el único escritor.
type Receipt struct {
	ID               string
	ItemID           string // referencia no-propietaria; el ítem puede ya no existir
	SKU              string
	Name             string
	Quantity         int // siempre > 0
	PreviousQuantity int
	NewQuantity      int
	ReceivedAt       time.Time
	CreatedAt        time.Time
	ReceivedBy       string // etiqueta de actor opcional; vacío si no se indicó
}
