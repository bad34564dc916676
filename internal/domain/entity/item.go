package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa una unidad de inventario (SKU) con su nivel de stock actual.
// Quantity nunca es negativa: el ledger recorta a cero cualquier ajuste que
// la llevaría por debajo. BatchNumber se asigna al crear y es inmutable.
type Item struct {
	ID             string
	Name           string
	Category       string
	Type           string
	Quantity       int
	MinStockLevel  int
	Price          decimal.Decimal
	SKU            string
	Description    string
	Location       string
	Supplier       string
	ExpirationDate *time.Time // opcional; nil si no aplica
	BatchNumber    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock indica si el ítem está por debajo de su umbral mínimo.
// El umbral debe ser positivo para que la condición aplique.
func (i *Item) LowStock() bool {
	return i.MinStockLevel > 0 && i.Quantity < i.MinStockLevel
}
