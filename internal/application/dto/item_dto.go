package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Los nombres JSON son camelCase: es el contrato que consume el frontend del POS.

// CreateItemRequest datos para crear un ítem. Solo name es obligatorio;
// los campos numéricos aceptan número o string numérico (coerción de decimal).
type CreateItemRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Type           string          `json:"type"`
	Quantity       int             `json:"quantity"`
	MinStockLevel  int             `json:"minStockLevel"`
	Price          decimal.Decimal `json:"price"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	Supplier       string          `json:"supplier"`
	ExpirationDate string          `json:"expirationDate"` // YYYY-MM-DD, opcional
}

// UpdateItemRequest actualización parcial: solo los campos presentes se tocan.
// BatchNumber no aparece: es inmutable desde la creación.
type UpdateItemRequest struct {
	Name           *string          `json:"name"`
	Category       *string          `json:"category"`
	Type           *string          `json:"type"`
	Quantity       *int             `json:"quantity"`
	MinStockLevel  *int             `json:"minStockLevel"`
	Price          *decimal.Decimal `json:"price"`
	SKU            *string          `json:"sku"`
	Description    *string          `json:"description"`
	Location       *string          `json:"location"`
	Supplier       *string          `json:"supplier"`
	ExpirationDate *string          `json:"expirationDate"`
}

// Empty indica que el payload no trae ningún campo a actualizar.
func (r UpdateItemRequest) Empty() bool {
	return r.Name == nil && r.Category == nil && r.Type == nil &&
		r.Quantity == nil && r.MinStockLevel == nil && r.Price == nil &&
		r.SKU == nil && r.Description == nil && r.Location == nil &&
		r.Supplier == nil && r.ExpirationDate == nil
}

// ItemResponse representación de un ítem hacia el cliente.
type ItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Type           string          `json:"type"`
	Quantity       int             `json:"quantity"`
	MinStockLevel  int             `json:"minStockLevel"`
	Price          decimal.Decimal `json:"price"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	Supplier       string          `json:"supplier"`
	ExpirationDate *string         `json:"expirationDate"` // YYYY-MM-DD o null
	BatchNumber    string          `json:"batchNumber"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
