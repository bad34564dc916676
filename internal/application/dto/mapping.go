package dto

import "github.com/Kentcsclass/smart-imventory/internal/domain/entity"

// NewItemResponse mapea la entidad Item a su representación de salida.
func NewItemResponse(i *entity.Item) ItemResponse {
	var exp *string
	if i.ExpirationDate != nil {
		s := i.ExpirationDate.Format("2006-01-02")
		exp = &s
	}
	return ItemResponse{
		ID:             i.ID,
		Name:           i.Name,
		Category:       i.Category,
		Type:           i.Type,
		Quantity:       i.Quantity,
		MinStockLevel:  i.MinStockLevel,
		Price:          i.Price,
		SKU:            i.SKU,
		Description:    i.Description,
		Location:       i.Location,
		Supplier:       i.Supplier,
		ExpirationDate: exp,
		BatchNumber:    i.BatchNumber,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// NewReceiptResponse mapea la entidad Receipt a su representación de salida.
func NewReceiptResponse(r *entity.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:               r.ID,
		ItemID:           r.ItemID,
		SKU:              r.SKU,
		Name:             r.Name,
		Quantity:         r.Quantity,
		PreviousQuantity: r.PreviousQuantity,
		NewQuantity:      r.NewQuantity,
		ReceivedAt:       r.ReceivedAt,
		CreatedAt:        r.CreatedAt,
		ReceivedBy:       r.ReceivedBy,
	}
}
