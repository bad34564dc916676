package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
	"github.com/Kentcsclass/smart-imventory/internal/domain"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	domaininv "github.com/Kentcsclass/smart-imventory/internal/domain/inventory"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
	"github.com/Kentcsclass/smart-imventory/pkg/textutil"
)

// ItemUseCase casos de uso CRUD para ítems. La cantidad solo cambia por
// aquí en updates de campo directos (last-write-wins); los ajustes
// auditados pasan por el ledger (inventory.StockLedgerUseCase).
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem y le asigna número de lote desde la secuencia.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	seq, err := uc.repo.NextBatchSeq()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           name,
		Category:       in.Category,
		Type:           in.Type,
		Quantity:       in.Quantity,
		MinStockLevel:  in.MinStockLevel,
		Price:          in.Price,
		SKU:            in.SKU,
		Description:    in.Description,
		Location:       in.Location,
		Supplier:       in.Supplier,
		ExpirationDate: parseExpiration(in.ExpirationDate),
		BatchNumber:    domaininv.FormatBatchNumber(now.Year(), seq),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// Update aplica una actualización parcial. BatchNumber nunca cambia.
// Escribir quantity por esta vía es una corrección directa sin auditoría
// (last-write-wins); las recepciones van por el ledger.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	if in.Empty() {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Type != nil {
		item.Type = *in.Type
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.SKU != nil {
		item.SKU = *in.SKU
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.ExpirationDate != nil {
		item.ExpirationDate = parseExpiration(*in.ExpirationDate)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	out := dto.NewItemResponse(item)
	return &out, nil
}

// List lista los ítems; search filtra por nombre/SKU/categoría sin
// distinguir mayúsculas ni acentos.
func (uc *ItemUseCase) List(search string) ([]dto.ItemResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	search = strings.TrimSpace(search)

	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!textutil.ContainsFold(item.Name, search) &&
			!textutil.ContainsFold(item.SKU, search) &&
			!textutil.ContainsFold(item.Category, search) {
			continue
		}
		out = append(out, dto.NewItemResponse(item))
	}
	return out, nil
}

// Delete elimina un ítem. Los receipts y líneas de factura que lo
// referencian conservan su foto de nombre/SKU (no hay cascada).
func (uc *ItemUseCase) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return uc.repo.Delete(id)
}

// parseExpiration acepta YYYY-MM-DD; vacío o mal formado se guarda como
// ausente (la fecha de vencimiento es informativa, no bloquea el alta).
func parseExpiration(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
