package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/Kentcsclass/smart-imventory/internal/application/dto"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
)

// StatsUseCase proyección de solo lectura sobre los ítems para las
// tarjetas del dashboard. No persiste nada: es un fold sobre el estado vivo.
type StatsUseCase struct {
	repo repository.ItemRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.ItemRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// Compute recorre todos los ítems y acumula:
//   - totalQuantity: Σ quantity
//   - totalInventoryValue: Σ quantity × price, redondeado a 2 decimales
//   - lowStock: minStockLevel > 0 y quantity < minStockLevel (guarda nombres)
//   - uniqueCategoriesCount: categorías distintas no vacías
func (uc *StatsUseCase) Compute() (*dto.StatsResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	totalQuantity := 0
	totalValue := decimal.Zero
	lowStock := []string{}
	categories := map[string]struct{}{}

	for _, item := range items {
		totalQuantity += item.Quantity
		totalValue = totalValue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))

		if item.Category != "" {
			categories[item.Category] = struct{}{}
		}
		if item.LowStock() {
			lowStock = append(lowStock, item.Name)
		}
	}

	return &dto.StatsResponse{
		TotalQuantity:         totalQuantity,
		LowStockCount:         len(lowStock),
		LowStockItems:         lowStock,
		TotalInventoryValue:   totalValue.Round(2),
		UniqueCategoriesCount: len(categories),
	}, nil
}
