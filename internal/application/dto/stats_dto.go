package dto

import "github.com/shopspring/decimal"

// StatsResponse resumen para las tarjetas del dashboard.
type StatsResponse struct {
	TotalQuantity         int             `json:"totalQuantity"`
	LowStockCount         int             `json:"lowStockCount"`
	LowStockItems         []string        `json:"lowStockItems"` // nombres, no ids
	TotalInventoryValue   decimal.Decimal `json:"totalInventoryValue"`
	UniqueCategoriesCount int             `json:"uniqueCategoriesCount"`
}
