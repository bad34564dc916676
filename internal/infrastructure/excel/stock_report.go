// Package excel genera el reporte de inventario en formato XLSX.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
)

const sheetName = "Inventario"

// ItemSource provee los ítems a reportar.
type ItemSource interface {
	List() ([]*entity.Item, error)
}

// StockReportExporter genera un libro XLSX con el estado actual del stock.
type StockReportExporter struct {
	items ItemSource
}

// NewStockReportExporter construye el exportador sobre la fuente de ítems.
func NewStockReportExporter(items ItemSource) *StockReportExporter {
	return &StockReportExporter{items: items}
}

// ExportItems genera el reporte del inventario completo y devuelve sus bytes.
func (e *StockReportExporter) ExportItems() ([]byte, error) {
	items, err := e.items.List()
	if err != nil {
		return nil, fmt.Errorf("excel: listar ítems: %w", err)
	}
	return e.export(items)
}

// export genera el reporte con una fila por ítem.
func (e *StockReportExporter) export(items []*entity.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Nombre", "SKU", "Categoría", "Tipo", "Cantidad", "Stock mínimo",
		"Precio", "Valor total", "Lote", "Ubicación", "Proveedor", "Vence", "Stock bajo",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de cabecera: %w", err)
		}
		f.SetCellValue(sheetName, cell, h)
	}

	for row, item := range items {
		expiration := ""
		if item.ExpirationDate != nil {
			expiration = item.ExpirationDate.Format("2006-01-02")
		}
		lowStock := ""
		if item.LowStock() {
			lowStock = "SÍ"
		}
		totalValue := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		values := []any{
			item.Name, item.SKU, item.Category, item.Type,
			item.Quantity, item.MinStockLevel,
			item.Price.InexactFloat64(), totalValue.InexactFloat64(),
			item.BatchNumber, item.Location, item.Supplier, expiration, lowStock,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("excel: celda de datos: %w", err)
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
