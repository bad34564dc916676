// Package inventory contiene lógica pura del ledger de inventario.
package inventory

import "fmt"

// FormatBatchNumber produce la etiqueta de lote BATCH-<año>-<NNN>.
// seq viene de una secuencia propia de la base de datos, no del conteo vivo
// de ítems: dos creaciones concurrentes nunca compiten por el mismo número.
// NNN se rellena con ceros a 3 dígitos y crece libremente a partir de 999.
func FormatBatchNumber(year int, seq int64) string {
	return fmt.Sprintf("BATCH-%d-%03d", year, seq)
}
