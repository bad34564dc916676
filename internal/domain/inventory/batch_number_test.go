package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kentcsclass/smart-imventory/internal/domain/inventory"
)

func TestFormatBatchNumber(t *testing.T) {
	assert.Equal(t, "BATCH-2025-003", inventory.FormatBatchNumber(2025, 3))
	assert.Equal(t, "BATCH-2026-001", inventory.FormatBatchNumber(2026, 1))
	// a partir del lote 1000 el ancho crece sin truncar
	assert.Equal(t, "BATCH-2025-1000", inventory.FormatBatchNumber(2025, 1000))
}
