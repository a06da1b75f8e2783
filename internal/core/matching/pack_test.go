package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePacksDozen(t *testing.T) {
	size, count := ComputePacks(12, "unidad", "Huevos colorados x12 (docena)")
	assert.Equal(t, 12.0, size)
	assert.Equal(t, 1, count)

	size, count = ComputePacks(18, "unidad", "Huevos colorados x12 (docena)")
	assert.Equal(t, 12.0, size)
	assert.Equal(t, 2, count)

	size, count = ComputePacks(6, "unidad", "Huevos (1/2 docena)")
	assert.Equal(t, 6.0, size)
	assert.Equal(t, 1, count)
}

func TestComputePacksKilogramAnnotation(t *testing.T) {
	// Grams against a 1kg pack: one pack covers it.
	size, count := ComputePacks(500, "gr", "Harina de Trigo 0000 (1kg)")
	assert.Equal(t, 1000.0, size)
	assert.Equal(t, 1, count)

	size, count = ComputePacks(2000, "gr", "Harina de Trigo 0000 (1kg)")
	assert.Equal(t, 1000.0, size)
	assert.Equal(t, 2, count)

	size, count = ComputePacks(1.5, "kg", "Azucar blanca (1kg)")
	assert.Equal(t, 1000.0, size)
	assert.Equal(t, 2, count)
}

func TestComputePacksUnitMismatchBuysOnePack(t *testing.T) {
	// Cup-measured flour against a kilogram pack cannot be scaled reliably.
	size, count := ComputePacks(2, "taza", "Harina de Trigo 0000 (1kg)")
	assert.Equal(t, 1000.0, size)
	assert.Equal(t, 1, count)

	size, count = ComputePacks(3, "cucharada", "Aceite de girasol (500ml)")
	assert.Equal(t, 500.0, size)
	assert.Equal(t, 1, count)
}

func TestComputePacksGramAnnotation(t *testing.T) {
	size, count := ComputePacks(300, "gr", "Manteca Conaprole (200g)")
	assert.Equal(t, 200.0, size)
	assert.Equal(t, 2, count)

	size, count = ComputePacks(150, "g", "Manteca Conaprole (200g)")
	assert.Equal(t, 200.0, size)
	assert.Equal(t, 1, count)
}

func TestComputePacksVolumeAnnotations(t *testing.T) {
	size, count := ComputePacks(750, "ml", "Aceite de girasol (500ml)")
	assert.Equal(t, 500.0, size)
	assert.Equal(t, 2, count)

	size, count = ComputePacks(2, "litro", "Leche entera (1l)")
	assert.Equal(t, 1000.0, size)
	assert.Equal(t, 2, count)

	size, count = ComputePacks(1, "litro", "Leche entera (1l)")
	assert.Equal(t, 1000.0, size)
	assert.Equal(t, 1, count)
}

func TestComputePacksNoAnnotation(t *testing.T) {
	size, count := ComputePacks(2.5, "unidad", "Tomate perita")
	assert.Equal(t, 1.0, size)
	assert.Equal(t, 3, count)

	// Never fewer than one pack.
	size, count = ComputePacks(0, "unidad", "Limón")
	assert.Equal(t, 1.0, size)
	assert.Equal(t, 1, count)
}

func TestComputePacksUnparseableAnnotation(t *testing.T) {
	size, count := ComputePacks(4, "unidad", "Queso fresco (fraccionado)")
	assert.Equal(t, 1.0, size)
	assert.Equal(t, 1, count)
}

func TestComputePacksUnrecognizedUnitAnnotation(t *testing.T) {
	// A numeric annotation with no recognized unit falls back to discrete
	// packs.
	size, count := ComputePacks(3, "unidad", "Yogur bebible (x6)")
	assert.Equal(t, 1.0, size)
	assert.Equal(t, 3, count)
}
