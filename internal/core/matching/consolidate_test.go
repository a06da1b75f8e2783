package matching

import (
	"testing"

	"chef-virtual/internal/pkg/common"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(name string, unitPrice int64, packCount int) common.OrderLine {
	price := decimal.NewFromInt(unitPrice)
	return common.OrderLine{
		ProductName: name,
		UnitPrice:   price,
		PackSize:    1,
		PackCount:   packCount,
		LineTotal:   price.Mul(decimal.NewFromInt(int64(packCount))),
	}
}

func TestConsolidateMergesDuplicates(t *testing.T) {
	lines := Consolidate([]common.OrderLine{
		line("Huevos colorados x12 (docena)", 150, 1),
		line("Harina de Trigo 0000 (1kg)", 80, 2),
		line("Huevos colorados x12 (docena)", 150, 2),
	})

	require.Len(t, lines, 2)
	assert.Equal(t, "Huevos colorados x12 (docena)", lines[0].ProductName)
	assert.Equal(t, 3, lines[0].PackCount)
	assert.True(t, lines[0].LineTotal.Equal(decimal.NewFromInt(450)))

	assert.Equal(t, "Harina de Trigo 0000 (1kg)", lines[1].ProductName)
	assert.Equal(t, 2, lines[1].PackCount)
}

func TestConsolidateRecomputesFromUnitPrice(t *testing.T) {
	// Stale per-line totals must not survive a merge.
	a := line("Manteca Conaprole (200g)", 95, 1)
	b := line("Manteca Conaprole (200g)", 95, 1)
	b.LineTotal = decimal.NewFromInt(999)

	lines := Consolidate([]common.OrderLine{a, b})
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].PackCount)
	assert.True(t, lines[0].LineTotal.Equal(decimal.NewFromInt(190)))
}

func TestConsolidatePreservesFirstSeenOrder(t *testing.T) {
	lines := Consolidate([]common.OrderLine{
		line("Sal fina (500g)", 28, 1),
		line("Azucar blanca (1kg)", 70, 1),
		line("Sal fina (500g)", 28, 1),
		line("Leche entera (1l)", 55, 1),
	})

	require.Len(t, lines, 3)
	assert.Equal(t, "Sal fina (500g)", lines[0].ProductName)
	assert.Equal(t, "Azucar blanca (1kg)", lines[1].ProductName)
	assert.Equal(t, "Leche entera (1l)", lines[2].ProductName)
}

func TestConsolidateIdempotent(t *testing.T) {
	once := Consolidate([]common.OrderLine{
		line("Sal fina (500g)", 28, 1),
		line("Sal fina (500g)", 28, 2),
	})
	twice := Consolidate(once)
	assert.Equal(t, once, twice)
}

func TestConsolidateShortInputsUntouched(t *testing.T) {
	assert.Nil(t, Consolidate(nil))

	single := []common.OrderLine{line("Sal fina (500g)", 28, 1)}
	assert.Equal(t, single, Consolidate(single))
}
