package pipeline

import (
	"strings"
	"testing"

	"chef-virtual/internal/core/matching"
	"chef-virtual/internal/pkg/common"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []common.Product {
	price := func(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
	return []common.Product{
		{Name: "Huevos colorados x12 (docena)", Retailer: "disco", Price: price(150), ID: "d-1"},
		{Name: "Huevos colorados x12 (docena)", Retailer: "tienda_inglesa", Price: price(160), ID: "t-1"},
		{Name: "Harina de Trigo 0000 (1kg)", Retailer: "disco", Price: price(80), ID: "d-2"},
		{Name: "Harina de Trigo 0000 (1kg)", Retailer: "tienda_inglesa", Price: price(75), ID: "t-2"},
		{Name: "Manteca Conaprole (200g)", Retailer: "disco", Price: price(95), ID: "d-3"},
	}
}

const testRecipe = `Ingredientes:
- 3 huevos
- 500 gr de harina
- 100 gr de manteca
- 1 rama de apio

Preparación:
1. Mezclar todo.`

func newTestService() *Service {
	return NewService(matching.NewResolver(0))
}

func TestResolveBuildsPerRetailerOrders(t *testing.T) {
	result := newTestService().Resolve(testRecipe, testCatalog())
	require.NotNil(t, result)

	assert.Equal(t, testRecipe, result.RecipeText)
	assert.Len(t, result.Ingredients, 4)

	disco := result.Orders[common.RetailerDisco]
	require.NotNil(t, disco)
	// Eggs, flour and butter resolve; the celery stick does not.
	require.Len(t, disco.Lines, 3)

	eggs := disco.Lines[0]
	assert.Equal(t, "Huevos colorados x12 (docena)", eggs.ProductName)
	assert.Equal(t, 12.0, eggs.PackSize)
	assert.Equal(t, 1, eggs.PackCount)
	assert.Equal(t, "d-1", eggs.CatalogID)

	flour := disco.Lines[1]
	assert.Equal(t, "Harina de Trigo 0000 (1kg)", flour.ProductName)
	assert.Equal(t, 1000.0, flour.PackSize)
	assert.Equal(t, 1, flour.PackCount)

	// Butter is only listed at Disco.
	ti := result.Orders[common.RetailerTiendaInglesa]
	require.NotNil(t, ti)
	assert.Len(t, ti.Lines, 2)
}

func TestResolveLineTotalsAndOrderTotals(t *testing.T) {
	result := newTestService().Resolve(testRecipe, testCatalog())

	for _, retailer := range common.Retailers {
		order := result.Orders[retailer]
		require.NotNil(t, order)

		expected := decimal.Zero
		for _, l := range order.Lines {
			want := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.PackCount)))
			assert.True(t, l.LineTotal.Equal(want),
				"line total for %s must equal unit price times pack count", l.ProductName)
			expected = expected.Add(l.LineTotal)
		}
		assert.True(t, order.Total.Equal(expected))
	}
}

func TestResolveConsolidatesDuplicateIngredients(t *testing.T) {
	recipe := `Ingredientes:
- 3 huevos
- 2 huevos`

	result := newTestService().Resolve(recipe, testCatalog())
	disco := result.Orders[common.RetailerDisco]
	require.Len(t, disco.Lines, 1)

	// 3 + 2 eggs still fits in one dozen each time, so two packs merge.
	assert.Equal(t, 2, disco.Lines[0].PackCount)
	assert.True(t, disco.Lines[0].LineTotal.Equal(decimal.NewFromInt(300)))
}

func TestResolveEmptyCatalog(t *testing.T) {
	result := newTestService().Resolve(testRecipe, nil)
	require.NotNil(t, result)

	assert.Len(t, result.Ingredients, 4)
	assert.Empty(t, result.PriceLines)
	for _, retailer := range common.Retailers {
		assert.Empty(t, result.Orders[retailer].Lines)
		assert.True(t, result.Orders[retailer].Total.IsZero())
	}
}

func TestFormatReply(t *testing.T) {
	result := newTestService().Resolve(testRecipe, testCatalog())
	reply := result.FormatReply("Ana")

	assert.Contains(t, reply, "👨‍🍳 Receta para Ana")
	assert.Contains(t, reply, testRecipe)
	assert.Contains(t, reply, "**Precios disponibles:**")
	assert.Contains(t, reply, "**Total Disco:**")
	assert.Contains(t, reply, "**Total Tienda Inglesa:**")
	assert.Contains(t, reply, "¿Querés hacer el pedido? Escribí 'tienda inglesa' o 'disco'.")

	// The butter line carries a price at Disco only.
	var butterLine string
	for _, l := range result.PriceLines {
		if strings.Contains(l, "manteca") {
			butterLine = l
		}
	}
	require.NotEmpty(t, butterLine)
	assert.Contains(t, butterLine, "sin precio (Tienda Inglesa)")
}

func TestFormatReplyWithoutPrices(t *testing.T) {
	result := newTestService().Resolve(testRecipe, nil)
	reply := result.FormatReply("Ana")

	assert.Contains(t, reply, testRecipe)
	assert.Contains(t, reply, "No se encontraron precios")
	assert.NotContains(t, reply, "Precios disponibles")
}
