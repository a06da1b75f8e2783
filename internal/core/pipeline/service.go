package pipeline

import (
	"fmt"
	"strings"

	"chef-virtual/internal/core/matching"
	"chef-virtual/internal/pkg/common"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service resolves a recipe's ingredient lines into per-retailer orders.
// The catalog snapshot is an explicit argument on every call: the service
// holds no state between runs, so concurrent resolutions are independent.
type Service struct {
	resolver *matching.Resolver
}

// NewService creates the resolution service.
func NewService(resolver *matching.Resolver) *Service {
	return &Service{resolver: resolver}
}

// Result is the outcome of one recipe resolution run. Orders are immutable
// once returned; a later submission step must not mutate them.
type Result struct {
	RecipeText  string
	Ingredients []string
	Orders      common.Order
	PriceLines  []string
}

// Resolve extracts the ingredient lines from the recipe text, matches each
// against the catalog and assembles the consolidated per-retailer orders.
// Unresolved ingredients are dropped silently; the recipe itself is always
// part of the result.
func (s *Service) Resolve(recipeText string, catalog []common.Product) *Result {
	ingredients := ExtractIngredients(recipeText)

	orders := make(common.Order, len(common.Retailers))
	for _, retailer := range common.Retailers {
		orders[retailer] = &common.RetailerOrder{Retailer: retailer}
	}

	var priceLines []string
	for _, rawLine := range ingredients {
		match := s.resolver.Resolve(rawLine, catalog)
		if match == nil {
			common.LogDebug("ingredient unresolved",
				zap.String("ingredient", rawLine),
			)
			continue
		}

		quantity := extractQuantity(rawLine)
		unit := extractUnit(rawLine)
		packSize, packCount := matching.ComputePacks(quantity, unit, match.ProductName)

		var parts []string
		for _, retailer := range common.Retailers {
			price, ok := match.Prices[retailer]
			if !ok {
				parts = append(parts, fmt.Sprintf("sin precio (%s)", retailer.DisplayName()))
				continue
			}

			lineTotal := price.Mul(decimal.NewFromInt(int64(packCount)))
			orders[retailer].Lines = append(orders[retailer].Lines, common.OrderLine{
				ProductName: match.ProductName,
				UnitPrice:   price,
				PackSize:    packSize,
				PackCount:   packCount,
				LineTotal:   lineTotal,
				CatalogID:   match.CatalogIDs[retailer],
			})
			parts = append(parts, fmt.Sprintf("%d x $%s = $%s (%s)",
				packCount, price.String(), lineTotal.StringFixed(2), retailer.DisplayName()))
		}

		common.LogDebug("ingredient resolved",
			zap.String("ingredient", rawLine),
			zap.String("product", match.ProductName),
			zap.Int("pack_count", packCount),
		)
		priceLines = append(priceLines, fmt.Sprintf("- %s: %s", rawLine, strings.Join(parts, " / ")))
	}

	for _, retailer := range common.Retailers {
		orders[retailer].Lines = matching.Consolidate(orders[retailer].Lines)
		orders[retailer].RecalcTotal()
	}

	return &Result{
		RecipeText:  recipeText,
		Ingredients: ingredients,
		Orders:      orders,
		PriceLines:  priceLines,
	}
}

// FormatReply renders the user-facing reply: the recipe followed by the
// per-ingredient price lines and per-retailer totals.
func (r *Result) FormatReply(userName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👨‍🍳 Receta para %s\n\n%s", userName, r.RecipeText)

	if len(r.PriceLines) == 0 {
		sb.WriteString("\n\n*(No se encontraron precios para los ingredientes en nuestra base de datos)*")
		return sb.String()
	}

	sb.WriteString("\n\n**Precios disponibles:**\n")
	sb.WriteString(strings.Join(r.PriceLines, "\n"))
	sb.WriteString("\n")
	for _, retailer := range common.Retailers {
		fmt.Fprintf(&sb, "\n**Total %s:** $%s", retailer.DisplayName(), r.Orders[retailer].Total.StringFixed(2))
	}
	sb.WriteString("\n¿Querés hacer el pedido? Escribí 'tienda inglesa' o 'disco'.")
	return sb.String()
}
