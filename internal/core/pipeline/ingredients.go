package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	quantityPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	unitPattern     = regexp.MustCompile(`kg|gr|g|litro|lt|l|ml|cc|unidad|unidades|docena|pizca|taza|cucharada|cucharadita`)
)

// sectionEndKeywords close the ingredient section when any of them appears
// in a line.
var sectionEndKeywords = []string{"preparación", "preparacion", "instrucciones", "pasos"}

// ExtractIngredients pulls the bullet lines out of the recipe's
// "Ingredientes" section. Section boundaries are detected by
// case-insensitive substring cues only; the recipe text carries no stricter
// markup.
func ExtractIngredients(recipeText string) []string {
	var ingredients []string
	inSection := false

	for _, line := range strings.Split(recipeText, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		if !inSection && strings.Contains(lower, "ingredientes") {
			inSection = true
			continue
		}
		for _, keyword := range sectionEndKeywords {
			if strings.Contains(lower, keyword) {
				inSection = false
				break
			}
		}

		trimmed := strings.TrimSpace(line)
		if inSection && trimmed != "" && (strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•")) {
			ingredient := strings.TrimSpace(strings.TrimLeft(trimmed, "-• "))
			if ingredient != "" {
				ingredients = append(ingredients, ingredient)
			}
		}
	}

	return ingredients
}

// extractQuantity returns the first decimal number in the raw ingredient
// line, defaulting to one.
func extractQuantity(rawLine string) float64 {
	raw := quantityPattern.FindString(rawLine)
	if raw == "" {
		return 1
	}
	quantity, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 1
	}
	return quantity
}

// extractUnit returns the first measurement word recognized in the raw
// ingredient line, defaulting to "unidad".
func extractUnit(rawLine string) string {
	unit := unitPattern.FindString(strings.ToLower(rawLine))
	if unit == "" {
		return "unidad"
	}
	return unit
}
