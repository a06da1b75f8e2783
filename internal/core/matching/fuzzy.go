package matching

import (
	"strings"

	"chef-virtual/internal/pkg/common"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultFuzzyThreshold is the default similarity score (out of 100) a fuzzy
// candidate must reach to be accepted. Earlier revisions of the matcher used
// 90; it proved too strict against short catalog names.
const DefaultFuzzyThreshold = 80

// nonFoodTerms excludes cleaning and personal-care products from fuzzy
// candidates; the catalog mixes them in with groceries.
var nonFoodTerms = []string{
	"jabon", "detergente", "repelente", "hipoclorito",
	"lavandina", "pañal", "shampoo", "talco", "off",
}

// Resolver matches ingredient lines against a catalog snapshot, exact
// category rules first and fuzzy similarity as the fallback.
type Resolver struct {
	threshold int
}

// NewResolver creates a resolver with the given acceptance threshold.
// Non-positive thresholds fall back to DefaultFuzzyThreshold.
func NewResolver(threshold int) *Resolver {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Resolver{threshold: threshold}
}

func isFood(lowerName string) bool {
	for _, term := range nonFoodTerms {
		if strings.Contains(lowerName, term) {
			return false
		}
	}
	return true
}

// Resolve matches a raw ingredient line against the catalog. Category
// resolution always wins over fuzzy similarity; a fuzzy candidate is
// accepted only when its best score reaches the threshold. Returns nil for
// anything unmatchable — an unresolved ingredient is not an error.
func (r *Resolver) Resolve(rawLine string, catalog []common.Product) *Match {
	if len(catalog) == 0 {
		return nil
	}

	foods := make([]common.Product, 0, len(catalog))
	for _, p := range catalog {
		if p.Name == "" {
			continue
		}
		if isFood(strings.ToLower(p.Name)) {
			foods = append(foods, p)
		}
	}
	if len(foods) == 0 {
		return nil
	}

	token := Normalize(rawLine)
	if token == "" {
		return nil
	}

	if m := r.ResolveByCategory(token, foods); m != nil {
		return m
	}

	lowerToken := strings.ToLower(token)
	bestScore := -1
	bestName := ""
	for _, p := range foods {
		score := fuzzy.WRatio(lowerToken, strings.ToLower(p.Name))
		if score > bestScore {
			bestScore = score
			bestName = p.Name
		}
	}
	if bestScore < r.threshold {
		return nil
	}

	// Per-retailer offers come from records with the exact matched name.
	var offers []common.Product
	for _, p := range foods {
		if strings.EqualFold(p.Name, bestName) {
			offers = append(offers, p)
		}
	}
	prices, ids := collectRetailerOffers(offers)
	return &Match{
		ProductName: bestName,
		Prices:      prices,
		CatalogIDs:  ids,
	}
}
