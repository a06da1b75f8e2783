package matching

import (
	"strings"
	"unicode/utf8"

	"chef-virtual/internal/pkg/common"

	"github.com/shopspring/decimal"
)

// Match is a resolved catalog product. A retailer missing from Prices simply
// does not sell the product; that is not an error.
type Match struct {
	ProductName string
	Prices      map[common.Retailer]decimal.Decimal
	CatalogIDs  map[common.Retailer]string
}

// matchRule selects how a category search term is applied to product names.
type matchRule int

const (
	// matchSubstring accepts any product name containing the term.
	matchSubstring matchRule = iota
	// matchAllWords requires every word of the term to appear in the name.
	matchAllWords
	// matchWheatFlour accepts "harina"+"trigo" together or the exact
	// "harina común" phrase.
	matchWheatFlour
)

type categoryTerm struct {
	term string
	rule matchRule
}

// categoryTable maps normalized staple names to catalog search terms. These
// are hand-curated, high-confidence substitutions (a recipe's "mantequilla"
// legitimately resolves to a manteca-labeled product in this market) that
// fuzzy similarity would rank poorly. The table is fixed: it is part of the
// matching contract, not runtime configuration.
var categoryTable = map[string]categoryTerm{
	"mantequilla":      {term: "manteca", rule: matchSubstring},
	"manteca":          {term: "manteca", rule: matchSubstring},
	"azucar":           {term: "azucar", rule: matchSubstring},
	"azúcar":           {term: "azucar", rule: matchSubstring},
	"huevo":            {term: "huevos colorados", rule: matchAllWords},
	"huevos":           {term: "huevos colorados", rule: matchAllWords},
	"cacao":            {term: "cocoa", rule: matchSubstring},
	"harina":           {term: "harina de trigo", rule: matchWheatFlour},
	"sal":              {term: "sal", rule: matchSubstring},
	"levadura":         {term: "levadura", rule: matchSubstring},
	"vainilla":         {term: "vainilla", rule: matchSubstring},
	"esencia vainilla": {term: "vainilla", rule: matchSubstring},
	"leche":            {term: "leche", rule: matchSubstring},
	"aceite oliva":     {term: "aceite oliva", rule: matchAllWords},
	"aceite":           {term: "aceite", rule: matchSubstring},
	"tomate":           {term: "tomate", rule: matchSubstring},
	"cebolla":          {term: "cebolla", rule: matchSubstring},
	"pimiento":         {term: "pimiento", rule: matchSubstring},
	"carne":            {term: "carne", rule: matchSubstring},
	"laurel":           {term: "laurel", rule: matchSubstring},
	"caldo":            {term: "caldo", rule: matchSubstring},
	"bicarbonato":      {term: "bicarbonato", rule: matchSubstring},
}

func (t categoryTerm) matches(lowerName string) bool {
	switch t.rule {
	case matchAllWords:
		for _, word := range strings.Fields(t.term) {
			if !strings.Contains(lowerName, word) {
				return false
			}
		}
		return true
	case matchWheatFlour:
		if strings.Contains(lowerName, "harina") && strings.Contains(lowerName, "trigo") {
			return true
		}
		return strings.Contains(lowerName, "harina común")
	default:
		return strings.Contains(lowerName, t.term)
	}
}

// ResolveByCategory looks the normalized token up in the exact category
// table and scans the catalog for the mapped search term. The key must equal
// the token exactly; no partial matching happens at this stage. Returns nil
// when the token has no entry or the term matches nothing.
func (r *Resolver) ResolveByCategory(token string, catalog []common.Product) *Match {
	key := strings.TrimSpace(strings.ToLower(token))
	if utf8.RuneCountInString(key) < minTokenLength {
		return nil
	}

	term, ok := categoryTable[key]
	if !ok {
		return nil
	}

	var candidates []common.Product
	for _, p := range catalog {
		if p.Name == "" {
			continue
		}
		if term.matches(strings.ToLower(p.Name)) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// First candidate in catalog order is canonical; the first offer per
	// retailer supplies that retailer's price and id.
	prices, ids := collectRetailerOffers(candidates)
	return &Match{
		ProductName: candidates[0].Name,
		Prices:      prices,
		CatalogIDs:  ids,
	}
}

// collectRetailerOffers keeps the first offer seen per retailer. Records
// with an unknown retailer name are skipped.
func collectRetailerOffers(candidates []common.Product) (map[common.Retailer]decimal.Decimal, map[common.Retailer]string) {
	prices := make(map[common.Retailer]decimal.Decimal)
	ids := make(map[common.Retailer]string)
	for _, p := range candidates {
		retailer, ok := common.ParseRetailer(p.Retailer)
		if !ok {
			continue
		}
		if _, seen := prices[retailer]; seen {
			continue
		}
		prices[retailer] = p.Price
		if p.ID != "" {
			ids[retailer] = p.ID
		}
	}
	return prices, ids
}
