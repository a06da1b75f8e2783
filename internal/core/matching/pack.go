package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	annotationPattern = regexp.MustCompile(`\(([^)]+)\)`)
	packValuePattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

	gramAnnotation  = regexp.MustCompile(`\d\s*(?:gr?|gramos?)\b`)
	literAnnotation = regexp.MustCompile(`\d\s*(?:l|lt|litros?)\b`)
)

// ComputePacks reconciles a recipe quantity with the package-size annotation
// embedded in the matched product's name, e.g. "(1kg)", "(400g)", "(docena)".
// It returns the pack size (in grams, milliliters or discrete units) and the
// number of packs to buy. Quantization always rounds up and never resolves
// to fewer than one pack; unparseable annotations fall back to a single pack
// rather than fabricating a quantity.
//
// When the recipe unit cannot be reconciled with the annotation (a
// cup-measured quantity against a kilogram pack, say), one pack is bought —
// there is no reliable way to scale.
//
// TODO: taza/cucharada measures have no gram equivalent here, so cup-based
// quantities always take the one-pack default; needs a conversion table.
func ComputePacks(quantity float64, unit string, productName string) (packSize float64, packCount int) {
	m := annotationPattern.FindStringSubmatch(strings.ToLower(productName))
	if m == nil {
		// No annotation: each pack is one discrete unit.
		return 1, atLeastOne(math.Ceil(quantity))
	}
	annotation := m[1]

	if strings.Contains(annotation, "docena") {
		packSize = 12
		if strings.Contains(annotation, "1/2") {
			packSize = 6
		}
		return packSize, atLeastOne(math.Ceil(quantity / packSize))
	}

	value, ok := firstNumber(annotation)
	if !ok {
		return 1, 1
	}

	switch {
	case strings.Contains(annotation, "kg"):
		packSize = value * 1000 // grams
		switch unit {
		case "kg":
			return packSize, packsFor(quantity*1000, packSize)
		case "g", "gr", "gramos":
			return packSize, packsFor(quantity, packSize)
		}
		return packSize, 1

	case gramAnnotation.MatchString(annotation):
		packSize = value
		switch unit {
		case "g", "gr", "gramos":
			return packSize, packsFor(quantity, packSize)
		}
		return packSize, 1

	case strings.Contains(annotation, "ml") || strings.Contains(annotation, "cc"):
		packSize = value
		switch unit {
		case "ml", "cc":
			return packSize, packsFor(quantity, packSize)
		case "litro", "lt", "l":
			return packSize, packsFor(quantity*1000, packSize)
		}
		return packSize, 1

	case literAnnotation.MatchString(annotation):
		packSize = value * 1000 // milliliters
		switch unit {
		case "litro", "lt", "l":
			return packSize, packsFor(quantity*1000, packSize)
		}
		return packSize, 1
	}

	return 1, atLeastOne(math.Ceil(quantity))
}

// packsFor buys one pack when a single pack covers the scaled quantity,
// otherwise rounds up.
func packsFor(scaledQuantity, packSize float64) int {
	if packSize >= scaledQuantity {
		return 1
	}
	return atLeastOne(math.Ceil(scaledQuantity / packSize))
}

func atLeastOne(n float64) int {
	if n < 1 {
		return 1
	}
	return int(n)
}

func firstNumber(s string) (float64, bool) {
	raw := packValuePattern.FindString(s)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
