package matching

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// minTokenLength is the shortest normalized token worth matching. Anything
// shorter is treated as carrying no signal.
const minTokenLength = 3

var (
	parenPattern           = regexp.MustCompile(`\([^)]*\)`)
	decimalPattern         = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	fractionPattern        = regexp.MustCompile(`\d+/\d+`)
	fractionRemnantPattern = regexp.MustCompile(`/\d+`)
	punctPattern           = regexp.MustCompile(`[/\\(),-]`)
	spacePattern           = regexp.MustCompile(`\s+`)
)

// measureWords are the recipe measurement words stripped during
// normalization. Each is matched whole-word with an optional plural "s".
var measureWords = []string{
	"taza", "cucharadita", "cucharada",
	"kg", "gr", "g", "gramo", "litro", "ml", "cc", "pizca",
	"paquete", "lata", "sobre", "unidad", "unidades", "docena", "opcional",
}

// connectorWords carry no matching signal: prepositions, articles and the
// handful of texture/temperature descriptors recipes attach to staples.
var connectorWords = []string{
	"de", "del", "la", "el", "en", "con", "sin", "para", "y", "al", "gusto",
	"tibia", "fría", "caliente", "fresco", "seco", "líquido", "polvo",
}

var (
	measurePatterns   = compileWordPatterns(measureWords)
	connectorPatterns = compileWordPatterns(connectorWords)
)

func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		patterns = append(patterns, regexp.MustCompile(fmt.Sprintf(`(?i)\b%ss?\b`, regexp.QuoteMeta(word))))
	}
	return patterns
}

// Normalize reduces a raw ingredient line to its matching token: the
// parentheticals, quantities, measurement words and connector words are
// stripped in that order, since measurement words can hide inside
// parenthetical brand annotations. A result shorter than three characters
// becomes the empty string, signalling an unmatchable line.
func Normalize(raw string) string {
	s := parenPattern.ReplaceAllString(raw, "")

	s = decimalPattern.ReplaceAllString(s, "")
	s = fractionPattern.ReplaceAllString(s, "")
	s = fractionRemnantPattern.ReplaceAllString(s, "")

	for _, p := range measurePatterns {
		s = p.ReplaceAllString(s, "")
	}
	for _, p := range connectorPatterns {
		s = p.ReplaceAllString(s, "")
	}

	s = punctPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) < minTokenLength {
		return ""
	}
	return s
}
