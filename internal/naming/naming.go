// Package naming provides the pure string transforms used to derive
// identifiers and file names from scenario titles. All functions are
// deterministic and side-effect free.
package naming

import (
	"strings"
	"unicode"
)

// shortNameBudget caps the Pascal-cased concatenation built by
// ToShortFeatureName before camelCase conversion.
const shortNameBudget = 25

// stopwords are tokens dropped when deriving a short feature name: common
// English function words plus domain words that appear in nearly every
// scenario title and carry no distinguishing information.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"into": true, "onto": true, "over": true, "under": true, "that": true,
	"this": true, "these": true, "those": true, "are": true, "was": true,
	"were": true, "been": true, "being": true, "when": true, "then": true,
	"than": true, "will": true, "can": true, "could": true, "should": true,
	"shall": true, "all": true, "any": true, "via": true, "per": true,
	"not": true, "but": true, "after": true, "before": true, "while": true,
	"verify": true, "test": true, "tests": true, "testing": true,
	"scenario": true, "functionality": true, "page": true, "module": true,
	"system": true, "flow": true,
}

// ToPascalCase strips characters outside letters, digits and spaces, splits
// on spaces, and concatenates the tokens with their first letter uppercased.
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(stripNonAlnum(s)) {
		r := []rune(tok)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with the first character lowercased.
// Empty input yields empty output.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	r := []rune(pascal)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// ToShortFeatureName derives a compact, lossy, file-safe key from a scenario
// title. It is a naming convenience, not a unique key: distinct titles can
// reduce to the same short name, and callers needing uniqueness must layer
// their own disambiguator.
func ToShortFeatureName(title string) string {
	lowered := stripNonLowerAlnum(strings.ToLower(title))

	var tokens []string
	for _, tok := range strings.Fields(lowered) {
		if len(tok) <= 2 || stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}

	if len(tokens) == 0 {
		runes := []rune(title)
		if len(runes) > 15 {
			runes = runes[:15]
		}
		if fallback := ToCamelCase(string(runes)); fallback != "" {
			return fallback
		}
		return "genericFeature"
	}

	var b strings.Builder
	for i, tok := range tokens {
		cased := strings.ToUpper(tok[:1]) + tok[1:]
		if i == 0 && len(cased) >= shortNameBudget {
			b.WriteString(cased[:shortNameBudget])
			break
		}
		if b.Len()+len(cased) >= shortNameBudget && i > 0 {
			break
		}
		b.WriteString(cased)
	}

	if name := ToCamelCase(b.String()); name != "" {
		return name
	}
	if name := ToCamelCase(tokens[0]); name != "" {
		return name
	}
	return "genericFeature"
}

// stripNonAlnum replaces every character outside letters, digits and spaces.
func stripNonAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		return -1
	}, s)
}

// stripNonLowerAlnum keeps only lowercase ASCII letters, digits and spaces.
func stripNonLowerAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			return r
		}
		return -1
	}, s)
}
