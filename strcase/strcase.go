// Package strcase converts identifiers between the casings used by generated
// code (PascalCase, camelCase, snake_case, kebab-case, SCREAMING_CASE) and
// provides a rule-table pluralizer.
//
// Pluralize is a heuristic: it covers the common English suffix rules plus a
// small irregular-word table. Words outside both fall through to the default
// "+s" rule; callers needing exact plurals should supply them explicitly.
package strcase

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidIdentifier = errors.New("strcase: invalid identifier")

// SplitWords splits an identifier into its words. A word boundary occurs at
// each `_`, `-` or space, at each lower-to-upper transition, and at the end of
// an uppercase run followed by a lowercase letter ("HTTPServer" -> HTTP, Server).
func SplitWords(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrInvalidIdentifier
	}

	var words []string
	var cur []rune
	runes := []rune(s)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					flush()
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					// end of an acronym run: the last upper belongs to the next word
					flush()
				}
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	if len(words) == 0 {
		return nil, ErrInvalidIdentifier
	}
	return words, nil
}

// ToPascalCase converts s to PascalCase.
func ToPascalCase(s string) (string, error) {
	words, err := SplitWords(s)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(strings.ToLower(w)))
	}
	return b.String(), nil
}

// ToCamelCase converts s to camelCase.
func ToCamelCase(s string) (string, error) {
	pascal, err := ToPascalCase(s)
	if err != nil {
		return "", err
	}
	return strings.ToLower(pascal[:1]) + pascal[1:], nil
}

// ToSnakeCase converts s to snake_case.
func ToSnakeCase(s string) (string, error) {
	return joinLower(s, "_")
}

// ToKebabCase converts s to kebab-case.
func ToKebabCase(s string) (string, error) {
	return joinLower(s, "-")
}

// ToScreamingCase converts s to SCREAMING_CASE.
func ToScreamingCase(s string) (string, error) {
	snake, err := ToSnakeCase(s)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(snake), nil
}

func joinLower(s, sep string) (string, error) {
	words, err := SplitWords(s)
	if err != nil {
		return "", err
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// irregulars maps singular forms to plurals that the suffix rules get wrong.
var irregulars = map[string]string{
	"person":      "people",
	"child":       "children",
	"man":         "men",
	"woman":       "women",
	"foot":        "feet",
	"tooth":       "teeth",
	"mouse":       "mice",
	"goose":       "geese",
	"datum":       "data",
	"criterion":   "criteria",
	"sheep":       "sheep",
	"fish":        "fish",
	"series":      "series",
	"species":     "species",
	"equipment":   "equipment",
	"information": "information",
	"data":        "data",
}

// Pluralize returns the plural form of the last word of s, preserving the
// original casing of the first letter. See the package comment for limits.
func Pluralize(s string) (string, error) {
	if s == "" {
		return "", ErrInvalidIdentifier
	}

	lower := strings.ToLower(s)
	if p, ok := irregulars[lower]; ok {
		return matchLeadingCase(s, p), nil
	}

	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return s + "es", nil
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return s[:len(s)-1] + "ies", nil
	default:
		return s + "s", nil
	}
}

func matchLeadingCase(original, plural string) string {
	if original == "" || plural == "" {
		return plural
	}
	if unicode.IsUpper(rune(original[0])) {
		return capitalize(plural)
	}
	return plural
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
