package search

import (
	"fmt"
	"strings"
)

// ConfigError reports an invalid search configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid search option %s: %s", e.Field, e.Reason)
}

// Delimiters is an ordered set of distinct runes a query is split on.
type Delimiters []rune

// symbolic names accepted by NewDelimiters for runes that are awkward to
// pass literally on a command line
var symbolicDelimiters = map[string]rune{
	"space":   ' ',
	"tab":     '\t',
	"newline": '\n',
	`\t`:      '\t',
	`\n`:      '\n',
}

// NewDelimiters builds a delimiter set from tokens. Each token is either a
// single rune or a symbolic name (space, tab, newline). Duplicates are
// dropped, order is preserved, and the result must be non-empty.
func NewDelimiters(tokens []string) (Delimiters, error) {
	var delims Delimiters
	seen := make(map[rune]bool)

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		r, ok := symbolicDelimiters[tok]
		if !ok {
			runes := []rune(tok)
			if len(runes) != 1 {
				return nil, &ConfigError{
					Field:  "delimiters",
					Reason: fmt.Sprintf("%q is not a single character or symbolic name", tok),
				}
			}
			r = runes[0]
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		delims = append(delims, r)
	}

	if len(delims) == 0 {
		return nil, &ConfigError{Field: "delimiters", Reason: "must not be empty"}
	}
	return delims, nil
}

// DefaultDelimiters returns the default delimiter set: semicolons, commas
// (ASCII and full-width), spaces and tabs.
func DefaultDelimiters() Delimiters {
	return Delimiters{';', '；', ' ', ',', '，', '\t'}
}

func (d Delimiters) contains(r rune) bool {
	for _, dr := range d {
		if dr == r {
			return true
		}
	}
	return false
}

// SplitKeywords splits input on every delimiter rune, trims each token and
// drops empties.
func SplitKeywords(input string, delims Delimiters) []string {
	fields := strings.FieldsFunc(input, delims.contains)

	keywords := fields[:0]
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			keywords = append(keywords, f)
		}
	}
	return keywords
}
