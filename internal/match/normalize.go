package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy comparison: lower case,
// underscores dropped. "Pos_X" and "posx" normalize alike.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
