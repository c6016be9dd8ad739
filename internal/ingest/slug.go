package ingest

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName turns a display name into a slug token:
// "Gregório Duvivier" -> "gregorio-duvivier".
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, name)
	if err != nil {
		decomposed = norm.NFKD.String(name)
	}

	// non-ASCII leftovers are dropped outright, not turned into separators
	var ascii strings.Builder
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}
	return slugify(strings.ToLower(ascii.String()))
}

func slugify(s string) string {
	out := make([]byte, 0, len(s))
	lastDash := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			out = append(out, c)
			lastDash = false
		default:
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
