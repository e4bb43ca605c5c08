package conversation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText prepares an inbound chat message for classification:
// lowercase, accents stripped, punctuation collapsed to spaces and runs of
// whitespace squeezed. Date and time separators ("/", ":", "-") survive so
// the pattern matchers still see them.
func NormalizeText(text string) string {
	stripped, _, err := transform.String(accentStripper, text)
	if err != nil {
		stripped = text
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '/' || r == ':' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
