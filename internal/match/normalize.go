package match

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// affixes are words that qualify a field name without naming it:
// "num_client", "clientID" and "client_code" all name the client.
var affixes = []string{"id", "ids", "code", "num", "nr", "no", "at", "utc", "timestamp"}

// NormalizeName reduces a field name or path key to its comparable form:
// accents dropped, words lower-cased and joined.
//
//	"Prénom_Client" -> "prenomclient"
//	"dateNaissance" -> "datenaissance"
//	"ns:lastName"   -> "nslastname"
func NormalizeName(s string) string {
	return strings.Join(Words(s), "")
}

// StripAffixes is NormalizeName without one leading or trailing affix word.
// A single-word name is kept as is.
func StripAffixes(s string) string {
	words := Words(s)
	if len(words) > 1 {
		switch {
		case slices.Contains(affixes, words[len(words)-1]):
			words = words[:len(words)-1]
		case slices.Contains(affixes, words[0]):
			words = words[1:]
		}
	}

	return strings.Join(words, "")
}

// Words splits a name into lower-case words at separators, case changes and
// letter/digit boundaries. Accents are dropped.
func Words(s string) []string {
	var (
		words   []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	rs := []rune(FoldAccents(s))
	for i, r := range rs {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(rs, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return words
}

// FoldAccents removes combining marks: "Prénom" becomes "Prenom".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}

// isSeparator covers header separators, path dots and wildcards, and XML
// namespace prefixes.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '\t', '.', ':', '[', ']', '*', '/':
		return true
	default:
		return false
	}
}

// startsWord reports whether rs[i] opens a new word.
func startsWord(rs []rune, i int) bool {
	r, prev := rs[i], rs[i-1]

	switch {
	case isSeparator(prev):
		return false
	case unicode.IsDigit(r) != unicode.IsDigit(prev):
		// "address2" -> "address", "2"
		return true
	case unicode.IsUpper(r) && unicode.IsLower(prev):
		// "lastName" -> "last", "Name"
		return true
	case unicode.IsUpper(r) && unicode.IsUpper(prev):
		// "XMLParser" -> "XML", "Parser"
		return i+1 < len(rs) && unicode.IsLower(rs[i+1])
	default:
		return false
	}
}
