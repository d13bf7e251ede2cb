package flatfile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"mapconf/internal/linetype"
)

const (
	// FallbackFields is the number of synthetic fields returned for a line without segments.
	FallbackFields = 4
	// FallbackWidth is the synthetic field width used when the line is too short to split.
	FallbackWidth = 10
	// SampleLines is the number of non-blank lines DetectContent considers.
	SampleLines = 3
)

// Detector proposes field definitions from sample lines.
// The zero value uses NamingHeuristic.
type Detector struct {
	Naming Naming
}

type segment struct {
	start, end int
	text       strings.Builder
}

// DetectSegments runs the default Detector.
func DetectSegments(sampleLine string) []FieldDefinition {
	return (&Detector{}).DetectSegments(sampleLine)
}

// DetectSegments returns one field per run of characters other than space
// and tab, in line order. It never returns an empty slice.
func (d *Detector) DetectSegments(sampleLine string) []FieldDefinition {
	line := strings.TrimRight(sampleLine, "\r\n")

	fields := d.fromSegments(scan(line))
	if len(fields) == 0 {
		return fallback(utf8.RuneCountInString(line))
	}

	return fields
}

// DetectContent picks the first non-blank line of content as the sample.
// The longest of the first SampleLines non-blank lines sizes the fallback.
func (d *Detector) DetectContent(content string) []FieldDefinition {
	lines := SampleOf(content, SampleLines)
	if len(lines) == 0 {
		return fallback(0)
	}

	fields := d.fromSegments(scan(lines[0]))
	if len(fields) > 0 {
		return fields
	}

	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}

	return fallback(longest)
}

// SampleOf returns up to n non-blank lines of content, without line terminators.
func SampleOf(content string, n int) []string {
	var out []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		out = append(out, line)
		if len(out) == n {
			break
		}
	}

	return out
}

func (d *Detector) fromSegments(segments []*segment) []FieldDefinition {
	fields := make([]FieldDefinition, 0, len(segments))

	for i, seg := range segments {
		name := Placeholder(i + 1)
		if d.Naming == NamingHeuristic {
			name = SuggestName(seg.text.String(), i+1)
		}

		fields = append(fields, FieldDefinition{
			ID:       i + 1,
			Name:     name,
			Start:    seg.start,
			End:      seg.end,
			LineType: linetype.Default,
		})
	}

	return fields
}

func scan(line string) []*segment {
	var (
		segments []*segment
		current  *segment
	)

	pos := 0
	for _, r := range line {
		pos++

		if r == ' ' || r == '\t' {
			if current != nil {
				segments = append(segments, current)
				current = nil
			}

			continue
		}

		if current == nil {
			current = &segment{start: pos}
		}

		current.end = pos
		current.text.WriteRune(r)
	}

	if current != nil {
		segments = append(segments, current)
	}

	return segments
}

// fallback splits a line of n characters into FallbackFields contiguous blocks.
// Block i covers floor(i*n/4)+1 to floor((i+1)*n/4).
func fallback(n int) []FieldDefinition {
	if n < FallbackFields {
		n = FallbackFields * FallbackWidth
	}

	fields := make([]FieldDefinition, 0, FallbackFields)
	for i := 0; i < FallbackFields; i++ {
		fields = append(fields, FieldDefinition{
			ID:       i + 1,
			Name:     Placeholder(i + 1),
			Start:    i*n/FallbackFields + 1,
			End:      (i + 1) * n / FallbackFields,
			LineType: linetype.Default,
		})
	}

	return fields
}

// SuggestName classifies the text of the index-th segment (1-based):
//   - ASCII letters only: first_name up to 8 characters, last_name above, placeholder for 2 or less
//   - ASCII digits only: age up to 3 characters, code above
//   - ASCII letters and spaces: city above 5 characters, last_name otherwise
//
// Anything else gets Placeholder(index).
func SuggestName(text string, index int) string {
	text = strings.ToLower(text)
	n := utf8.RuneCountInString(text)

	switch {
	case isLetters(text):
		if n > 2 {
			if n > 8 {
				return NameLastName
			}

			return NameFirstName
		}
	case isDigits(text):
		if n <= 3 {
			return NameAge
		}

		return NameCode
	case isLettersAndSpaces(text):
		if n > 5 {
			return NameCity
		}

		return NameLastName
	}

	return Placeholder(index)
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !isASCIILetter(r) {
			return false
		}
	}

	return true
}

// isASCIILetter matches lower-case a to z, accented letters name nothing.
func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func isLettersAndSpaces(s string) bool {
	letters := 0

	for _, r := range s {
		switch {
		case isASCIILetter(r):
			letters++
		case unicode.IsSpace(r):
		default:
			return false
		}
	}

	return letters > 0
}
