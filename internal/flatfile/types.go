package flatfile

import (
	"errors"
	"fmt"
	"strings"

	"mapconf/internal/linetype"
)

// Suggested field names.
const (
	NameFirstName = "first_name"
	NameLastName  = "last_name"
	NameAge       = "age"
	NameCode      = "code"
	NameCity      = "city"

	placeholderPrefix = "field"
)

var (
	ErrLastField     = errors.New("cannot remove the last field")
	ErrFieldNotFound = errors.New("field not found")
)

// FieldDefinition is one fixed-width column of a flat file.
type FieldDefinition struct {
	// ID is an opaque 1-based identifier, unique within a FieldSet.
	ID       int               `json:"id,omitempty" yaml:"-"`
	Name     string            `json:"name" yaml:"name"`
	Start    int               `json:"startPos" yaml:"start"`
	End      int               `json:"endPos" yaml:"end"`
	LineType linetype.LineType `json:"typeLigne" yaml:"line_type"`
}

// Width returns the number of characters covered by the field.
func (f FieldDefinition) Width() int {
	if f.End < f.Start {
		return 0
	}

	return f.End - f.Start + 1
}

// Overlaps reports whether both fields cover a common position.
func (f FieldDefinition) Overlaps(other FieldDefinition) bool {
	return f.Start <= other.End && other.Start <= f.End
}

// Check returns an error when the definition cannot be submitted: it needs
// a name and a range with Start < End.
func (f FieldDefinition) Check() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return errors.New("field name is empty")
	case f.Start < 1:
		return fmt.Errorf("start position %d must be at least 1", f.Start)
	case f.Start >= f.End:
		return fmt.Errorf("start position %d must be lower than end position %d", f.Start, f.End)
	case !f.LineType.OrDefault().IsValid():
		return fmt.Errorf("unknown line type %q", f.LineType)
	}

	return nil
}

func (f FieldDefinition) String() string {
	return fmt.Sprintf("%s[%d:%d] (%s)", f.Name, f.Start, f.End, f.LineType.OrDefault())
}

// Placeholder returns the positional name of the n-th field (1-based).
func Placeholder(n int) string {
	return fmt.Sprintf("%s%d", placeholderPrefix, n)
}

// Naming selects how detected segments are named.
type Naming int

const (
	// NamingHeuristic classifies the segment content.
	NamingHeuristic Naming = iota
	// NamingPositional always uses Placeholder names.
	NamingPositional
)

// ParseNaming accepts "heuristic" or "positional".
func ParseNaming(s string) (Naming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heuristic":
		return NamingHeuristic, nil
	case "positional":
		return NamingPositional, nil
	default:
		return 0, fmt.Errorf("unknown naming %q, expected heuristic or positional", s)
	}
}

func (n Naming) String() string {
	if n == NamingPositional {
		return "positional"
	}

	return "heuristic"
}
