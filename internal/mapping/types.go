package mapping

import (
	"fmt"
	"strings"

	"mapconf/internal/flatfile"
	"mapconf/internal/linetype"
	"mapconf/internal/source"
	"mapconf/internal/structure"
)

// MappingFile represents the root of a YAML mapping definition file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Source describes the sample file the fields come from.
	Source SourceDef `yaml:"source"`

	// Destination names the JSON target on the backend.
	Destination DestinationDef `yaml:"destination"`

	// Fields are the fixed-width definitions of a FLAT source.
	Fields []flatfile.FieldDefinition `yaml:"fields,omitempty"`

	// Structure lists the leaf paths of the target JSON.
	Structure []structure.JSONPathEntry `yaml:"structure,omitempty"`

	// Pairs is the shorthand form of 1:1 entries, keyed by source field.
	// Priority: highest.
	Pairs Pairs `yaml:"pairs,omitempty"`

	// Mappings are the explicit entries.
	Mappings []MappingEntry `yaml:"mappings"`

	// Auto holds suggestions produced by auto-mapping, awaiting review.
	// Priority: lowest.
	Auto []MappingEntry `yaml:"auto,omitempty"`
}

// SourceDef describes the sample source file.
type SourceDef struct {
	// File is the path of the sample, relative to the mapping file.
	File string `yaml:"file,omitempty"`
	// Type is CSV, XML or FLAT; detected from File when empty.
	Type source.FileType `yaml:"type,omitempty"`
	// Fields lists the known source field names of CSV and XML sources.
	Fields []string `yaml:"fields,omitempty"`
}

// DestinationDef describes the JSON target.
type DestinationDef struct {
	// Name is the destination name the backend stores the structure under.
	Name string `yaml:"name"`
	// File is the path of a sample JSON document of the target.
	File string `yaml:"file,omitempty"`
}

// Status is the backend processing flag of a mapping entry.
// The codes are opaque to this client.
type Status string

const (
	StatusAT Status = "AT"
	StatusRE Status = "RE"
	StatusTR Status = "TR"

	// DefaultStatus is given to new entries.
	DefaultStatus = StatusTR
)

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	return s == StatusAT || s == StatusRE || s == StatusTR
}

// OrDefault returns DefaultStatus for the empty status.
func (s Status) OrDefault() Status {
	if s == "" {
		return DefaultStatus
	}

	return s
}

// ParseStatus accepts a status code in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s))).OrDefault()
	if !st.IsValid() {
		return "", fmt.Errorf("unknown status %q, expected AT, RE or TR", s)
	}

	return st, nil
}

// MappingEntry associates one source field with one destination leaf path.
type MappingEntry struct {
	// ID is an opaque identifier assigned by a MappingSet.
	ID string `json:"id" yaml:"-"`
	// Source is the source field name. It may be empty while editing.
	Source string `json:"source" yaml:"source"`
	// Destination is the JSON leaf path. It may be empty while editing.
	Destination string `json:"destination" yaml:"destination"`
	Status      Status `json:"status" yaml:"status,omitempty"`
	// Start and End are 1-based inclusive positions sent to the backend.
	Start int `json:"start,omitempty" yaml:"start,omitempty"`
	End   int `json:"end,omitempty" yaml:"end,omitempty"`
	// LineNumber is the line of the source record the value is read from.
	LineNumber          int               `json:"line,omitempty" yaml:"line,omitempty"`
	SourceLineType      linetype.LineType `json:"sourceLineType,omitempty" yaml:"source_line_type,omitempty"`
	DestinationLineType linetype.LineType `json:"destinationLineType,omitempty" yaml:"destination_line_type,omitempty"`
	// Score is the confidence of an auto-mapping suggestion.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// IsComplete returns true if both sides are set.
func (e MappingEntry) IsComplete() bool {
	return e.Source != "" && e.Destination != ""
}

func (e MappingEntry) String() string {
	src, dst := e.Source, e.Destination
	if src == "" {
		src = "?"
	}

	if dst == "" {
		dst = "?"
	}

	return fmt.Sprintf("%s -> %s", src, dst)
}

// Pair is one shorthand source -> destination association.
type Pair struct {
	Source      string
	Destination string
}

// Pairs keeps the shorthand associations in file order.
type Pairs []Pair
