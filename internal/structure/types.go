package structure

import (
	"fmt"

	"mapconf/internal/linetype"
)

const (
	// Wildcard marks "any index" of an array in a leaf path.
	Wildcard = "[*]"
	// DefaultMaxDepth bounds the recursion into nested containers.
	DefaultMaxDepth = 10
	// DefaultPreviewLength bounds ExampleValue, in runes.
	DefaultPreviewLength = 50
	// DepthLimitValue is the example value of a depth-limit placeholder.
	DepthLimitValue = "<max depth reached>"
	// PositionWidth is the width of the ranges assigned by DefaultPositions.
	PositionWidth = 10
)

// JSONPathEntry is one discovered leaf of an uploaded JSON document.
type JSONPathEntry struct {
	// ID is an opaque identifier used by editing sessions only.
	ID string `json:"id,omitempty" yaml:"-"`
	// Path is the dot/wildcard notation path from the document root.
	Path string `json:"path" yaml:"path"`
	// ExampleValue is a truncated rendering of the first observed value.
	ExampleValue string `json:"exampleValue,omitempty" yaml:"example,omitempty"`
	// LineType tags the record category of the path.
	LineType linetype.LineType `json:"lineType" yaml:"line_type"`
	// DepthLimited marks a placeholder standing for a truncated branch.
	DepthLimited bool `json:"depthLimited,omitempty" yaml:"depth_limited,omitempty"`
	// Start and End are optional 1-based positions sent along with the path.
	Start int `json:"start,omitempty" yaml:"start,omitempty"`
	End   int `json:"end,omitempty" yaml:"end,omitempty"`
}

func (e JSONPathEntry) String() string {
	if e.ExampleValue == "" {
		return fmt.Sprintf("%s (%s)", e.Path, e.LineType)
	}

	return fmt.Sprintf("%s = %s (%s)", e.Path, e.ExampleValue, e.LineType)
}

// ParseError reports a document that is not well-formed JSON.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid JSON: %v", e.Err)
	}

	return fmt.Sprintf("invalid JSON in %q: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
