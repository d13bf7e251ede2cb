package mapping

import (
	"errors"
	"fmt"
	"strings"

	"mapconf/internal/structure"
)

// PathSegment is one dot-separated part of a leaf path.
type PathSegment struct {
	// Name is the object key; empty only for a root array segment.
	Name string
	// Wildcards counts the "[*]" suffixes, one per nested array level.
	Wildcards int
}

func (s PathSegment) String() string {
	return s.Name + strings.Repeat(structure.Wildcard, s.Wildcards)
}

// FieldPath is a parsed destination leaf path.
type FieldPath struct {
	Segments []PathSegment
}

func (p FieldPath) String() string {
	parts := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		parts = append(parts, s.String())
	}

	return strings.Join(parts, ".")
}

// Leaf returns the last key name of the path, or "" for a root array of primitives.
func (p FieldPath) Leaf() string {
	for i := len(p.Segments) - 1; i >= 0; i-- {
		if p.Segments[i].Name != "" {
			return p.Segments[i].Name
		}
	}

	return ""
}

// InArray reports whether any segment crosses an array.
func (p FieldPath) InArray() bool {
	for _, s := range p.Segments {
		if s.Wildcards > 0 {
			return true
		}
	}

	return false
}

// ParsePath parses a leaf path string into a FieldPath.
// Supports: "id", "client.name", "items[*]", "items[*].sku", "m[*][*]", "[*].id".
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, errors.New("empty path")
	}

	var segments []PathSegment

	for _, part := range strings.Split(path, ".") {
		name, wildcards := part, 0

		// Check for array notation
		for strings.HasSuffix(name, structure.Wildcard) {
			name = strings.TrimSuffix(name, structure.Wildcard)
			wildcards++
		}

		if name == "" && (wildcards == 0 || len(segments) > 0) {
			return FieldPath{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		if strings.ContainsAny(name, "[]") {
			return FieldPath{}, fmt.Errorf("invalid path %q: malformed array marker in %q", path, part)
		}

		segments = append(segments, PathSegment{
			Name:      name,
			Wildcards: wildcards,
		})
	}

	return FieldPath{Segments: segments}, nil
}

// LeafName returns the last key name of path, or path itself when it does not parse.
func LeafName(path string) string {
	fp, err := ParsePath(path)
	if err != nil {
		return path
	}

	return fp.Leaf()
}
