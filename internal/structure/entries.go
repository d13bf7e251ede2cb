package structure

import (
	"fmt"

	"mapconf/internal/linetype"
)

// Paths returns the path of every entry, in order.
func Paths(entries []JSONPathEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}

	return out
}

// Find returns the entry with the given path.
func Find(entries []JSONPathEntry, path string) (*JSONPathEntry, bool) {
	for i := range entries {
		if entries[i].Path == path {
			return &entries[i], true
		}
	}

	return nil, false
}

// SetLineType retags the entry with the given path.
func SetLineType(entries []JSONPathEntry, path string, lt linetype.LineType) error {
	if !lt.IsValid() {
		return fmt.Errorf("unknown line type %q", lt)
	}

	e, ok := Find(entries, path)
	if !ok {
		return fmt.Errorf("path %q not found in structure", path)
	}

	e.LineType = lt

	return nil
}

// DefaultPositions assigns consecutive ranges of PositionWidth characters,
// entry i covering 10i+1 to 10i+10. Entries are modified in place.
func DefaultPositions(entries []JSONPathEntry) {
	for i := range entries {
		entries[i].Start = i*PositionWidth + 1
		entries[i].End = entries[i].Start + PositionWidth - 1
	}
}
