package mapping

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gofrs/uuid/v5"

	"mapconf/internal/flatfile"
	"mapconf/internal/structure"
)

var (
	ErrDestinationTaken = errors.New("destination already mapped")
	ErrEntryNotFound    = errors.New("mapping entry not found")
)

// DefaultLineNumber is the source line number of new entries.
const DefaultLineNumber = 1

// MappingSet is the editable list of mapping entries. No destination path is
// used by more than one entry. A MappingSet is not safe for concurrent use.
type MappingSet struct {
	entries []MappingEntry
}

// NewMappingSet returns a set holding entries, with IDs assigned where missing.
// It fails when two entries share a destination.
func NewMappingSet(entries ...MappingEntry) (*MappingSet, error) {
	s := &MappingSet{}

	for _, e := range entries {
		if _, err := s.AddEntry(e); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Entries returns a copy of the entries in order.
func (s *MappingSet) Entries() []MappingEntry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *MappingSet) Len() int {
	return len(s.entries)
}

// Add appends an empty entry and returns it.
func (s *MappingSet) Add() MappingEntry {
	e := withDefaults(MappingEntry{})
	s.entries = append(s.entries, e)

	return e
}

// AddEntry appends e, assigning an ID when it has none.
func (s *MappingSet) AddEntry(e MappingEntry) (MappingEntry, error) {
	e = withDefaults(e)

	if e.Destination != "" && s.owner(e.Destination, "") != nil {
		return MappingEntry{}, fmt.Errorf("%w: %q", ErrDestinationTaken, e.Destination)
	}

	s.entries = append(s.entries, e)

	return e, nil
}

// Get returns the entry with the given ID.
func (s *MappingSet) Get(id string) (MappingEntry, bool) {
	i := s.index(id)
	if i < 0 {
		return MappingEntry{}, false
	}

	return s.entries[i], true
}

// Remove deletes the entry with the given ID.
func (s *MappingSet) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	s.entries = slices.Delete(s.entries, i, i+1)

	return nil
}

// Update applies fn to the entry with the given ID. The change is rejected
// when it takes a destination owned by another entry.
func (s *MappingSet) Update(id string, fn func(e *MappingEntry)) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	e := s.entries[i]
	fn(&e)
	e.ID = id

	if e.Destination != "" && s.owner(e.Destination, id) != nil {
		return fmt.Errorf("%w: %q", ErrDestinationTaken, e.Destination)
	}

	s.entries[i] = e

	return nil
}

// SetSource sets the source field of the entry.
func (s *MappingSet) SetSource(id, src string) error {
	return s.Update(id, func(e *MappingEntry) { e.Source = src })
}

// SetDestination sets the destination path of the entry.
func (s *MappingSet) SetDestination(id, dst string) error {
	return s.Update(id, func(e *MappingEntry) { e.Destination = dst })
}

// Valid returns the entries with both sides set.
func (s *MappingSet) Valid() []MappingEntry {
	var out []MappingEntry

	for _, e := range s.entries {
		if e.IsComplete() {
			out = append(out, e)
		}
	}

	return out
}

// AvailableDestinations returns the paths of all that no entry other than id uses.
func (s *MappingSet) AvailableDestinations(id string, all []string) []string {
	return s.available(id, all, func(e MappingEntry) string { return e.Destination })
}

// AvailableSources returns the fields of all that no entry other than id uses.
func (s *MappingSet) AvailableSources(id string, all []string) []string {
	return s.available(id, all, func(e MappingEntry) string { return e.Source })
}

// ApplyFieldPositions copies Start, End and line type from the flat field
// definition named like each entry's source.
func (s *MappingSet) ApplyFieldPositions(fields []flatfile.FieldDefinition) {
	byName := make(map[string]flatfile.FieldDefinition, len(fields))
	for _, f := range fields {
		if _, ok := byName[f.Name]; !ok {
			byName[f.Name] = f
		}
	}

	for i := range s.entries {
		f, ok := byName[s.entries[i].Source]
		if !ok {
			continue
		}

		s.entries[i].Start = f.Start
		s.entries[i].End = f.End
		s.entries[i].SourceLineType = f.LineType.OrDefault()
	}
}

// ApplyStructure copies the destination line type from the structure, and
// the destination positions when the structure carries them. Destination
// positions take precedence over source field positions.
func (s *MappingSet) ApplyStructure(entries []structure.JSONPathEntry) {
	for i := range s.entries {
		key, ok := structure.Find(entries, s.entries[i].Destination)
		if !ok {
			continue
		}

		s.entries[i].DestinationLineType = key.LineType.OrDefault()

		if key.Start > 0 && key.End > 0 {
			s.entries[i].Start = key.Start
			s.entries[i].End = key.End
		}
	}
}

// Replace swaps all entries for entries. It fails, leaving the set
// unchanged, when two of them share a destination.
func (s *MappingSet) Replace(entries []MappingEntry) error {
	next, err := NewMappingSet(entries...)
	if err != nil {
		return err
	}

	s.entries = next.entries

	return nil
}

func (s *MappingSet) available(id string, all []string, key func(MappingEntry) string) []string {
	used := map[string]struct{}{}

	for _, e := range s.entries {
		if e.ID == id {
			continue
		}

		if k := key(e); k != "" {
			used[k] = struct{}{}
		}
	}

	out := make([]string, 0, len(all))

	for _, v := range all {
		if _, ok := used[v]; !ok {
			out = append(out, v)
		}
	}

	return out
}

func (s *MappingSet) owner(dst, except string) *MappingEntry {
	for i := range s.entries {
		if s.entries[i].ID != except && s.entries[i].Destination == dst {
			return &s.entries[i]
		}
	}

	return nil
}

func (s *MappingSet) index(id string) int {
	return slices.IndexFunc(s.entries, func(e MappingEntry) bool { return e.ID == id })
}

func withDefaults(e MappingEntry) MappingEntry {
	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV4()).String()
	}

	e.Status = e.Status.OrDefault()

	if e.LineNumber == 0 {
		e.LineNumber = DefaultLineNumber
	}

	e.SourceLineType = e.SourceLineType.OrDefault()
	e.DestinationLineType = e.DestinationLineType.OrDefault()

	return e
}
