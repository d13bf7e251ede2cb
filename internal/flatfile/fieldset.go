package flatfile

import (
	"fmt"
	"slices"
	"strings"

	"mapconf/internal/common"
	"mapconf/internal/diagnostic"
	"mapconf/internal/linetype"
)

const sectionFields = "fields"

// DefaultFields returns the illustrative definitions shown before any file is loaded.
func DefaultFields() []FieldDefinition {
	return []FieldDefinition{
		{ID: 1, Name: NameLastName, Start: 1, End: 9, LineType: linetype.Default},
		{ID: 2, Name: NameFirstName, Start: 10, End: 17, LineType: linetype.Default},
		{ID: 3, Name: NameAge, Start: 18, End: 21, LineType: linetype.Default},
		{ID: 4, Name: NameCity, Start: 22, End: 27, LineType: linetype.Default},
	}
}

// FieldSet is the editable list of flat field definitions.
type FieldSet struct {
	fields []FieldDefinition
	nextID int
}

// NewFieldSet returns a set holding fields, or DefaultFields when none are given.
func NewFieldSet(fields ...FieldDefinition) *FieldSet {
	s := &FieldSet{}
	if len(fields) == 0 {
		fields = DefaultFields()
	}

	s.Apply(fields)

	return s
}

// Fields returns a copy of the definitions.
func (s *FieldSet) Fields() []FieldDefinition {
	return slices.Clone(s.fields)
}

// Len returns the number of definitions.
func (s *FieldSet) Len() int {
	return len(s.fields)
}

// Names returns the field names in order.
func (s *FieldSet) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}

	return names
}

// Get returns the definition with the given name.
func (s *FieldSet) Get(name string) (FieldDefinition, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldDefinition{}, false
}

// Apply replaces all definitions, renumbering their IDs from 1.
func (s *FieldSet) Apply(fields []FieldDefinition) {
	s.fields = make([]FieldDefinition, 0, len(fields))
	s.nextID = 1

	for _, f := range fields {
		f.ID = s.nextID
		f.LineType = f.LineType.OrDefault()
		s.nextID++
		s.fields = append(s.fields, f)
	}
}

// Reset restores DefaultFields.
func (s *FieldSet) Reset() {
	s.Apply(DefaultFields())
}

// Add appends a placeholder field of FallbackWidth characters right after the last one.
func (s *FieldSet) Add() FieldDefinition {
	start := 1
	if last, ok := common.Last(s.fields); ok {
		start = last.End + 1
	}

	s.nextID = max(s.nextID, 1)

	f := FieldDefinition{
		ID:       s.nextID,
		Name:     Placeholder(len(s.fields) + 1),
		Start:    start,
		End:      start + FallbackWidth - 1,
		LineType: linetype.Default,
	}
	s.nextID++
	s.fields = append(s.fields, f)

	return f
}

// Remove deletes the field with the given ID. The last remaining field cannot be removed.
func (s *FieldSet) Remove(id int) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrFieldNotFound, id)
	}

	if len(s.fields) == 1 {
		return ErrLastField
	}

	s.fields = slices.Delete(s.fields, i, i+1)

	return nil
}

// Update applies fn to the field with the given ID.
func (s *FieldSet) Update(id int, fn func(f *FieldDefinition)) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrFieldNotFound, id)
	}

	f := s.fields[i]
	fn(&f)
	f.ID = id
	s.fields[i] = f

	return nil
}

// Merge joins the field with the given ID and the one after it into a single
// field, named by classifying the sample text under the merged range.
func (s *FieldSet) Merge(id int, sampleLine string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrFieldNotFound, id)
	}

	if i == len(s.fields)-1 {
		return fmt.Errorf("field %q has no following field to merge with", s.fields[i].Name)
	}

	merged := s.fields[i]
	merged.End = max(merged.End, s.fields[i+1].End)
	merged.Name = SuggestName(strings.TrimSpace(Slice(sampleLine, merged)), i+1)

	s.fields[i] = merged
	s.fields = slices.Delete(s.fields, i+1, i+2)

	return nil
}

// Validate reports the definitions that cannot be submitted.
func (s *FieldSet) Validate() *diagnostic.Diagnostics {
	return ValidateFields(s.fields)
}

func (s *FieldSet) index(id int) int {
	return slices.IndexFunc(s.fields, func(f FieldDefinition) bool { return f.ID == id })
}

// ValidateFields checks every definition: names and ranges are errors,
// duplicate names and overlapping ranges of the same line type are warnings.
func ValidateFields(fields []FieldDefinition) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if len(fields) == 0 {
		res.AddError("no_fields", "at least one field is required", sectionFields, "")
		return res
	}

	seen := map[string]struct{}{}

	for i, f := range fields {
		subject := f.Name
		if subject == "" {
			subject = fmt.Sprintf("#%d", i+1)
		}

		if err := f.Check(); err != nil {
			res.AddError("invalid_field", err.Error(), sectionFields, subject)
		}

		if f.Name != "" {
			if _, ok := seen[f.Name]; ok {
				res.AddWarning("duplicate_field_name",
					fmt.Sprintf("field name %q is used more than once", f.Name), sectionFields, subject)
			}

			seen[f.Name] = struct{}{}
		}

		for _, other := range fields[i+1:] {
			if f.LineType.OrDefault() == other.LineType.OrDefault() && f.Overlaps(other) {
				res.AddWarning("overlapping_fields",
					fmt.Sprintf("range %d-%d overlaps %q (%d-%d)", f.Start, f.End, other.Name, other.Start, other.End),
					sectionFields, subject)
			}
		}
	}

	return res
}

// Slice returns the characters of line covered by f, or "" when the line is shorter.
func Slice(line string, f FieldDefinition) string {
	runes := []rune(strings.TrimRight(line, "\r\n"))
	if f.Start < 1 || f.Start > len(runes) || f.End < f.Start {
		return ""
	}

	return string(runes[f.Start-1 : min(f.End, len(runes))])
}
