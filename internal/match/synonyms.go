package match

import "slices"

// defaultSynonymGroups lists names that denote the same value.
// Each group starts with the canonical flat field name.
var defaultSynonymGroups = [][]string{
	{"last_name", "nom", "name", "fullName", "lastName"},
	{"first_name", "prenom", "firstName", "givenName"},
	{"age", "years"},
	{"city", "ville", "location"},
	{"id", "operationID"},
	{"type", "category"},
}

// Synonyms maps normalized names to the groups they belong to.
type Synonyms struct {
	groups [][]string
	index  map[string][]int
}

// DefaultSynonyms returns the built-in synonym groups.
func DefaultSynonyms() *Synonyms {
	s := &Synonyms{}
	for _, g := range defaultSynonymGroups {
		s.Add(g...)
	}

	return s
}

// Add registers names as one group.
func (s *Synonyms) Add(names ...string) {
	if len(names) == 0 {
		return
	}

	if s.index == nil {
		s.index = map[string][]int{}
	}

	gi := len(s.groups)
	s.groups = append(s.groups, slices.Clone(names))

	for _, n := range names {
		key := NormalizeName(n)
		if !slices.Contains(s.index[key], gi) {
			s.index[key] = append(s.index[key], gi)
		}
	}
}

// Match reports whether a and b are the same name or share a group.
func (s *Synonyms) Match(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == nb {
		return true
	}

	if s == nil {
		return false
	}

	for _, gi := range s.index[na] {
		if slices.Contains(s.index[nb], gi) {
			return true
		}
	}

	return false
}

// Of returns the names grouped with name, name itself excluded.
func (s *Synonyms) Of(name string) []string {
	if s == nil {
		return nil
	}

	key := NormalizeName(name)

	var out []string

	for _, gi := range s.index[key] {
		for _, n := range s.groups[gi] {
			if NormalizeName(n) != key && !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}

	return out
}
