package wizard

import (
	"errors"
	"fmt"

	"mapconf/internal/diagnostic"
	"mapconf/internal/mapping"
	"mapconf/internal/match"
	"mapconf/internal/source"
	"mapconf/internal/structure"
)

// Suggestion bounds for unknown sources and destinations.
const (
	SuggestionCount    = 3
	SuggestionMinScore = 0.5
)

// AutoMap maps the source fields no entry uses yet to the free structure
// paths. Accepted suggestions are added to the mapping set.
func (s *Session) AutoMap() (match.Result, error) {
	if err := s.requireSource(); err != nil {
		return match.Result{}, err
	}

	if err := s.requireStructure(); err != nil {
		return match.Result{}, err
	}

	sources := s.mappings.AvailableSources("", s.SourceFields())
	destinations := s.mappings.AvailableDestinations("", structure.Paths(s.paths))

	res := match.AutoMap(sources, destinations, s.matchOpts)

	for _, e := range res.Entries() {
		if _, err := s.mappings.AddEntry(e); err != nil {
			return res, fmt.Errorf("failed to add suggestion %s: %w", e, err)
		}
	}

	s.applyPositions()
	s.unmatched = res.Unmatched

	s.logger.Infof("Auto-mapping accepted %d of %d fields.", len(res.Accepted), len(sources))
	for _, u := range res.Unmatched {
		s.logger.Debugf(`Field "%s" not mapped: %s.`, u.Source, u.Reason)
	}

	return res, nil
}

// Unmatched returns the fields the last AutoMap could not place.
func (s *Session) Unmatched() []match.Unmatched {
	return s.unmatched
}

// Map adds one source -> destination entry.
func (s *Session) Map(src, dst string) (mapping.MappingEntry, error) {
	e, err := s.mappings.AddEntry(mapping.MappingEntry{Source: src, Destination: dst})
	if err != nil {
		return e, err
	}

	s.applyPositions()
	e, _ = s.mappings.Get(e.ID)

	return e, nil
}

// SetMappings replaces every entry, skipping those whose destination is
// already taken by an earlier one.
func (s *Session) SetMappings(entries []mapping.MappingEntry) error {
	next := &mapping.MappingSet{}

	for _, e := range entries {
		if _, err := next.AddEntry(e); err != nil {
			if errors.Is(err, mapping.ErrDestinationTaken) {
				s.logger.Warnf("Skipped mapping %s: %s.", e, err)
				continue
			}

			return err
		}
	}

	s.mappings = next
	s.applyPositions()

	return nil
}

// Validate checks the current state as it would be saved. Unknown sources
// and destinations get the closest known names as suggestions.
func (s *Session) Validate() *diagnostic.Diagnostics {
	mf := s.Export()
	res := mapping.Validate(mf)

	paths := structure.Paths(s.paths)
	sources := s.SourceFields()

	for i := range res.Errors {
		d := &res.Errors[i]

		switch d.Code {
		case "destination_not_found":
			d.Suggestions = match.Closest(d.Subject, paths, SuggestionCount, SuggestionMinScore)
		case "source_not_found":
			if e, ok := findByDestination(mf.Mappings, d.Subject); ok {
				d.Suggestions = match.Closest(e.Source, sources, SuggestionCount, SuggestionMinScore)
			}
		}
	}

	return res
}

// applyPositions refreshes the entry positions: flat fields first, then the
// structure, whose positions win.
func (s *Session) applyPositions() {
	if s.sample != nil && s.sample.Type == source.FLAT {
		s.mappings.ApplyFieldPositions(s.fields.Fields())
	}

	s.mappings.ApplyStructure(s.paths)
}

func findByDestination(entries []mapping.MappingEntry, dst string) (mapping.MappingEntry, bool) {
	for _, e := range entries {
		if e.Destination == dst {
			return e, true
		}
	}

	return mapping.MappingEntry{}, false
}
