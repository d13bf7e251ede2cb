package mapping

import (
	"fmt"

	"mapconf/internal/diagnostic"
	"mapconf/internal/flatfile"
	"mapconf/internal/source"
)

// Diagnostic sections.
const (
	SectionFile      = "file"
	SectionFields    = "fields"
	SectionStructure = "structure"
	SectionMappings  = "mappings"
	SectionAuto      = "auto"
)

// Validate checks a mapping file for problems that would make the backend
// reject it or produce an empty output. Destinations are checked against the
// structure and sources against the known fields, when those are present.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if mf.Source.Type != "" && !mf.Source.Type.IsValid() {
		res.AddError("unknown_source_type", fmt.Sprintf("unknown source type %q", mf.Source.Type), SectionFile, "")
	}

	if mf.Destination.Name == "" {
		res.AddWarning("missing_destination", "destination name is empty", SectionFile, "")
	}

	if mf.Source.Type == source.FLAT || len(mf.Fields) > 0 {
		res.Merge(*flatfile.ValidateFields(mf.Fields))
	}

	paths := validateStructure(res, mf)
	sources := knownSources(mf)

	// Pairs first: they win over explicit entries.
	owned := map[string]owner{}

	for _, p := range mf.Pairs {
		e := MappingEntry{Source: p.Source, Destination: p.Destination, Status: DefaultStatus}
		validateEntry(res, SectionMappings, e, paths, sources)
		claim(res, owned, e, tierPairs)
	}

	for _, e := range mf.Mappings {
		if !e.IsComplete() {
			res.AddWarning("incomplete_mapping",
				fmt.Sprintf("mapping %s is incomplete and will not be saved", e), SectionMappings, e.Destination)

			continue
		}

		if by, ok := owned[e.Destination]; ok && by.tier == tierPairs {
			res.AddInfo("mapping_overridden", fmt.Sprintf("mapping %s is overridden by %s", e, by), SectionMappings, e.Destination)
			continue
		}

		validateEntry(res, SectionMappings, e, paths, sources)
		claim(res, owned, e, tierMappings)
	}

	for _, e := range mf.Auto {
		if by, ok := owned[e.Destination]; ok {
			res.AddInfo("auto_overridden", fmt.Sprintf("suggestion %s is overridden by %s", e, by), SectionAuto, e.Destination)
			continue
		}

		validateEntry(res, SectionAuto, e, paths, sources)
	}

	if len(owned) == 0 {
		res.AddWarning("no_mappings", "no complete mapping is configured", SectionMappings, "")
	}

	return res
}

func validateStructure(res *diagnostic.Diagnostics, mf *MappingFile) map[string]struct{} {
	if len(mf.Structure) == 0 {
		return nil
	}

	paths := make(map[string]struct{}, len(mf.Structure))

	for _, key := range mf.Structure {
		if _, err := ParsePath(key.Path); err != nil {
			res.AddError("invalid_path", err.Error(), SectionStructure, key.Path)
			continue
		}

		if !key.LineType.OrDefault().IsValid() {
			res.AddError("invalid_line_type", fmt.Sprintf("unknown line type %q", key.LineType), SectionStructure, key.Path)
		}

		if key.Start != 0 || key.End != 0 {
			if key.Start < 1 || key.Start > key.End {
				res.AddError("invalid_range", fmt.Sprintf("invalid position range %d-%d", key.Start, key.End), SectionStructure, key.Path)
			}
		}

		if _, dup := paths[key.Path]; dup {
			res.AddError("duplicate_path", fmt.Sprintf("path %q is listed more than once", key.Path), SectionStructure, key.Path)
			continue
		}

		paths[key.Path] = struct{}{}
	}

	return paths
}

func knownSources(mf *MappingFile) map[string]struct{} {
	names := append([]string{}, mf.Source.Fields...)
	for _, f := range mf.Fields {
		names = append(names, f.Name)
	}

	if len(names) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}

	return known
}

func validateEntry(
	res *diagnostic.Diagnostics,
	section string,
	e MappingEntry,
	paths, sources map[string]struct{},
) {
	subject := e.Destination

	if _, err := ParsePath(e.Destination); err != nil {
		res.AddError("invalid_destination_path", fmt.Sprintf("invalid destination path: %v", err), section, subject)
	} else if paths != nil {
		if _, ok := paths[e.Destination]; !ok {
			res.AddError("destination_not_found", fmt.Sprintf("destination %q is not in the structure", e.Destination), section, subject)
		}
	}

	if sources != nil {
		if _, ok := sources[e.Source]; !ok {
			res.AddError("source_not_found", fmt.Sprintf("source field %q is not defined", e.Source), section, subject)
		}
	}

	if !e.Status.OrDefault().IsValid() {
		res.AddError("invalid_status", fmt.Sprintf("unknown status %q", e.Status), section, subject)
	}

	if !e.SourceLineType.OrDefault().IsValid() || !e.DestinationLineType.OrDefault().IsValid() {
		res.AddError("invalid_line_type",
			fmt.Sprintf("unknown line type %q -> %q", e.SourceLineType, e.DestinationLineType), section, subject)
	}

	if (e.Start != 0 || e.End != 0) && (e.Start < 1 || e.Start > e.End) {
		res.AddError("invalid_range", fmt.Sprintf("invalid position range %d-%d", e.Start, e.End), section, subject)
	}

	if e.LineNumber < 0 {
		res.AddError("invalid_line_number", fmt.Sprintf("line number %d must be positive", e.LineNumber), section, subject)
	}
}

const (
	tierPairs    = "pairs"
	tierMappings = "mappings"
)

type owner struct {
	tier  string
	entry MappingEntry
}

func (o owner) String() string {
	return fmt.Sprintf("%s (%s)", o.entry, o.tier)
}

// claim records the owner of the entry's destination, reporting duplicates within a tier.
func claim(res *diagnostic.Diagnostics, owned map[string]owner, e MappingEntry, tier string) {
	if by, ok := owned[e.Destination]; ok {
		res.AddError("duplicate_destination",
			fmt.Sprintf("destination %q is already mapped by %s", e.Destination, by), tier, e.Destination)

		return
	}

	owned[e.Destination] = owner{tier: tier, entry: e}
}
