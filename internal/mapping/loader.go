package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mapconf/internal/source"
)

// CurrentVersion is the schema version written by Marshal.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	if mf.Source.Type == "" && mf.Source.File != "" {
		if ft, err := source.DetectFileType(mf.Source.File); err == nil {
			mf.Source.Type = ft
		}
	}

	for i := range mf.Fields {
		mf.Fields[i].ID = i + 1
		mf.Fields[i].LineType = mf.Fields[i].LineType.OrDefault()
	}

	for i := range mf.Structure {
		mf.Structure[i].LineType = mf.Structure[i].LineType.OrDefault()
	}

	for _, entries := range [][]MappingEntry{mf.Mappings, mf.Auto} {
		for i := range entries {
			e := &entries[i]
			e.Status = e.Status.OrDefault()

			if e.LineNumber == 0 {
				e.LineNumber = DefaultLineNumber
			}
		}
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// Normalize expands Pairs into Mappings and drops every entry whose
// destination is owned by a higher-priority one, or by an earlier entry of
// the same tier. It returns the dropped entries.
func Normalize(mf *MappingFile) []MappingEntry {
	var dropped []MappingEntry

	taken := map[string]struct{}{}
	claim := func(entries []MappingEntry) []MappingEntry {
		kept := make([]MappingEntry, 0, len(entries))

		for _, e := range entries {
			if e.Destination != "" {
				if _, ok := taken[e.Destination]; ok {
					dropped = append(dropped, e)
					continue
				}

				taken[e.Destination] = struct{}{}
			}

			kept = append(kept, e)
		}

		return kept
	}

	// Pairs have highest priority, so they go first
	pairs := make([]MappingEntry, 0, len(mf.Pairs))
	for _, p := range mf.Pairs {
		pairs = append(pairs, MappingEntry{
			Source:      p.Source,
			Destination: p.Destination,
			Status:      DefaultStatus,
			LineNumber:  DefaultLineNumber,
		})
	}

	mappings := claim(pairs)
	mappings = append(mappings, claim(mf.Mappings)...)
	auto := claim(mf.Auto)

	mf.Pairs = nil
	mf.Mappings = mappings
	mf.Auto = auto

	return dropped
}

// Set returns the explicit mappings of mf as a MappingSet.
func (mf *MappingFile) Set() (*MappingSet, error) {
	return NewMappingSet(mf.Mappings...)
}
