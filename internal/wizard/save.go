package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/valyala/fastjson"

	"mapconf/internal/backend"
	"mapconf/internal/mapping"
	"mapconf/internal/source"
	"mapconf/internal/structure"
)

// Save stores the complete entries on the backend and asks it to generate
// the output. It returns the id of the saved mapping. A failed generation is
// logged only, the output can still be fetched later.
func (s *Session) Save(ctx context.Context) (int64, error) {
	if err := s.requireStructure(); err != nil {
		return 0, err
	}

	if s.destination == "" {
		return 0, ErrNoDestination
	}

	valid := s.mappings.Valid()
	if len(valid) == 0 {
		return 0, fmt.Errorf("%w: no complete mapping", ErrStepNotReady)
	}

	if diags := s.Validate(); diags.HasErrors() {
		return 0, fmt.Errorf("mapping is invalid: %w", diags.Error())
	}

	cm, err := s.client.SaveMapping(ctx, backend.MappingDTO{FileDestinationName: s.destination})
	if err != nil {
		return 0, err
	}

	dtos := backend.ConfigMappingDTOs(valid, s.paths, s.sourceType(), cm.ID, s.fileID)
	s.dump("Mapping details", dtos)

	if _, err := s.client.SaveConfigMapping(ctx, dtos); err != nil {
		return 0, err
	}

	s.configMappingID = cm.ID
	s.logger.Infof(`Saved mapping %d with %d entries for destination "%s".`, cm.ID, len(dtos), s.destination)

	if _, err := s.client.GenerateJSON(ctx); err != nil {
		s.logger.Warnf("JSON generation failed: %s", err)
	}

	return cm.ID, nil
}

// Output is the generated JSON of a saved mapping.
type Output struct {
	// Raw is the content as the backend returned it.
	Raw string
	// JSON is Raw indented, or Raw itself when it is not JSON.
	JSON string
	// Records is the length of a top-level array, otherwise 1.
	Records int
}

// Results fetches the output generated for the saved mapping.
func (s *Session) Results(ctx context.Context) (*Output, error) {
	if s.configMappingID == 0 {
		return nil, fmt.Errorf("%w: save the mapping first", ErrStepNotReady)
	}

	name := s.destination
	if name == "" {
		name = DefaultOutputFile
	}

	raw, err := s.client.FetchOutput(ctx, name)
	if err != nil {
		return nil, err
	}

	out := NewOutput(raw)
	s.logger.Infof("Fetched the generated JSON, %d records.", out.Records)

	return out, nil
}

// NewOutput formats raw generated content. When raw is not JSON, the first
// JSON document found inside it is used.
func NewOutput(raw string) *Output {
	out := &Output{Raw: raw, JSON: raw, Records: 1}

	doc := raw
	if fastjson.Validate(doc) != nil {
		extracted, ok := backend.ExtractJSON(raw)
		if !ok {
			return out
		}

		doc = extracted
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(doc), "", "  "); err != nil {
		return out
	}

	out.JSON = buf.String()

	if v, err := fastjson.Parse(doc); err == nil && v.Type() == fastjson.TypeArray {
		arr, _ := v.Array()
		out.Records = len(arr)
	}

	return out
}

// Export returns a mapping file describing the session.
func (s *Session) Export() *mapping.MappingFile {
	mf := &mapping.MappingFile{
		Version:     mapping.CurrentVersion,
		Destination: mapping.DestinationDef{Name: s.destination, File: s.structureName},
		Structure:   slices.Clone(s.paths),
		Mappings:    s.mappings.Entries(),
	}

	if s.sample != nil {
		mf.Source = mapping.SourceDef{File: s.sample.Name, Type: s.sample.Type}

		if s.sample.Type == source.FLAT {
			mf.Fields = s.fields.Fields()
		} else {
			mf.Source.Fields = slices.Clone(s.sample.Fields)
		}
	}

	return mf
}

// Import restores a session from a mapping file. Relative file paths are
// resolved against dir. Structure entries of the file override the line
// types and positions of the extracted paths.
func (s *Session) Import(mf *mapping.MappingFile, dir string) error {
	if mf.Source.File != "" {
		data, err := os.ReadFile(resolve(dir, mf.Source.File))
		if err != nil {
			return fmt.Errorf("failed to read source file: %w", err)
		}

		if _, err := s.LoadSource(filepath.Base(mf.Source.File), data, mf.Source.Type); err != nil {
			return err
		}
	}

	if len(mf.Fields) > 0 {
		s.ApplyFields(mf.Fields)
	}

	switch {
	case mf.Destination.File != "":
		data, err := os.ReadFile(resolve(dir, mf.Destination.File))
		if err != nil {
			return fmt.Errorf("failed to read structure file: %w", err)
		}

		if _, err := s.LoadStructure(filepath.Base(mf.Destination.File), data); err != nil {
			return err
		}

		overlay(s.paths, mf.Structure)
	case len(mf.Structure) > 0:
		s.SetStructure(mf.Structure)
	}

	s.destination = mf.Destination.Name

	normalized := *mf
	for _, e := range mapping.Normalize(&normalized) {
		s.logger.Debugf("Mapping %s is overridden.", e)
	}

	return s.SetMappings(append(normalized.Mappings, normalized.Auto...))
}

func (s *Session) sourceType() source.FileType {
	if s.sample == nil {
		return source.FLAT
	}

	return s.sample.Type
}

// overlay copies line types and positions of the matching paths.
func overlay(paths, from []structure.JSONPathEntry) {
	for _, f := range from {
		i := slices.IndexFunc(paths, func(p structure.JSONPathEntry) bool { return p.Path == f.Path })
		if i < 0 {
			continue
		}

		paths[i].LineType = f.LineType.OrDefault()

		if f.Start > 0 && f.End > 0 {
			paths[i].Start = f.Start
			paths[i].End = f.End
		}
	}
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
