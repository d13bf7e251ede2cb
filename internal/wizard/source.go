package wizard

import (
	"context"
	"fmt"

	"mapconf/internal/backend"
	"mapconf/internal/flatfile"
	"mapconf/internal/source"
)

// LoadSource decodes a sample file and learns its fields. For a FLAT
// sample the detected segments replace the field definitions. Loading a new
// sample forgets the previous upload.
func (s *Session) LoadSource(name string, data []byte, ft source.FileType) (*source.Sample, error) {
	sample, err := source.Load(name, data, ft, s.detector)
	if err != nil {
		return nil, err
	}

	s.sample = sample
	s.sourceRaw = data
	s.fileID = 0

	if sample.Type == source.FLAT {
		s.fields.Apply(sample.Segments)
	}

	s.logger.Infof(`Loaded %s file "%s" (%s, %s), %d fields.`,
		sample.Type, sample.Name, sample.HumanSize(), sample.Encoding, len(s.SourceFields()))
	s.dump("Source fields", s.SourceFields())

	return sample, nil
}

// ApplyFields replaces the flat field definitions, eg. from a mapping file.
func (s *Session) ApplyFields(fields []flatfile.FieldDefinition) {
	s.fields.Apply(fields)
}

// UploadSource sends the sample to the backend and returns its file id.
// A FLAT sample is refused while its field definitions are invalid. An
// answer without a recognizable id yields 0.
func (s *Session) UploadSource(ctx context.Context) (int64, error) {
	if err := s.requireSource(); err != nil {
		return 0, err
	}

	if s.sample.Type == source.FLAT {
		if diags := s.fields.Validate(); diags.HasErrors() {
			return 0, fmt.Errorf("invalid field definitions: %w", diags.Error())
		}
	}

	answer, err := s.client.UploadFile(ctx, s.sample.Name, s.sourceRaw)
	if err != nil {
		return 0, err
	}

	id, ok := backend.FileID(answer)
	if !ok {
		s.logger.Warnf(`Upload answer carries no file id: "%s".`, answer)
	}

	s.fileID = id
	s.logger.Infof(`Uploaded "%s", file id %d.`, s.sample.Name, id)

	return id, nil
}
