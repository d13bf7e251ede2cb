package source

import (
	"fmt"

	"github.com/c2h5oh/datasize"

	"mapconf/internal/flatfile"
)

// Sample is a decoded sample file and what was learned from it.
type Sample struct {
	Name     string
	Size     datasize.ByteSize
	Type     FileType
	Encoding Encoding
	Content  string
	// Fields are the source field names.
	Fields []string
	// Segments are the detected flat field definitions, FLAT only.
	Segments []flatfile.FieldDefinition
}

// Load decodes data and extracts its fields. An empty ft is detected from
// the name. A nil detector uses the default one.
func Load(name string, data []byte, ft FileType, det *flatfile.Detector) (*Sample, error) {
	if ft == "" {
		detected, err := DetectFileType(name)
		if err != nil {
			return nil, err
		}

		ft = detected
	}

	if !ft.IsValid() {
		return nil, fmt.Errorf("unknown file type %q", ft)
	}

	content, enc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", name, err)
	}

	s := &Sample{
		Name:     name,
		Size:     datasize.ByteSize(len(data)),
		Type:     ft,
		Encoding: enc,
		Content:  content,
	}

	if ft == FLAT {
		if det == nil {
			det = &flatfile.Detector{}
		}

		s.Segments = det.DetectContent(content)
	}

	s.Fields, err = Fields(ft, name, content, s.Segments)
	if err != nil {
		return s, fmt.Errorf("failed to read fields of %q: %w", name, err)
	}

	return s, nil
}

// HumanSize renders the size, e.g. "2.0 KB".
func (s *Sample) HumanSize() string {
	return s.Size.HumanReadable()
}

// Lines returns up to n non-blank lines of the content.
func (s *Sample) Lines(n int) []string {
	return flatfile.SampleOf(s.Content, n)
}

// FirstLine returns the first non-blank line, or "".
func (s *Sample) FirstLine() string {
	if lines := s.Lines(1); len(lines) > 0 {
		return lines[0]
	}

	return ""
}
