package source

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"mapconf/internal/common"
	"mapconf/internal/flatfile"
)

// Fields returns the source field names of content.
// For FLAT the names come from flat, the current field definitions.
func Fields(ft FileType, name, content string, flat []flatfile.FieldDefinition) ([]string, error) {
	switch ft {
	case CSV:
		return CSVHeader(content, Delimiter(name))
	case XML:
		return XMLElements(content)
	case FLAT:
		names := make([]string, 0, len(flat))
		for _, f := range flat {
			names = append(names, f.Name)
		}

		return common.UniqueBy(names, func(s string) string { return s }), nil
	default:
		return nil, fmt.Errorf("unknown file type %q", ft)
	}
}

// Delimiter returns the CSV delimiter for the file name: tab for .tsv, comma otherwise.
func Delimiter(name string) rune {
	if strings.EqualFold(filepath.Ext(name), ".tsv") {
		return '\t'
	}

	return ','
}

// CSVHeader returns the trimmed, non-empty cells of the first record.
func CSVHeader(content string, comma rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	names := make([]string, 0, len(record))
	for _, cell := range record {
		if cell = strings.TrimSpace(cell); cell != "" {
			names = append(names, cell)
		}
	}

	return names, nil
}

// XMLElements returns every distinct element name in order of first appearance.
// Parsing is lenient; the names collected before a syntax error are returned
// with the error.
func XMLElements(content string) ([]string, error) {
	d := xml.NewDecoder(strings.NewReader(content))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose

	var (
		names []string
		seen  = map[string]struct{}{}
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return names, nil
		}

		if err != nil {
			return names, fmt.Errorf("failed to read XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if _, dup := seen[start.Name.Local]; dup {
			continue
		}

		seen[start.Name.Local] = struct{}{}
		names = append(names, start.Name.Local)
	}
}
