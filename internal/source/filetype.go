package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// FileType is the kind of sample file.
type FileType string

const (
	CSV  FileType = "CSV"
	XML  FileType = "XML"
	FLAT FileType = "FLAT"
)

var extensions = map[FileType][]string{
	CSV:  {".csv", ".tsv"},
	XML:  {".xml", ".xhtml", ".svg"},
	FLAT: {".txt", ".dat"},
}

// FileTypes returns the supported types in display order.
func FileTypes() []FileType {
	return []FileType{CSV, XML, FLAT}
}

// Extensions returns the file extensions accepted for the type.
func (t FileType) Extensions() []string {
	return slices.Clone(extensions[t])
}

// Accepts reports whether the file name has an extension of the type.
func (t FileType) Accepts(name string) bool {
	return slices.Contains(extensions[t], strings.ToLower(filepath.Ext(name)))
}

// IsValid reports whether t is a known type.
func (t FileType) IsValid() bool {
	_, ok := extensions[t]
	return ok
}

// ParseFileType accepts a type name in any case.
func ParseFileType(s string) (FileType, error) {
	t := FileType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown file type %q, expected one of CSV, XML, FLAT", s)
	}

	return t, nil
}

// DetectFileType guesses the type from the file extension.
func DetectFileType(name string) (FileType, error) {
	for _, t := range FileTypes() {
		if t.Accepts(name) {
			return t, nil
		}
	}

	return "", fmt.Errorf("cannot detect file type of %q", name)
}
