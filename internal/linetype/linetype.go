// Package linetype defines the two-digit record category attached to flat
// fields and JSON leaf paths.
package linetype

import (
	"fmt"
	"strings"
)

// LineType is a two-digit code naming the logical record a field belongs to.
type LineType string

const (
	Header LineType = "01"
	Data   LineType = "02"
	Total  LineType = "03"
	Footer LineType = "04"

	// Default is assigned to every detected field and path until the user overrides it.
	Default = Data
)

var labels = map[LineType]string{
	Header: "header",
	Data:   "data",
	Total:  "total",
	Footer: "footer",
}

// All returns every known line type in code order.
func All() []LineType {
	return []LineType{Header, Data, Total, Footer}
}

// Parse accepts a code ("01"), a bare digit ("1") or a label ("header").
// An empty string yields Default.
func Parse(s string) (LineType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}

	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		s = "0" + s
	}

	if lt := LineType(s); lt.IsValid() {
		return lt, nil
	}

	for lt, label := range labels {
		if strings.EqualFold(label, s) {
			return lt, nil
		}
	}

	return "", fmt.Errorf("unknown line type %q", s)
}

// IsValid reports whether lt is one of the known codes.
func (lt LineType) IsValid() bool {
	_, ok := labels[lt]
	return ok
}

// OrDefault returns Default for the empty value.
func (lt LineType) OrDefault() LineType {
	if lt == "" {
		return Default
	}

	return lt
}

// Label returns the human-readable category name.
func (lt LineType) Label() string {
	if label, ok := labels[lt]; ok {
		return label
	}

	return "unknown"
}

func (lt LineType) String() string {
	return string(lt)
}

// Describe returns "02 - data".
func (lt LineType) Describe() string {
	return fmt.Sprintf("%s - %s", lt, lt.Label())
}

// MarshalText implements encoding.TextMarshaler.
func (lt LineType) MarshalText() ([]byte, error) {
	return []byte(lt.OrDefault()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lt *LineType) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}

	*lt = v

	return nil
}
