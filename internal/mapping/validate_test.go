package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconf/internal/structure"
)

const baseYAML = `
source:
  type: CSV
  fields: [nom, prenom, age]
destination:
  name: clients
structure:
  - path: client.name
  - path: client.firstName
  - path: items[*].qty
`

func parseWith(t *testing.T, extra string) *MappingFile {
	t.Helper()

	mf, err := Parse([]byte(baseYAML + extra))
	require.NoError(t, err)

	return mf
}

func TestValidate_ValidMapping(t *testing.T) {
	mf := parseWith(t, `
mappings:
  - source: nom
    destination: client.name
  - source: age
    destination: items[*].qty
`)

	res := Validate(mf)
	assert.True(t, res.IsValid(), "unexpected errors: %v", res.Error())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		codes []string
	}{
		{
			name:  "destination not in structure",
			extra: "mappings:\n  - source: nom\n    destination: client.city\n",
			codes: []string{"destination_not_found"},
		},
		{
			name:  "invalid destination syntax",
			extra: "mappings:\n  - source: nom\n    destination: items[0].qty\n",
			codes: []string{"invalid_destination_path"},
		},
		{
			name:  "unknown source",
			extra: "mappings:\n  - source: ville\n    destination: client.name\n",
			codes: []string{"source_not_found"},
		},
		{
			name: "duplicate destination",
			extra: `mappings:
  - source: nom
    destination: client.name
  - source: prenom
    destination: client.name
`,
			codes: []string{"duplicate_destination"},
		},
		{
			name:  "unknown status",
			extra: "mappings:\n  - source: nom\n    destination: client.name\n    status: XX\n",
			codes: []string{"invalid_status"},
		},
		{
			name:  "inverted range",
			extra: "mappings:\n  - source: nom\n    destination: client.name\n    start: 9\n    end: 2\n",
			codes: []string{"invalid_range"},
		},
		{
			name: "duplicate pairs",
			extra: `pairs:
  nom: client.name
  prenom: client.name
`,
			codes: []string{"duplicate_destination"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(parseWith(t, tt.extra))
			assert.Equal(t, tt.codes, res.Codes())
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	mf := parseWith(t, `
mappings:
  - source: nom
    destination: ""
`)
	mf.Destination.Name = ""

	res := Validate(mf)
	assert.True(t, res.IsValid())

	var codes []string
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []string{"missing_destination", "incomplete_mapping", "no_mappings"}, codes)
}

func TestValidate_Priority(t *testing.T) {
	mf := parseWith(t, `
pairs:
  prenom: client.firstName
mappings:
  - source: nom
    destination: client.firstName
  - source: nom
    destination: client.name
auto:
  - source: age
    destination: client.name
    score: 0.8
`)

	res := Validate(mf)
	assert.True(t, res.IsValid(), "unexpected errors: %v", res.Error())
	require.Len(t, res.Infos, 2)
	assert.Equal(t, "mapping_overridden", res.Infos[0].Code)
	assert.Equal(t, "auto_overridden", res.Infos[1].Code)
}

func TestValidate_FlatFields(t *testing.T) {
	yaml := `
source:
  type: FLAT
destination:
  name: out
fields:
  - name: last_name
    start: 1
    end: 9
  - name: age
    start: 8
    end: 8
mappings:
  - source: last_name
    destination: client.name
  - source: city
    destination: client.city
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)

	res := Validate(mf)
	assert.Equal(t, []string{"invalid_field", "source_not_found"}, res.Codes())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "overlapping_fields", res.Warnings[0].Code)
}

func TestValidate_FlatWithoutFields(t *testing.T) {
	mf := &MappingFile{Source: SourceDef{Type: "FLAT"}, Destination: DestinationDef{Name: "x"}}

	res := Validate(mf)
	assert.Equal(t, []string{"no_fields"}, res.Codes())
}

func TestValidate_Structure(t *testing.T) {
	mf := &MappingFile{Destination: DestinationDef{Name: "x"}}
	mf.Structure = append(mf.Structure,
		entry("a.b", 0, 0),
		entry("a.b", 0, 0),
		entry("a..b", 0, 0),
		entry("c", 5, 1),
	)

	res := Validate(mf)
	assert.Equal(t, []string{"duplicate_path", "invalid_path", "invalid_range"}, res.Codes())
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	assert.Equal(t, []string{"mapping_is_nil"}, res.Codes())
}

func entry(path string, start, end int) structure.JSONPathEntry {
	return structure.JSONPathEntry{Path: path, Start: start, End: end}
}
