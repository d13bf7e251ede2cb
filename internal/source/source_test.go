package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconf/internal/flatfile"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name    string
		want    FileType
		wantErr bool
	}{
		{"clients.csv", CSV, false},
		{"CLIENTS.TSV", CSV, false},
		{"feed.xml", XML, false},
		{"page.xhtml", XML, false},
		{"icon.svg", XML, false},
		{"export.txt", FLAT, false},
		{"export.DAT", FLAT, false},
		{"data.json", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFileType(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileType(t *testing.T) {
	ft, err := ParseFileType(" flat ")
	require.NoError(t, err)
	assert.Equal(t, FLAT, ft)
	assert.Equal(t, []string{".txt", ".dat"}, ft.Extensions())

	_, err = ParseFileType("json")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		enc  Encoding
	}{
		{"utf-8", []byte("Zoé"), "Zoé", UTF8},
		{"utf-8 bom", []byte("\xEF\xBB\xBFid,name"), "id,name", UTF8BOM},
		{"utf-16le", []byte{0xFF, 0xFE, 'i', 0, 'd', 0}, "id", UTF16LE},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'i', 0, 'd'}, "id", UTF16BE},
		{"latin-1", []byte("Zo\xe9 M\xfcller"), "Zoé Müller", ISO8859_1},
		{"empty", nil, "", UTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.enc, enc)
		})
	}
}

func TestCSVHeader(t *testing.T) {
	got, err := CSVHeader(" id , name,,\"city, region\"\n1,a,,b\n", ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "city, region"}, got)

	got, err = CSVHeader("id\tname\n", Delimiter("x.tsv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, got)

	got, err = CSVHeader("", ',')
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestXMLElements(t *testing.T) {
	doc := `<?xml version="1.0"?>
<clients>
  <client id="1"><nom>Dupont</nom><prenom>Jean</prenom></client>
  <client id="2"><nom>Martin</nom><ville>Lyon</ville></client>
</clients>`

	got, err := XMLElements(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"clients", "client", "nom", "prenom", "ville"}, got)
}

func TestFields_Flat(t *testing.T) {
	got, err := Fields(FLAT, "x.txt", "ignored", flatfile.DefaultFields())
	require.NoError(t, err)
	assert.Equal(t, []string{"last_name", "first_name", "age", "city"}, got)

	_, err = Fields("JSON", "x.json", "", nil)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	s, err := Load("export.txt", []byte("DUPONT    JEAN  42\nMARTIN    PAUL  37\n"), "", nil)
	require.NoError(t, err)

	assert.Equal(t, FLAT, s.Type)
	assert.Equal(t, []string{"first_name", "age"}, s.Fields, "duplicate names are listed once")
	require.Len(t, s.Segments, 3)
	assert.Equal(t, "DUPONT    JEAN  42", s.FirstLine())
	assert.Equal(t, "38 B", s.HumanSize())

	s, err = Load("clients.csv", []byte("\xEF\xBB\xBFid,nom\n1,Dupont\n"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "nom"}, s.Fields)
	assert.Equal(t, UTF8BOM, s.Encoding)
	assert.Nil(t, s.Segments)

	_, err = Load("clients.json", []byte("{}"), "", nil)
	require.Error(t, err)
}

func TestLoad_PositionalNaming(t *testing.T) {
	s, err := Load("data", []byte("A1 B2"), FLAT, &flatfile.Detector{Naming: flatfile.NamingPositional})
	require.NoError(t, err)
	assert.Equal(t, []string{"field1", "field2"}, s.Fields)
}
