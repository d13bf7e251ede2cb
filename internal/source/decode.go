package source

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the encoding an upload was read with.
type Encoding string

const (
	UTF8      Encoding = "utf-8"
	UTF8BOM   Encoding = "utf-8-bom"
	UTF16LE   Encoding = "utf-16le"
	UTF16BE   Encoding = "utf-16be"
	ISO8859_1 Encoding = "iso-8859-1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts data to a UTF-8 string.
func Decode(data []byte) (string, Encoding, error) {
	var (
		enc encoding.Encoding
		res Encoding
	)

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), UTF8BOM, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		enc, res = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		enc, res = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), UTF16BE
	case utf8.Valid(data):
		return string(data), UTF8, nil
	default:
		enc, res = charmap.ISO8859_1, ISO8859_1
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", res, fmt.Errorf("failed to decode %s: %w", res, err)
	}

	return string(out), res, nil
}
