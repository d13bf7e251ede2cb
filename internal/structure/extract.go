package structure

import (
	"bytes"

	"github.com/gofrs/uuid/v5"
	"github.com/valyala/fastjson"

	"mapconf/internal/common"
	"mapconf/internal/linetype"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor walks parsed JSON documents and collects their leaf paths.
// The zero value uses DefaultMaxDepth and DefaultPreviewLength.
type Extractor struct {
	// MaxDepth is the number of nested containers expanded before a branch
	// is replaced by a placeholder entry.
	MaxDepth int
	// PreviewLength bounds ExampleValue, in runes.
	PreviewLength int
}

// NewExtractor returns an Extractor with the default bounds.
func NewExtractor() *Extractor {
	return &Extractor{
		MaxDepth:      DefaultMaxDepth,
		PreviewLength: DefaultPreviewLength,
	}
}

// ExtractLeafPaths runs the default Extractor.
func ExtractLeafPaths(value *fastjson.Value, prefix string) []JSONPathEntry {
	return NewExtractor().ExtractLeafPaths(value, prefix)
}

// ExtractLeafPaths returns one entry per primitive leaf reachable from value,
// in document order. Paths are de-duplicated, keeping the first entry.
// It never fails; the returned entries have no ID.
func (x *Extractor) ExtractLeafPaths(value *fastjson.Value, prefix string) []JSONPathEntry {
	var out []JSONPathEntry

	x.walk(value, prefix, 0, &out)

	return common.UniqueBy(out, func(e JSONPathEntry) string { return e.Path })
}

// Parse parses raw JSON text and extracts its leaf paths, giving each entry
// a fresh ID. Malformed input yields a *ParseError. A document nested deeper
// than the parser accepts is cut at the depth limit first.
func (x *Extractor) Parse(name string, raw []byte) ([]JSONPathEntry, error) {
	var p fastjson.Parser

	raw = bytes.TrimPrefix(raw, utf8BOM)

	v, err := p.ParseBytes(raw)
	if err != nil {
		if !isDepthError(err) {
			return nil, &ParseError{Name: name, Err: err}
		}

		pruned, ok := pruneDepth(raw, x.maxDepth())
		if !ok {
			return nil, &ParseError{Name: name, Err: err}
		}

		if v, err = p.ParseBytes(pruned); err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
	}

	entries := x.ExtractLeafPaths(v, "")
	for i := range entries {
		entries[i].ID = uuid.Must(uuid.NewV4()).String()
	}

	return entries, nil
}

func (x *Extractor) walk(v *fastjson.Value, prefix string, depth int, out *[]JSONPathEntry) {
	if v == nil {
		return
	}

	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		if obj.Len() == 0 {
			return
		}

		if depth >= x.maxDepth() {
			x.placeholder(prefix, out)
			return
		}

		obj.Visit(func(key []byte, child *fastjson.Value) {
			x.walk(child, joinKey(prefix, string(key)), depth+1, out)
		})

	case fastjson.TypeArray:
		items, _ := v.Array()
		if len(items) == 0 {
			return
		}

		if depth >= x.maxDepth() {
			x.placeholder(prefix, out)
			return
		}

		x.walk(items[0], prefix+Wildcard, depth+1, out)

	default:
		// A bare primitive document has no addressable path.
		if prefix == "" {
			return
		}

		*out = append(*out, JSONPathEntry{
			Path:         prefix,
			ExampleValue: common.Truncate(render(v), x.previewLength()),
			LineType:     linetype.Default,
		})
	}
}

func (x *Extractor) placeholder(prefix string, out *[]JSONPathEntry) {
	if prefix == "" {
		return
	}

	*out = append(*out, JSONPathEntry{
		Path:         prefix,
		ExampleValue: DepthLimitValue,
		LineType:     linetype.Default,
		DepthLimited: true,
	})
}

func (x *Extractor) maxDepth() int {
	switch {
	case x.MaxDepth <= 0:
		return DefaultMaxDepth
	case x.MaxDepth > maxParseDepth:
		return maxParseDepth
	default:
		return x.MaxDepth
	}
}

func (x *Extractor) previewLength() int {
	if x.PreviewLength <= 0 {
		return DefaultPreviewLength
	}

	return x.PreviewLength
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

// render returns the textual form of a primitive: strings unquoted,
// numbers as written in the document.
func render(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNull:
		return "null"
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	default:
		return string(v.MarshalTo(nil))
	}
}
