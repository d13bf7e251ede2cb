package structure

import (
	"bytes"
	"strings"

	"github.com/valyala/fastjson"
)

// maxParseDepth is the deepest container level kept when a document is
// nested beyond what fastjson accepts. The replacement "[0]" adds two levels.
const maxParseDepth = fastjson.MaxDepth - 2

// isDepthError reports the fastjson error for a document nested beyond
// fastjson.MaxDepth, which carries no type of its own.
func isDepthError(err error) bool {
	return strings.Contains(err.Error(), "too big depth")
}

// pruneDepth replaces every container opened at nesting level limit
// (the root being level 0) with "[0]", or "[]" when it is empty.
// The walker turns such a container into a placeholder entry, so the
// result extracts the same paths as the full document.
// It reports false when nothing was pruned or the brackets do not balance.
func pruneDepth(raw []byte, limit int) ([]byte, bool) {
	var (
		out    bytes.Buffer
		depth  int
		pruned bool
	)

	out.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		switch c {
		case '"':
			end := skipString(raw, i)
			if end < 0 {
				return nil, false
			}

			out.Write(raw[i:end])
			i = end - 1

			continue
		case '{', '[':
			if depth == limit {
				end, empty := skipContainer(raw, i)
				if end < 0 {
					return nil, false
				}

				if empty {
					out.WriteString("[]")
				} else {
					out.WriteString("[0]")
				}

				pruned = true
				i = end - 1

				continue
			}

			depth++
		case '}', ']':
			depth--
		}

		out.WriteByte(c)
	}

	return out.Bytes(), pruned
}

// skipString returns the offset just past the string literal opened at
// raw[start], or -1 when it is not terminated.
func skipString(raw []byte, start int) int {
	for i := start + 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}

	return -1
}

// skipContainer returns the offset just past the container opened at
// raw[start] and whether it holds nothing but whitespace.
func skipContainer(raw []byte, start int) (int, bool) {
	depth := 0
	empty := true

	for i := start; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '"':
			end := skipString(raw, i)
			if end < 0 {
				return -1, false
			}

			empty = false
			i = end - 1
		case '{', '[':
			if depth > 0 {
				empty = false
			}

			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1, empty
			}
		case ' ', '\t', '\r', '\n':
		default:
			empty = false
		}
	}

	return -1, false
}
