// Package source inspects the sample file a mapping is configured from.
//
// A sample is one of three kinds:
//
//   - CSV: the header row names the source fields.
//   - XML: every distinct element name is a candidate source field.
//   - FLAT: fixed-width text, fields are defined by character ranges
//     (see package flatfile) and proposed from the first non-blank line.
//
// Uploads are converted to UTF-8 before inspection. A UTF-8 byte order
// mark is dropped, UTF-16 input is recognised by its byte order mark and
// anything that is not valid UTF-8 is read as ISO-8859-1, the usual
// encoding of legacy fixed-width exports.
//
// Example:
//
//	s, err := source.Load("clients.csv", data, "", nil)
//	if err != nil {
//		return err
//	}
//	fmt.Println(s.Type, s.HumanSize(), s.Fields)
package source
