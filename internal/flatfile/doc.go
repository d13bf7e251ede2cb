// Package flatfile describes the columns of fixed-width ("flat") text files.
//
// DetectSegments looks at one sample line and proposes a column for every
// maximal run of characters other than space and tab. Offsets are 1-based,
// inclusive and counted in characters (runes):
//
//	John      35  Paris
//
// gives John at 1-4, 35 at 11-12 and Paris at 15-19.
//
// The suggested names come from a small content classifier (letters,
// digits, length) and are only a starting point for manual editing. When a
// line has no segment at all, four equal-width placeholder fields are
// returned so there is always something to edit.
//
// FieldSet is the editable list of definitions the user submits with the
// flat file.
package flatfile
