// Package cli implements the mapconf command line.
//
// Every step of the mapping wizard is a sub-command. The inspection commands
// (paths, segments, fields, automap, validate) work offline; the others talk
// to the conversion backend configured by --api-url.
package cli
