// Package diagnostic provides structured errors, warnings and notes
// produced while checking a mapping configuration.
//
// Key capabilities:
//   - Invalid flat field ranges and unknown line types
//   - Destination paths used more than once
//   - Source fields or destination paths that do not exist
//   - Incomplete mapping entries left over from editing
package diagnostic
