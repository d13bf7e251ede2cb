// Package log builds the zap loggers used by the CLI and the libraries.
//
// Console output is split by level: info (and debug when verbose) goes to
// stdout, warnings and errors go to stderr. An optional log file receives
// every level as JSON lines.
package log
