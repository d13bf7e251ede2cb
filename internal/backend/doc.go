// Package backend is the HTTP client of the conversion backend.
//
// The backend stores uploaded sample files, JSON target structures and
// mapping configurations, and generates the converted JSON output. Wire
// field names mirror the backend exactly, including its misspellings
// (keyPayh, keyDistination, valueDistination, fileDestinqtionJson), so they
// must not be "fixed" here.
//
// Every failed call returns an *APIError carrying the backend's response
// text, or a fixed per-operation message when the body is empty.
package backend
