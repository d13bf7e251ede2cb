package backend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Fallback messages used when the backend answers an error without a body.
const (
	msgUpload            = "failed to upload the file"
	msgUploadStructure   = "failed to upload the JSON structure"
	msgStructures        = "failed to get the JSON structures"
	msgDestinations      = "failed to get the destinations"
	msgStructureKeys     = "failed to get the structure keys"
	msgFileDetails       = "failed to get the file details"
	msgSaveConfigMapping = "failed to save the configuration"
	msgSaveMapping       = "failed to save the mapping"
	msgGenerate          = "failed to generate the JSON file"
	msgFetchOutput       = "failed to get the generated JSON content"
)

// APIError is a non-2xx answer of the backend.
type APIError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func newAPIError(res *resty.Response, fallback string) *APIError {
	msg := strings.TrimSpace(res.String())
	if msg == "" {
		msg = fallback
	}

	return &APIError{
		Method:  res.Request.Method,
		URL:     res.Request.URL,
		Status:  res.StatusCode(),
		Message: msg,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s %s, status %d)", e.Message, e.Method, e.URL, e.Status)
}

// IsNotFound returns true for 404 answers.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}
