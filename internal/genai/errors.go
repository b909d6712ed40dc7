package genai

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates no API key was available when a request was made.
var ErrMissingAPIKey = errors.New("genai: API_KEY is not set")

// APIError is an error answer from the service.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("genai: error %d (%s): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("genai: error %d: %s", e.Code, e.Message)
}
