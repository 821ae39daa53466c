package common

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorItem is a single structured error within an API error response.
type ErrorItem struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is returned by the transport when the server answers with a
// non-2xx status. It carries the parsed error payload when the server
// provided one.
type APIError struct {
	Code    int
	Message string
	Errors  []ErrorItem

	// Response is the raw response the error was parsed from.
	Response *APIResponse
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("common: API error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("common: API error %d: %s", e.Code, http.StatusText(e.Code))
}

// errorBody matches the standard error envelope of Google-style APIs.
type errorBody struct {
	Error struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Errors  []ErrorItem `json:"errors"`
	} `json:"error"`
}

// NewAPIError builds an APIError from a non-2xx response, parsing the
// standard error envelope when present.
func NewAPIError(resp *APIResponse) *APIError {
	apiErr := &APIError{
		Code:     resp.StatusCode,
		Response: resp,
	}

	var body errorBody
	if json.Unmarshal(resp.Body, &body) == nil {
		apiErr.Message = body.Error.Message
		apiErr.Errors = body.Error.Errors
	}

	return apiErr
}
