package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes a pending outgoing API request before dispatch.
// Interceptors may mutate it in place; the transport consumes it.
type Request struct {
	// Method is the HTTP method (http.MethodGet, http.MethodPost, ...).
	Method string

	// Path is the absolute request path, including the API version
	// segment (e.g. "/bigquery/v2/projects/p/jobs/j").
	Path string

	// Params holds URL query parameters.
	Params url.Values

	// Header holds additional request headers.
	Header http.Header

	// Body is the request payload, JSON-encoded by the transport.
	// Nil means no body.
	Body any
}

// SetParam sets a single query parameter, allocating Params on first use.
func (r *Request) SetParam(key, value string) {
	if r.Params == nil {
		r.Params = url.Values{}
	}
	r.Params.Set(key, value)
}

// SetHeader sets a single header, allocating Header on first use.
func (r *Request) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
}

// APIResponse is the raw outcome of a dispatched request.
type APIResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON response body into v.
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("common: decode response: %w", err)
	}
	return nil
}
