package common

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kris48k/gcloud-node/id"
)

// requestIDHeader carries the client-generated correlation ID.
const requestIDHeader = "X-Request-Id"

// Transport dispatches a request descriptor and returns the raw response.
// A nil error with a parsed response means the HTTP exchange succeeded
// with a 2xx status; non-2xx statuses are returned as *APIError.
type Transport interface {
	Do(ctx context.Context, req *Request) (*APIResponse, error)
}

// TransportOption configures a RestyTransport.
type TransportOption func(*RestyTransport)

// WithTransportLogger sets the structured logger for request dispatch.
func WithTransportLogger(logger *slog.Logger) TransportOption {
	return func(t *RestyTransport) { t.logger = logger }
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) TransportOption {
	return func(t *RestyTransport) { t.client.SetHeader("User-Agent", ua) }
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *RestyTransport) { t.client.SetTimeout(d) }
}

// RestyTransport is the concrete Transport over HTTP, built on resty.
// It stamps every outgoing request with a generated correlation ID.
type RestyTransport struct {
	client *resty.Client
	logger *slog.Logger
}

// NewRestyTransport creates a transport rooted at the given base URL
// (scheme and host only; request paths carry the API version segment).
func NewRestyTransport(baseURL string, opts ...TransportOption) *RestyTransport {
	t := &RestyTransport{
		client: resty.New().SetBaseURL(baseURL),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do implements Transport.
func (t *RestyTransport) Do(ctx context.Context, req *Request) (*APIResponse, error) {
	reqID := id.NewRequestID()

	r := t.client.R().SetContext(ctx)
	r.SetHeader(requestIDHeader, reqID.String())
	for key, values := range req.Header {
		for _, v := range values {
			r.SetHeader(key, v)
		}
	}
	if req.Params != nil {
		r.SetQueryParamsFromValues(req.Params)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		t.logger.Warn("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("request_id", reqID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("common: %s %s: %w", req.Method, req.Path, err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}

	t.logger.Debug("request dispatched",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.String("request_id", reqID.String()),
		slog.Int("status", apiResp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.IsError() {
		return apiResp, NewAPIError(apiResp)
	}
	return apiResp, nil
}
