package common

import "context"

// Handler is the terminal function that dispatches a request.
type Handler func(ctx context.Context, req *Request) (*APIResponse, error)

// Interceptor wraps a Handler with cross-cutting logic over an outgoing
// request. It receives the current context, the request being dispatched,
// and the next handler to call. Interceptors MUST call next to continue
// the chain (unless short-circuiting on error).
type Interceptor func(ctx context.Context, req *Request, next Handler) (*APIResponse, error)

// Chain composes multiple interceptors into a single Interceptor.
// Interceptors are applied right-to-left: the first interceptor in the
// list is the outermost wrapper.
//
// Example: Chain(logging, tracing, rewrite) executes as:
//
//	logging → tracing → rewrite → transport
func Chain(ics ...Interceptor) Interceptor {
	return func(ctx context.Context, req *Request, next Handler) (*APIResponse, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(ics) - 1; i >= 0; i-- {
			ic := ics[i]
			prev := h
			h = func(ctx context.Context, req *Request) (*APIResponse, error) {
				return ic(ctx, req, prev)
			}
		}
		return h(ctx, req)
	}
}

// Pipeline dispatches requests through an interceptor chain to a Transport.
// A Pipeline is immutable once built; derive scoped pipelines with With.
type Pipeline struct {
	transport    Transport
	interceptors []Interceptor
}

// NewPipeline creates a pipeline over the given transport.
func NewPipeline(t Transport, ics ...Interceptor) *Pipeline {
	return &Pipeline{transport: t, interceptors: ics}
}

// With returns a new Pipeline sharing the same transport, with the given
// interceptors appended after the existing ones (closer to the wire).
// Service objects use this to register their own rewrites at construction
// without affecting the parent pipeline.
func (p *Pipeline) With(ics ...Interceptor) *Pipeline {
	combined := make([]Interceptor, 0, len(p.interceptors)+len(ics))
	combined = append(combined, p.interceptors...)
	combined = append(combined, ics...)
	return &Pipeline{transport: p.transport, interceptors: combined}
}

// Do runs req through the interceptor chain and dispatches it.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*APIResponse, error) {
	return Chain(p.interceptors...)(ctx, req, p.transport.Do)
}
