// Package event provides a small synchronous observer registry used by job
// handles to fan out terminal-state notifications.
//
// Unlike a generic emitter, the registry exposes its subscriber count and
// fires hooks on the 0→1 and 1→0 transitions, so owners can lazily start
// and stop background work (such as a status poll loop) based on whether
// anyone is listening.
package event

import "sync"

// Option configures a Registry.
type Option[T any] func(*Registry[T])

// WithFirstHook sets the hook fired when the subscriber count transitions
// from zero to one. The hook runs synchronously within Subscribe, after
// the count has been updated.
func WithFirstHook[T any](fn func()) Option[T] {
	return func(r *Registry[T]) { r.onFirst = fn }
}

// WithLastHook sets the hook fired when the subscriber count transitions
// from one to zero. The hook runs synchronously within the cancel func.
func WithLastHook[T any](fn func()) Option[T] {
	return func(r *Registry[T]) { r.onLast = fn }
}

// Registry is a synchronous fan-out of values of type T to subscribed
// observer funcs. It is safe for concurrent use.
type Registry[T any] struct {
	mu        sync.Mutex
	nextToken int
	observers map[int]func(T)

	onFirst func()
	onLast  func()
}

// New creates an empty registry.
func New[T any](opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		observers: make(map[int]func(T)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers an observer and returns a cancel func that removes
// it. The cancel func is idempotent: calling it more than once has no
// effect beyond the first call, and the subscriber count never goes
// negative.
//
// If this subscription moves the count from 0 to 1, the first-subscriber
// hook fires exactly once before Subscribe returns. Additional subscribers
// attaching afterwards do not re-fire it.
func (r *Registry[T]) Subscribe(fn func(T)) func() {
	r.mu.Lock()
	r.nextToken++
	token := r.nextToken
	r.observers[token] = fn
	first := len(r.observers) == 1
	r.mu.Unlock()

	if first && r.onFirst != nil {
		r.onFirst()
	}

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(token) })
	}
}

func (r *Registry[T]) remove(token int) {
	r.mu.Lock()
	_, present := r.observers[token]
	delete(r.observers, token)
	last := present && len(r.observers) == 0
	r.mu.Unlock()

	if last && r.onLast != nil {
		r.onLast()
	}
}

// Notify delivers v to every currently-subscribed observer, synchronously,
// on the caller's goroutine. Observer order is unspecified. Observers
// registered during delivery do not receive v.
func (r *Registry[T]) Notify(v T) {
	r.mu.Lock()
	snapshot := make([]func(T), 0, len(r.observers))
	for _, fn := range r.observers {
		snapshot = append(snapshot, fn)
	}
	r.mu.Unlock()

	for _, fn := range snapshot {
		fn(v)
	}
}

// Len returns the current subscriber count.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

// Active reports whether at least one observer is subscribed.
func (r *Registry[T]) Active() bool {
	return r.Len() > 0
}
