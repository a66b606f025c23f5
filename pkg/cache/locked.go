package cache

import deadlock "github.com/sasha-s/go-deadlock"

// Locked wraps a Cache with a mutex so it can be shared across goroutines. It
// uses go-deadlock rather than sync.Mutex, so a goroutine that tries to take the
// lock it already holds (e.g. by calling With from inside fn) is reported with a
// stack trace instead of hanging silently. A builder dependency cycle is not
// caught this way: resolution inside a build goes straight to the underlying
// engine (see resolver.go) and never passes through the mutex again.
//
// Locked itself still serializes every operation - there is no internal
// concurrency, suspension or cancellation, matching Cache.
type Locked struct {
	mu deadlock.Mutex
	c  *Cache
}

// NewLocked wraps c for concurrent use. c must not be used directly afterward.
func NewLocked(c *Cache) *Locked {
	return &Locked{c: c}
}

// With runs fn with the lock held, giving fn direct (single-threaded-safe) access
// to the underlying Cache for the duration of the call. Every exported function
// in this package that takes a *Cache can be called from inside fn.
func (l *Locked) With(fn func(c *Cache)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.c)
}

// WithErr is like With for functions that can fail.
func WithErr[T any](l *Locked, fn func(c *Cache) (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.c)
}
