// Package limiter bounds the number of simultaneous in-flight backend
// calls. The external models enforce a requests-per-minute ceiling, so
// unconstrained fan-out would exceed it.
package limiter

import "context"

// Limiter is a counting semaphore.
type Limiter struct {
	ch chan struct{}
}

// New creates a Limiter with the given number of permits.
func New(permits int) *Limiter {
	if permits <= 0 {
		permits = 1
	}
	return &Limiter{
		ch: make(chan struct{}, permits),
	}
}

// Acquire takes a permit, blocking if necessary.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit. Must be called exactly once per successful
// Acquire, on success and failure paths alike.
func (l *Limiter) Release() {
	<-l.ch
}
