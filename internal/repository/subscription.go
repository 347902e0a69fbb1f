package repository

import (
	"context"
	"sync"
)

// Subscription is an explicit handle over a live query. The producing
// goroutine owns the backing listener; Close releases it exactly once no
// matter which side terminates first. Updates is closed when the listener
// is released; Err reports the upstream failure, if any, once Updates is
// closed.
type Subscription[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	once    sync.Once
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// Pump produces snapshots until the context is cancelled or the upstream
// fails. send returns false when the subscription has been closed; the pump
// must return promptly in that case.
type Pump[T any] func(ctx context.Context, send func(T) bool) error

// NewSubscription starts pump in its own goroutine and returns the handle.
func NewSubscription[T any](ctx context.Context, pump Pump[T]) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		updates: make(chan T, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	send := func(v T) bool {
		select {
		case s.updates <- v:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(s.done)
		defer close(s.updates)
		defer cancel()

		err := pump(ctx, send)
		if err != nil && ctx.Err() == nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
		}
	}()

	return s
}

// Updates delivers snapshots in arrival order. The channel is closed when
// the subscription ends, whether by Close or by upstream failure.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

// Close releases the backing listener and waits for the producing goroutine
// to exit. Safe to call multiple times and concurrently with an upstream
// failure.
func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Err returns the upstream failure that ended the subscription, or nil when
// it was closed by the consumer. Only meaningful after Updates is closed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
