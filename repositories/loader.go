package repositories

import (
	"context"
	"sync"
	"time"
)

// Loader tracks the one-time fixture load. Until it finishes, readers see
// Loading() == true and writers block in Wait.
type Loader struct {
	ready chan struct{}
	once  sync.Once
	mu    sync.Mutex
	err   error
}

func NewLoader() *Loader {
	return &Loader{ready: make(chan struct{})}
}

// Start runs load once in the background after delay. A cancelled ctx
// skips the load and still marks the loader done.
func (l *Loader) Start(ctx context.Context, delay time.Duration, load func(context.Context) error) {
	l.once.Do(func() {
		go func() {
			defer close(l.ready)

			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				l.setErr(ctx.Err())
				return
			case <-timer.C:
			}
			l.setErr(load(ctx))
		}()
	})
}

func (l *Loader) Ready() <-chan struct{} {
	return l.ready
}

func (l *Loader) Loading() bool {
	select {
	case <-l.ready:
		return false
	default:
		return true
	}
}

// Wait blocks until the load finished or ctx is done and returns the load error.
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.ready:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Loader) setErr(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}
