package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MichValwin/JWT-listing/internal/pkg/stacktrace"
)

// ErrClosed is returned by Go once Wait has been called.
var ErrClosed = errors.New("goroutine: manager is closed")

// ErrLimitReached is returned by Go when every slot is taken.
var ErrLimitReached = errors.New("goroutine: maximum goroutine limit reached")

// DefaultMax is used when NewManager receives a non-positive limit.
const DefaultMax = 16

// Manager runs background tasks with a concurrency limit, recovers their
// panics and collects their errors for Wait.
type Manager struct {
	mu     sync.Mutex
	closed bool
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
}

// NewManager creates a Manager allowing up to limit concurrent tasks.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = DefaultMax
	}
	return &Manager{sema: make(chan struct{}, limit)}
}

// Go starts f in a goroutine. A panic in f is logged and recorded as an error.
func (m *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	select {
	case m.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached", "task", name)
		return ErrLimitReached
	}

	m.wg.Go(func() {
		defer func() { <-m.sema }()
		m.record(name, m.run(ctx, name, f))
	})

	return nil
}

func (m *Manager) run(ctx context.Context, name string, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "because", rvr, "stack", stacktrace.Internal(2))
			err = fmt.Errorf("panic: %v", rvr)
		}
	}()

	return f(ctx)
}

func (m *Manager) record(name string, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	m.mu.Lock()
	m.errs = append(m.errs, fmt.Errorf("%s: %w", name, err))
	m.mu.Unlock()
}

// Wait stops accepting tasks, blocks until running ones return and joins
// their errors.
func (m *Manager) Wait() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
