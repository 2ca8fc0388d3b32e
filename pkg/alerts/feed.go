package alerts

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/restock/pkg/logger"
	"github.com/dmitrymomot/restock/pkg/stock"
)

// Feed fans alerts out to in-process listeners such as SSE connections.
// A listener whose buffer is full misses the alert instead of slowing the
// delivery down. All methods are safe for concurrent use.
type Feed struct {
	mu        sync.RWMutex
	listeners map[chan stock.Alert]struct{}
	buffer    int
	closed    bool
	done      chan struct{}
	dropped   atomic.Uint64
	logger    *slog.Logger
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithFeedLogger sets the logger used to report dropped alerts.
func WithFeedLogger(l *slog.Logger) FeedOption {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFeed creates a feed whose listeners buffer up to buffer alerts.
// A buffer below 1 is raised to 1.
func NewFeed(buffer int, opts ...FeedOption) *Feed {
	f := &Feed{
		listeners: make(map[chan stock.Alert]struct{}),
		buffer:    max(buffer, 1),
		done:      make(chan struct{}),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(logger.Component("feed"))
	return f
}

func (f *Feed) Channel() string { return ChannelFeed }

// Receive hands alert to every listener without blocking. It never fails.
func (f *Feed) Receive(_ context.Context, alert stock.Alert) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.listeners {
		select {
		case ch <- alert:
		default:
			f.dropped.Add(1)
			f.logger.Warn("feed listener too slow, alert dropped", logger.AlertID(alert.ID))
		}
	}
	return nil
}

// Listen registers a listener. The returned channel is closed when ctx ends
// or the feed is closed. A closed feed returns an already closed channel.
func (f *Feed) Listen(ctx context.Context) <-chan stock.Alert {
	ch := make(chan stock.Alert, f.buffer)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch
	}
	f.listeners[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-f.done:
		}
		f.remove(ch)
	}()

	return ch
}

// Listeners returns the number of active listeners.
func (f *Feed) Listeners() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.listeners)
}

// Dropped returns how many listener deliveries were skipped because a buffer was full.
func (f *Feed) Dropped() uint64 {
	return f.dropped.Load()
}

// Close closes every listener channel. It is safe to call more than once.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	close(f.done)

	for ch := range f.listeners {
		close(ch)
	}
	clear(f.listeners)
	return nil
}

func (f *Feed) remove(ch chan stock.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.listeners[ch]; ok {
		delete(f.listeners, ch)
		close(ch)
	}
}
