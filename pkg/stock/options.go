package stock

import (
	"log/slog"
	"time"
)

// Option configures a Subject.
type Option func(*Subject)

// WithLogger sets the logger used for delivery failures and state changes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Subject) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver reports counts, batches and delivery outcomes to o.
func WithObserver(o DeliveryObserver) Option {
	return func(s *Subject) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithDeduplication makes Register ignore a subscriber that is already
// registered, so it receives one alert per batch. Off by default.
func WithDeduplication() Option {
	return func(s *Subject) { s.dedup = true }
}

// WithDeliveryTimeout bounds the context passed to each Receive call.
// Sinks that ignore their context are not interrupted.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(s *Subject) {
		if d > 0 {
			s.deliveryTimeout = d
		}
	}
}

// WithAsyncDelivery hands batches to a background worker instead of
// delivering on the SetCount goroutine. Batches stay in transition order.
// Call Close to drain the worker.
func WithAsyncDelivery() Option {
	return func(s *Subject) { s.async = true }
}

// WithInitialCount starts the subject at count instead of 0.
// Negative values are ignored.
func WithInitialCount(count int) Option {
	return func(s *Subject) {
		if count >= 0 {
			s.count = count
		}
	}
}
