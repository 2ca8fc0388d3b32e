package stock

import "errors"

var (
	// ErrInvalidCount is returned by SetCount for negative counts.
	ErrInvalidCount = errors.New("stock: count must not be negative")

	// ErrDeliveryFailed wraps an error or panic raised by a subscriber.
	// It is reported to the logger and DeliveryObserver, never to SetCount callers.
	ErrDeliveryFailed = errors.New("stock: alert delivery failed")

	// ErrSubjectClosed is reported for batches dropped after Close.
	ErrSubjectClosed = errors.New("stock: subject is closed")
)
