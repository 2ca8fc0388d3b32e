package stock

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/restock/pkg/logger"
)

// Subject tracks the availability count of one resource and alerts its
// subscribers on every out-of-stock to in-stock transition.
type Subject struct {
	resource        string
	logger          *slog.Logger
	observer        DeliveryObserver
	dedup           bool
	async           bool
	deliveryTimeout time.Duration

	mu          sync.Mutex
	count       int
	subscribers []Subscriber

	seq   *sequencer
	queue *queue
}

// batch is one notification round: an alert and the subscriber snapshot it
// goes to.
type batch struct {
	alert       Alert
	subscribers []Subscriber
	ticket      uint64
}

// NewSubject creates an out-of-stock subject with no subscribers.
func NewSubject(resource string, opts ...Option) *Subject {
	s := &Subject{
		resource: resource,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("stock"), logger.Resource(resource))

	if s.async {
		s.queue = newQueue(s.deliver)
	} else {
		s.seq = newSequencer()
	}
	return s
}

// Resource returns the name of the tracked resource.
func (s *Subject) Resource() string {
	return s.resource
}

// Register appends sub to the notification list. Nil subscribers are ignored.
// Without WithDeduplication the same subscriber may be registered repeatedly
// and then receives one alert per registration.
func (s *Subject) Register(sub Subscriber) {
	if sub == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dedup && s.indexLocked(sub) >= 0 {
		return
	}
	s.subscribers = append(s.subscribers, sub)
}

// Unregister removes the first registered entry equal to sub and reports
// whether one was found. Removing an unknown subscriber is a no-op.
func (s *Subject) Unregister(sub Subscriber) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(sub)
	if i < 0 {
		return false
	}
	s.subscribers = slices.Delete(s.subscribers, i, i+1)
	return true
}

func (s *Subject) indexLocked(sub Subscriber) int {
	return slices.IndexFunc(s.subscribers, func(x Subscriber) bool {
		return sameSubscriber(x, sub)
	})
}

// Deduplicates reports whether Register ignores already-present subscribers.
func (s *Subject) Deduplicates() bool {
	return s.dedup
}

// Len returns the number of registered entries, duplicates included.
func (s *Subject) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Count returns the current availability count.
func (s *Subject) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// State returns InStock when the count is positive, OutOfStock otherwise.
func (s *Subject) State() State {
	return StateOf(s.Count())
}

// SetCount stores count and, when the subject moves from 0 to a positive
// count, delivers one alert to every registered subscriber.
// Negative counts are rejected with ErrInvalidCount and leave state untouched.
// Delivery failures are never returned.
func (s *Subject) SetCount(ctx context.Context, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	s.mu.Lock()
	prev := s.count
	s.count = count
	var b *batch
	if qualifies(prev, count) {
		b = s.prepareLocked(ctx, prev, count, false)
	}
	s.observer.ObserveCount(s.resource, count)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "stock count updated",
		logger.PreviousCount(prev),
		logger.Count(count),
	)

	if b != nil {
		s.deliverInOrder(ctx, b)
	}
	return nil
}

// NotifySubscribers re-announces the current count to every registered
// subscriber without changing state. The alert is marked Forced.
func (s *Subject) NotifySubscribers(ctx context.Context) {
	s.mu.Lock()
	b := s.prepareLocked(ctx, s.count, s.count, true)
	s.mu.Unlock()

	if b != nil {
		s.deliverInOrder(ctx, b)
	}
}

// Close drains pending asynchronous deliveries. Later transitions still
// update the count but their alerts are dropped. Close is a no-op for
// synchronous subjects.
func (s *Subject) Close(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	return s.queue.close(ctx)
}

// Pending returns the number of batches waiting for the async worker.
func (s *Subject) Pending() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.pending()
}

// prepareLocked snapshots the subscriber list into a batch. In async mode the
// batch is queued right away and nil is returned; otherwise the caller must
// pass the returned batch to deliverInOrder.
func (s *Subject) prepareLocked(ctx context.Context, prev, count int, forced bool) *batch {
	b := &batch{
		alert: Alert{
			ID:         uuid.New().String(),
			Resource:   s.resource,
			Count:      count,
			Previous:   prev,
			Forced:     forced,
			OccurredAt: time.Now(),
		},
		subscribers: slices.Clone(s.subscribers),
	}

	// The count change is final regardless of what sinks do.
	ctx = context.WithoutCancel(ctx)

	if s.queue != nil {
		if !s.queue.push(ctx, b) {
			s.logger.WarnContext(ctx, "dropping restock alert",
				logger.AlertID(b.alert.ID),
				logger.Error(ErrSubjectClosed),
			)
		}
		return nil
	}

	b.ticket = s.seq.take()
	return b
}

// deliverInOrder waits for earlier synchronous batches before delivering b.
func (s *Subject) deliverInOrder(ctx context.Context, b *batch) {
	s.seq.wait(b.ticket)
	defer s.seq.done()
	s.deliver(context.WithoutCancel(ctx), b)
}

func (s *Subject) deliver(ctx context.Context, b *batch) {
	s.observer.ObserveBatch(s.resource, b.alert.Forced, len(b.subscribers))
	s.logger.InfoContext(ctx, "delivering restock alert",
		logger.AlertID(b.alert.ID),
		logger.Count(b.alert.Count),
		logger.Subscribers(len(b.subscribers)),
		slog.Bool("forced", b.alert.Forced),
	)

	for _, sub := range b.subscribers {
		s.deliverOne(ctx, sub, b.alert)
	}
}

func (s *Subject) deliverOne(ctx context.Context, sub Subscriber, alert Alert) {
	channel := channelOf(sub)
	start := time.Now()
	err := s.receive(ctx, sub, alert)
	took := time.Since(start)

	s.observer.ObserveDelivery(s.resource, channel, took, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to deliver restock alert",
			logger.AlertID(alert.ID),
			logger.Channel(channel),
			logger.Duration(took),
			logger.Error(err),
		)
	}
}

// receive calls sub.Receive, turning errors and panics into ErrDeliveryFailed.
func (s *Subject) receive(ctx context.Context, sub Subscriber, alert Alert) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrDeliveryFailed, r)
		}
	}()

	if s.deliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deliveryTimeout)
		defer cancel()
	}

	if err := sub.Receive(ctx, alert); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return nil
}
