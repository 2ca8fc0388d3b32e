package stock

import (
	"context"
	"reflect"
	"time"
)

// Subscriber receives restock alerts.
//
// Receive is called once per batch the subscriber is registered for. The
// returned error is logged and observed but does not affect other subscribers
// or the count change that triggered the batch.
type Subscriber interface {
	Receive(ctx context.Context, alert Alert) error
}

// SubscriberFunc adapts a function to Subscriber.
// Function values are not comparable, so a SubscriberFunc cannot be unregistered.
type SubscriberFunc func(ctx context.Context, alert Alert) error

func (f SubscriberFunc) Receive(ctx context.Context, alert Alert) error {
	return f(ctx, alert)
}

// Channeler is implemented by subscribers that want their delivery channel
// (email, sms, ...) reported in logs and metrics.
type Channeler interface {
	Channel() string
}

// channelOf returns the subscriber's channel name or "custom".
func channelOf(sub Subscriber) string {
	if c, ok := sub.(Channeler); ok {
		if name := c.Channel(); name != "" {
			return name
		}
	}
	return "custom"
}

// DeliveryObserver receives the outcome of every transition and delivery.
// Implementations must be safe for concurrent use.
type DeliveryObserver interface {
	// ObserveCount is called for every accepted SetCount while the subject
	// lock is held. It must not call back into the subject.
	ObserveCount(resource string, count int)
	// ObserveBatch is called once per dispatched batch.
	ObserveBatch(resource string, forced bool, subscribers int)
	// ObserveDelivery is called once per Receive call. err is nil on success.
	ObserveDelivery(resource, channel string, took time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveCount(string, int)                             {}
func (nopObserver) ObserveBatch(string, bool, int)                       {}
func (nopObserver) ObserveDelivery(string, string, time.Duration, error) {}

// sameSubscriber compares by interface equality, treating non-comparable
// dynamic types as never equal instead of panicking.
func sameSubscriber(a, b Subscriber) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
