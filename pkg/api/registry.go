package api

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/restock/pkg/alerts"
	"github.com/dmitrymomot/restock/pkg/stock"
)

// Subscription is a registered per-recipient subscriber.
type Subscription struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Target  string `json:"target"`
	sub     alerts.Targeted
	seq     uint64
}

// registry maps subscription ids to the subscriber values registered with
// the subject, so a DELETE can unregister the exact value a POST added.
// Subject registration happens under the registry lock to keep both in step.
type registry struct {
	mu   sync.Mutex
	byID map[string]Subscription
	seq  uint64
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]Subscription)}
}

// add records sub and hands it to register. With unique set, an existing
// subscription for the same channel and target is returned instead, register
// is not called, and created is false.
func (r *registry) add(sub alerts.Targeted, unique bool, register func(stock.Subscriber)) (s Subscription, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if unique {
		for _, existing := range r.byID {
			if existing.Channel == sub.Channel() && existing.Target == sub.Target() {
				return existing, false
			}
		}
	}

	r.seq++
	s = Subscription{
		ID:      uuid.NewString(),
		Channel: sub.Channel(),
		Target:  sub.Target(),
		sub:     sub,
		seq:     r.seq,
	}
	r.byID[s.ID] = s
	register(s.sub)
	return s, true
}

// remove drops the subscription and hands its subscriber to unregister.
func (r *registry) remove(id string, unregister func(stock.Subscriber) bool) (Subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return Subscription{}, false
	}
	delete(r.byID, id)
	unregister(s.sub)
	return s, true
}

// list returns subscriptions in registration order, optionally limited to
// one channel.
func (r *registry) list(channel string) []Subscription {
	r.mu.Lock()
	out := make([]Subscription, 0, len(r.byID))
	for _, s := range r.byID {
		if channel == "" || s.Channel == channel {
			out = append(out, s)
		}
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b Subscription) int { return cmp.Compare(a.seq, b.seq) })
	return out
}
