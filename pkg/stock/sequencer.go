package stock

import "sync"

// sequencer orders synchronous deliveries by ticket. Tickets are taken under
// the subject lock, so ticket order is transition order; waiting happens
// without the subject lock held.
type sequencer struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	serving uint64
}

func newSequencer() *sequencer {
	q := &sequencer{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *sequencer) take() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := q.next
	q.next++
	return t
}

// wait blocks until ticket t is being served.
func (q *sequencer) wait(t uint64) {
	q.mu.Lock()
	for q.serving != t {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// done releases the current ticket to the next waiter.
func (q *sequencer) done() {
	q.mu.Lock()
	q.serving++
	q.mu.Unlock()
	q.cond.Broadcast()
}
