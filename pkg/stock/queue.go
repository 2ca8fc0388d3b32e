package stock

import (
	"context"
	"sync"
)

type queuedBatch struct {
	ctx   context.Context
	batch *batch
}

// queue is an unbounded FIFO drained by one worker goroutine.
// push never blocks, so it is safe to call with the subject lock held.
type queue struct {
	mu      sync.Mutex
	backlog []queuedBatch
	closed  bool
	notify  chan struct{}
	done    chan struct{}
}

func newQueue(deliver func(context.Context, *batch)) *queue {
	q := &queue{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.run(deliver)
	return q
}

func (q *queue) run(deliver func(context.Context, *batch)) {
	defer close(q.done)
	for {
		q.mu.Lock()
		if len(q.backlog) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.notify
			continue
		}
		item := q.backlog[0]
		q.backlog[0] = queuedBatch{}
		q.backlog = q.backlog[1:]
		q.mu.Unlock()

		deliver(item.ctx, item.batch)
	}
}

func (q *queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// push appends b. It reports false once the queue is closed.
func (q *queue) push(ctx context.Context, b *batch) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.backlog = append(q.backlog, queuedBatch{ctx: ctx, batch: b})
	q.mu.Unlock()
	q.wake()
	return true
}

// pending returns the number of batches not yet picked up by the worker.
func (q *queue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// close stops intake and waits until the backlog is delivered or ctx ends.
func (q *queue) close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
