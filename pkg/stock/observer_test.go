package stock_test

import (
	"sync"
	"time"
)

type fakeObserver struct {
	mu      sync.Mutex
	counts  []int
	batches int
	forced  int
	errs    []error
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{}
}

func (f *fakeObserver) ObserveCount(_ string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = append(f.counts, count)
}

func (f *fakeObserver) ObserveBatch(_ string, forced bool, _ int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	if forced {
		f.forced++
	}
}

func (f *fakeObserver) ObserveDelivery(_, _ string, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

func (f *fakeObserver) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches
}

func (f *fakeObserver) deliveryErrors() []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]error(nil), f.errs...)
}
