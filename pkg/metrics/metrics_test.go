package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restock/pkg/stock"
)

func newTestMetrics() *Metrics {
	return New(Config{Namespace: "test"})
}

func TestMetrics_ObserveDelivery(t *testing.T) {
	t.Parallel()

	m := newTestMetrics()
	m.ObserveDelivery("sneakers", "email", 10*time.Millisecond, nil)
	m.ObserveDelivery("sneakers", "email", 20*time.Millisecond, errors.New("boom"))
	m.ObserveDelivery("sneakers", "sms", time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues("sneakers", "email", statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues("sneakers", "email", statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues("sneakers", "sms", statusOK)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.deliveryDur))
}

func TestMetrics_ObserveBatchAndCount(t *testing.T) {
	t.Parallel()

	m := newTestMetrics()
	m.ObserveCount("sneakers", 7)
	m.ObserveBatch("sneakers", false, 2)
	m.ObserveBatch("sneakers", true, 2)
	m.ObserveBatch("sneakers", true, 3)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.stockCount.WithLabelValues("sneakers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches.WithLabelValues("sneakers", kindTransition)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.batches.WithLabelValues("sneakers", kindForced)))
}

func TestMetrics_AsSubjectObserver(t *testing.T) {
	t.Parallel()

	m := newTestMetrics()
	subject := stock.NewSubject("sneakers", stock.WithObserver(m))

	ok := &namedSubscriber{channel: "email"}
	failing := &namedSubscriber{channel: "sms", err: errors.New("gateway down")}
	subject.Register(ok)
	subject.Register(failing)

	ctx := context.Background()
	require.NoError(t, subject.SetCount(ctx, 5))
	require.NoError(t, subject.SetCount(ctx, 0))
	require.NoError(t, subject.SetCount(ctx, 3))
	subject.NotifySubscribers(ctx)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.stockCount.WithLabelValues("sneakers")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.batches.WithLabelValues("sneakers", kindTransition)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches.WithLabelValues("sneakers", kindForced)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.deliveries.WithLabelValues("sneakers", "email", statusOK)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.deliveries.WithLabelValues("sneakers", "sms", statusError)))
}

func TestMetrics_Middleware(t *testing.T) {
	t.Parallel()

	m := newTestMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/items/1", "/items/2", "/ok", "/scan/a", "/scan/b", "/wp-login.php"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues(http.MethodGet, "/items/{id}", "418")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues(http.MethodGet, "/ok", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.httpReqCnt), "unmatched paths share one series")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInfl))
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := newTestMetrics()
	m.ObserveCount("sneakers", 4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_stock_count{resource="sneakers"} 4`)
	assert.NotContains(t, rec.Body.String(), "go_goroutines")
	assert.NotNil(t, m.Registry())
}

type namedSubscriber struct {
	channel string
	err     error
}

func (s *namedSubscriber) Channel() string { return s.channel }

func (s *namedSubscriber) Receive(context.Context, stock.Alert) error { return s.err }
