package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusOK    = "ok"
	statusError = "error"

	kindTransition = "transition"
	kindForced     = "forced"
)

type Metrics struct {
	registry    *prometheus.Registry
	stockCount  *prometheus.GaugeVec
	batches     *prometheus.CounterVec
	batchSize   *prometheus.HistogramVec
	deliveries  *prometheus.CounterVec
	deliveryDur *prometheus.HistogramVec
	httpReqCnt  *prometheus.CounterVec
	httpDur     *prometheus.HistogramVec
	httpInfl    prometheus.Gauge
}

func New(cfg Config) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	if cfg.Runtime {
		r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		r.MustRegister(collectors.NewGoCollector())
	}

	stockCount := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "stock_count", Help: "Current stock count per resource."}, []string{"resource"})
	batches := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "alert_batches_total", Help: "Alert batches dispatched."}, []string{"resource", "kind"})
	batchSize := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "alert_batch_subscribers", Help: "Subscribers per dispatched batch.", Buckets: prometheus.ExponentialBuckets(1, 2, 10)}, []string{"resource"})
	r.MustRegister(stockCount, batches, batchSize)

	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "alert_deliveries_total", Help: "Alert deliveries by channel and outcome."}, []string{"resource", "channel", "status"})
	deliveryDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "alert_delivery_duration_seconds", Help: "Time spent in a single delivery.", Buckets: buckets}, []string{"resource", "channel", "status"})
	r.MustRegister(deliveries, deliveryDur)

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	return &Metrics{
		registry:    r,
		stockCount:  stockCount,
		batches:     batches,
		batchSize:   batchSize,
		deliveries:  deliveries,
		deliveryDur: deliveryDur,
		httpReqCnt:  httpReqCnt,
		httpDur:     httpDur,
		httpInfl:    httpInfl,
	}
}

func (m *Metrics) ObserveCount(resource string, count int) {
	m.stockCount.WithLabelValues(resource).Set(float64(count))
}

func (m *Metrics) ObserveBatch(resource string, forced bool, subscribers int) {
	kind := kindTransition
	if forced {
		kind = kindForced
	}
	m.batches.WithLabelValues(resource, kind).Inc()
	m.batchSize.WithLabelValues(resource).Observe(float64(subscribers))
}

func (m *Metrics) ObserveDelivery(resource, channel string, took time.Duration, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	m.deliveries.WithLabelValues(resource, channel, status).Inc()
	m.deliveryDur.WithLabelValues(resource, channel, status).Observe(took.Seconds())
}

// unmatchedRoute labels requests no route pattern matched, keeping raw paths
// out of label values.
const unmatchedRoute = "unmatched"

// Middleware records request count, latency and in-flight requests labelled
// by the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInfl.Inc()
		defer m.httpInfl.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := httpStatus(ww.Status())
		m.httpReqCnt.WithLabelValues(r.Method, route, status).Inc()
		m.httpDur.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func httpStatus(code int) string {
	if code == 0 {
		code = http.StatusOK
	}
	return strconv.Itoa(code)
}
