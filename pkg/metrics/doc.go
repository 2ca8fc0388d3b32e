// Package metrics exposes Prometheus collectors for the restock service.
//
// A *Metrics value implements stock.DeliveryObserver, so passing it to
// stock.WithObserver records the current count, dispatched batches and the
// outcome and latency of every delivery. Middleware records HTTP traffic and
// Handler serves the private registry in the Prometheus text format.
package metrics
