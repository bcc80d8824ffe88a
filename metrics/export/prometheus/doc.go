// Package prometheus provides a Prometheus exporter for client metrics.
//
// [NewPrometheusExporter] accepts a [chalito.Client] and exposes an
// [http.Handler] that renders all client counters in Prometheus text
// exposition format. Counter names are prefixed chalito_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
