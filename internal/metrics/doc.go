// Package metrics exposes link check results as Prometheus metrics.
//
// Callers receive a Recorder. NoopRecorder is the default when metrics are not
// configured, so the check path never needs nil checks; the watch command swaps in a
// PrometheusRecorder and serves it with HTTPHandler.
package metrics
