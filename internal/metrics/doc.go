// Package metrics defines the Prometheus metrics exported by findex.
//
// Metrics are registered automatically via promauto at package load.
// Call InitializeMetrics once at startup to pre-populate expected label
// combinations so every series is present from the first scrape.
package metrics
