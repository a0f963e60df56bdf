// Package promadapters implements shell.MetricsCollector on the Prometheus client library.
package promadapters
