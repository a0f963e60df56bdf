// Package oteladapters implements the shell observability interfaces on top of OpenTelemetry:
// TracingCollector on the trace API, MetricsCollector on the metric API and
// a ContextualLogger on the slog bridge, which correlates log records with the active span.
package oteladapters
