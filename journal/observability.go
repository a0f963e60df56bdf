package journal

import (
	"context"
	"time"
)

// Logger interface for query logging, operational information, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging, e.g., with trace correlation.
// *slog.Logger satisfies it.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting journal performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

const (
	// QueryDurationMetric tracks the duration of journal queries.
	QueryDurationMetric = "journal_query_duration_seconds"

	// AppendDurationMetric tracks the duration of journal appends.
	AppendDurationMetric = "journal_append_duration_seconds"

	// EntriesQueriedMetric tracks the number of entries returned by queries.
	EntriesQueriedMetric = "journal_entries_queried"

	// EntriesAppendedMetric counts appended entries.
	EntriesAppendedMetric = "journal_entries_appended_total"

	// ConcurrencyConflictsMetric counts rejected appends.
	ConcurrencyConflictsMetric = "journal_concurrency_conflicts_total"

	// ErrorsMetric counts failed journal operations.
	ErrorsMetric = "journal_errors_total"

	// LabelOperation is the metric label for the journal operation.
	LabelOperation = "operation"

	// LabelEngine is the metric label for the journal engine.
	LabelEngine = "engine"

	// OperationQuery labels query operations.
	OperationQuery = "query"

	// OperationAppend labels append operations.
	OperationAppend = "append"
)
