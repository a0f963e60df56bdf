package postgresengine

import (
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// Option defines a functional option for configuring Journal.
type Option func(*Journal) error

// WithTableName sets the table name for the Journal.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: entry counts, durations, concurrency conflicts (production-safe)
// Error level: failures that abort an operation.
func WithLogger(logger journal.Logger) Option {
	return func(j *Journal) error {
		j.instrumentation.Logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, e.g. one adding trace correlation.
func WithContextualLogger(logger journal.ContextualLogger) Option {
	return func(j *Journal) error {
		j.instrumentation.ContextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
func WithMetrics(collector journal.MetricsCollector) Option {
	return func(j *Journal) error {
		j.instrumentation.Metrics = collector
		return nil
	}
}
